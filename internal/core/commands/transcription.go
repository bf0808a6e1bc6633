// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaycherian/gcp-go-media-insights/internal/cloud"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/normalize"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// Artifact names for the transcripts written into the output directory.
const (
	TranscriptionRawFileName     = "transcription_raw.txt"
	TranscriptionEnglishFileName = "transcription_en.txt"
)

// Transcription field defaults applied when the model reply omits or
// malforms a field.
const (
	DefaultDetectedLanguage   = "en"
	DefaultLanguageConfidence = 0.95
)

// NormalizeTranscription maps a tolerant-parsed model reply onto the
// transcription contract, filling defaults for anything missing and
// recording each fallback in DefaultedFields.
//
// Logic Flow:
//  1. detected_language is lowercased and trimmed, defaulting to "en".
//  2. language_confidence keeps only numeric values, defaulting to 0.95.
//  3. raw_transcription is trimmed, defaulting to the empty string.
//  4. translated_transcription is trimmed and defaults to the raw
//     transcription, so the translated text is never empty while the raw
//     text is not.
func NormalizeTranscription(rec normalize.Record) *model.TranscriptionResult {
	result := &model.TranscriptionResult{}

	lang, ok := rec.StringOK("detected_language")
	if !ok || strings.TrimSpace(lang) == "" {
		lang = DefaultDetectedLanguage
		result.DefaultedFields = append(result.DefaultedFields, "detected_language")
	}
	result.DetectedLanguage = strings.ToLower(strings.TrimSpace(lang))

	conf, ok := rec.Float("language_confidence", DefaultLanguageConfidence)
	if !ok {
		result.DefaultedFields = append(result.DefaultedFields, "language_confidence")
	}
	result.LanguageConfidence = conf

	raw, ok := rec.StringOK("raw_transcription")
	if !ok {
		result.DefaultedFields = append(result.DefaultedFields, "raw_transcription")
	}
	result.RawText = strings.TrimSpace(raw)

	translated, ok := rec.StringOK("translated_transcription")
	translated = strings.TrimSpace(translated)
	if !ok || translated == "" {
		translated = result.RawText
		result.DefaultedFields = append(result.DefaultedFields, "translated_transcription")
	}
	result.TranslatedText = translated

	return result
}

// WriteTranscripts persists both transcript artifacts into the output
// directory, overwriting prior runs, and records the paths on the result.
func WriteTranscripts(result *model.TranscriptionResult, outputDir string) error {
	rawPath := filepath.Join(outputDir, TranscriptionRawFileName)
	if err := os.WriteFile(rawPath, []byte(result.RawText), 0o644); err != nil {
		return fmt.Errorf("failed to write raw transcript: %w", err)
	}
	result.RawFilePath = rawPath

	enPath := filepath.Join(outputDir, TranscriptionEnglishFileName)
	if err := os.WriteFile(enPath, []byte(result.TranslatedText), 0o644); err != nil {
		return fmt.Errorf("failed to write english transcript: %w", err)
	}
	result.TranslatedFilePath = enPath
	return nil
}

// MediaTranscription asks the model to transcribe, language-detect, and
// translate the uploaded media, then normalizes the reply and persists the
// transcript artifacts. A failed generation call is fatal; an empty or
// unparseable reply is not, it degrades to a fully defaulted result.
type MediaTranscription struct {
	cor.BaseCommand
	generator          cloud.ContentGenerator
	prompt             string
	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
}

func NewMediaTranscription(name string, generator cloud.ContentGenerator, prompt string) *MediaTranscription {
	base := cor.NewBaseCommand(name)
	in, _ := base.GetMeter().Int64Counter(fmt.Sprintf("%s.tokens.input", name))
	out, _ := base.GetMeter().Int64Counter(fmt.Sprintf("%s.tokens.output", name))
	return &MediaTranscription{
		BaseCommand:        *base,
		generator:          generator,
		prompt:             prompt,
		inputTokenCounter:  in,
		outputTokenCounter: out,
	}
}

func (t *MediaTranscription) Execute(context cor.Context) {
	ctx, span := t.GetTracer().Start(context.GetContext(), t.GetName())
	defer span.End()

	remote := context.Get(t.GetInputParam()).(*model.UploadedRemoteFile)
	outputDir := context.Get(GetOutputDirParamName()).(string)

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{
			cloud.NewTextPart(t.prompt),
			cloud.NewFileDataPart(remote.URI, remote.MIMEType),
		}},
	}

	text, err := cloud.GenerateText(ctx, t.inputTokenCounter, t.outputTokenCounter, t.generator, contents)
	if err != nil {
		context.AddError(t.GetName(), fmt.Errorf("transcription generation failed: %w", err))
		t.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	result := NormalizeTranscription(normalize.ParseStructured(text))
	if len(result.DefaultedFields) > 0 {
		slog.Warn("transcription reply missing fields, defaults applied",
			"defaulted", strings.Join(result.DefaultedFields, ","))
	}

	if err := WriteTranscripts(result, outputDir); err != nil {
		context.AddError(t.GetName(), err)
		t.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	slog.Info("transcription complete",
		"language", result.DetectedLanguage,
		"confidence", result.LanguageConfidence,
		"chars", len(result.TranslatedText))
	context.Add(GetTranscriptionParamName(), result)
	context.Add(t.GetOutputParam(), result)
	t.GetSuccessCounter().Add(context.GetContext(), 1)
}
