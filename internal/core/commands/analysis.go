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
	"sort"
	"strings"

	"github.com/jaycherian/gcp-go-media-insights/internal/cloud"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/normalize"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// AnalysisReportFileName is the report artifact written into the output
// directory.
const AnalysisReportFileName = "detailed_analysis.txt"

// Analysis input truncation bounds. Transcripts are capped at
// maxAnalysisChars; when the cap cuts mid-sentence, the cut point backs up
// to the last period, but only when that period falls after
// minSentenceBoundary, so a pathological early period cannot discard most
// of the window.
const (
	maxAnalysisChars    = 12000
	minSentenceBoundary = 8000
)

// Analysis field defaults.
const (
	DefaultOverallSentiment = "neutral"
	DefaultContentType      = "unknown"
	summaryFallbackChars    = 300
)

// PrepareAnalysisInput bounds a transcript for the analysis prompt. Text at
// or under the cap passes through unchanged. Longer text is cut at the cap,
// then trimmed back to end on the last period inside the window when that
// period sits past the minimum boundary; the period itself is kept.
func PrepareAnalysisInput(text string) string {
	if len(text) <= maxAnalysisChars {
		return text
	}
	window := text[:maxAnalysisChars]
	if idx := strings.LastIndex(window, "."); idx > minSentenceBoundary {
		return window[:idx+1]
	}
	return window
}

// NormalizeAnalysis maps a tolerant-parsed model reply onto the analysis
// contract. Every score map and list defaults to empty, every confidence to
// zero, the sentiment to neutral and the content type to unknown. The
// summary falls back to the opening of the analyzed text itself, so callers
// always have something human-readable. Each applied fallback is recorded
// in DefaultedFields.
func NormalizeAnalysis(rec normalize.Record, analyzedText string) *model.AnalysisResult {
	result := &model.AnalysisResult{}
	defaulted := func(field string) {
		result.DefaultedFields = append(result.DefaultedFields, field)
	}

	if result.DominantEmotion = rec.StringPtr("dominant_emotion"); result.DominantEmotion == nil {
		defaulted("dominant_emotion")
	}
	var ok bool
	if result.EmotionConfidence, ok = rec.Float("emotion_confidence", 0.0); !ok {
		defaulted("emotion_confidence")
	}
	if result.EmotionScores, ok = rec.ScoreMap("emotion_scores"); !ok {
		defaulted("emotion_scores")
	}

	if result.OverallSentiment = rec.String("overall_sentiment", DefaultOverallSentiment); rec.String("overall_sentiment", "") == "" {
		defaulted("overall_sentiment")
	}
	if result.SentimentConfidence, ok = rec.Float("sentiment_confidence", 0.0); !ok {
		defaulted("sentiment_confidence")
	}
	if result.SentimentBreakdown, ok = rec.ScoreMap("sentiment_breakdown"); !ok {
		defaulted("sentiment_breakdown")
	}

	if result.PrimaryIntent = rec.StringPtr("primary_intent"); result.PrimaryIntent == nil {
		defaulted("primary_intent")
	}
	if result.IntentConfidence, ok = rec.Float("intent_confidence", 0.0); !ok {
		defaulted("intent_confidence")
	}
	if result.IntentScores, ok = rec.ScoreMap("intent_scores"); !ok {
		defaulted("intent_scores")
	}
	if result.SecondaryIntents, ok = rec.StringSlice("secondary_intents"); !ok {
		defaulted("secondary_intents")
	}

	if result.Summary = rec.String("summary", ""); result.Summary == "" {
		result.Summary = fallbackSummary(analyzedText)
		defaulted("summary")
	}
	if result.KeyTopics, ok = rec.StringSlice("key_topics"); !ok {
		defaulted("key_topics")
	}
	if result.ContentType = rec.String("content_type", DefaultContentType); rec.String("content_type", "") == "" {
		defaulted("content_type")
	}

	return result
}

// fallbackSummary is the opening of the analyzed text with an ellipsis.
func fallbackSummary(text string) string {
	if len(text) > summaryFallbackChars {
		text = text[:summaryFallbackChars]
	}
	return text + "..."
}

// sortedScores returns score entries ordered by value descending, ties
// broken by name, so the report renders identically across runs.
func sortedScores(scores map[string]float64) []struct {
	Name  string
	Value float64
} {
	out := make([]struct {
		Name  string
		Value float64
	}, 0, len(scores))
	for name, value := range scores {
		out = append(out, struct {
			Name  string
			Value float64
		}{name, value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func orNull(p *string) string {
	if p == nil {
		return "null"
	}
	return *p
}

// sentimentLabels fixes the render order of the well-known sentiment
// breakdown entries; anything else the model invents follows alphabetically.
var sentimentLabels = []string{"positive", "neutral", "negative"}

// RenderAnalysisReport formats the human-readable report artifact.
func RenderAnalysisReport(a *model.AnalysisResult) string {
	banner := strings.Repeat("=", 70)
	rule := strings.Repeat("-", 70)
	var lines []string

	lines = append(lines,
		banner,
		"COMPREHENSIVE MEDIA ANALYSIS (Gemini)",
		banner,
		"",
		"EMOTIONAL ANALYSIS",
		rule,
		fmt.Sprintf("Dominant Emotion: %s (Confidence: %s)", orNull(a.DominantEmotion), percent(a.EmotionConfidence)),
	)
	if len(a.EmotionScores) > 0 {
		lines = append(lines, "", "Emotion Scores:")
		for _, entry := range sortedScores(a.EmotionScores) {
			lines = append(lines, fmt.Sprintf("  %s: %s", entry.Name, percent(entry.Value)))
		}
	}

	lines = append(lines,
		"",
		"SENTIMENT ANALYSIS",
		rule,
		fmt.Sprintf("Overall Sentiment: %s (Confidence: %s)", strings.ToUpper(a.OverallSentiment), percent(a.SentimentConfidence)),
	)
	if len(a.SentimentBreakdown) > 0 {
		lines = append(lines, "", "Sentiment Breakdown:")
		seen := make(map[string]bool)
		for _, label := range sentimentLabels {
			if value, ok := a.SentimentBreakdown[label]; ok {
				lines = append(lines, fmt.Sprintf("  %s: %s", label, percent(value)))
				seen[label] = true
			}
		}
		extras := make([]string, 0)
		for label := range a.SentimentBreakdown {
			if !seen[label] {
				extras = append(extras, label)
			}
		}
		sort.Strings(extras)
		for _, label := range extras {
			lines = append(lines, fmt.Sprintf("  %s: %s", label, percent(a.SentimentBreakdown[label])))
		}
	}

	lines = append(lines,
		"",
		"INTENT CLASSIFICATION",
		rule,
		fmt.Sprintf("Primary Intent: %s (Confidence: %s)", orNull(a.PrimaryIntent), percent(a.IntentConfidence)),
	)
	if len(a.IntentScores) > 0 {
		lines = append(lines, "", "Intent Scores:")
		for _, entry := range sortedScores(a.IntentScores) {
			lines = append(lines, fmt.Sprintf("  %s: %s", entry.Name, percent(entry.Value)))
		}
	}
	if len(a.SecondaryIntents) > 0 {
		lines = append(lines, fmt.Sprintf("Secondary Intents: %s", strings.Join(a.SecondaryIntents, ", ")))
	}

	lines = append(lines,
		"",
		"CONTENT SUMMARY",
		rule,
		fmt.Sprintf("Content Type: %s", strings.ToUpper(a.ContentType)),
	)
	if len(a.KeyTopics) > 0 {
		lines = append(lines, fmt.Sprintf("Key Topics: %s", strings.Join(a.KeyTopics, ", ")))
	}
	lines = append(lines,
		"",
		"Summary:",
		a.Summary,
		"",
		banner,
	)

	return strings.Join(lines, "\n")
}

// WriteAnalysisReport persists the rendered report into the output
// directory, overwriting prior runs, and records the path on the result.
func WriteAnalysisReport(result *model.AnalysisResult, outputDir string) error {
	path := filepath.Join(outputDir, AnalysisReportFileName)
	if err := os.WriteFile(path, []byte(RenderAnalysisReport(result)), 0o644); err != nil {
		return fmt.Errorf("failed to write analysis report: %w", err)
	}
	result.ReportFilePath = path
	return nil
}

// MediaAnalysis runs the content analysis over the English transcript:
// emotion, sentiment, intent, and summary. The transcript is bounded before
// prompting, the reply is normalized with defaults, and the rendered report
// is written alongside the transcripts. A failed generation call is fatal;
// an empty or unparseable reply degrades to a fully defaulted result.
type MediaAnalysis struct {
	cor.BaseCommand
	generator          cloud.ContentGenerator
	prompt             string
	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
}

func NewMediaAnalysis(name string, generator cloud.ContentGenerator, prompt string) *MediaAnalysis {
	base := cor.NewBaseCommand(name)
	in, _ := base.GetMeter().Int64Counter(fmt.Sprintf("%s.tokens.input", name))
	out, _ := base.GetMeter().Int64Counter(fmt.Sprintf("%s.tokens.output", name))
	return &MediaAnalysis{
		BaseCommand:        *base,
		generator:          generator,
		prompt:             prompt,
		inputTokenCounter:  in,
		outputTokenCounter: out,
	}
}

func (a *MediaAnalysis) Execute(context cor.Context) {
	ctx, span := a.GetTracer().Start(context.GetContext(), a.GetName())
	defer span.End()

	transcription := context.Get(a.GetInputParam()).(*model.TranscriptionResult)
	outputDir := context.Get(GetOutputDirParamName()).(string)

	analyzedText := PrepareAnalysisInput(transcription.TranslatedText)
	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{
			cloud.NewTextPart(a.prompt + "\n\nTRANSCRIPT:\n" + analyzedText),
		}},
	}

	text, err := cloud.GenerateText(ctx, a.inputTokenCounter, a.outputTokenCounter, a.generator, contents)
	if err != nil {
		context.AddError(a.GetName(), fmt.Errorf("analysis generation failed: %w", err))
		a.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	result := NormalizeAnalysis(normalize.ParseStructured(text), analyzedText)
	if len(result.DefaultedFields) > 0 {
		slog.Warn("analysis reply missing fields, defaults applied",
			"defaulted", strings.Join(result.DefaultedFields, ","))
	}

	if err := WriteAnalysisReport(result, outputDir); err != nil {
		context.AddError(a.GetName(), err)
		a.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	slog.Info("analysis complete",
		"sentiment", result.OverallSentiment,
		"dominant_emotion", orNull(result.DominantEmotion),
		"intent", orNull(result.PrimaryIntent))
	context.Add(GetAnalysisParamName(), result)
	context.Add(a.GetOutputParam(), result)
	a.GetSuccessCounter().Add(context.GetContext(), 1)
}
