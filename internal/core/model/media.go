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

// Package model defines the core data structures for the media insight
// pipeline. The objects in this file live for the duration of a single
// request: they are created by one pipeline stage, consumed by the next,
// and never shared across concurrent requests. None of them are mutated
// after creation.
package model

// MediaKind labels what the classifier decided a file is.
type MediaKind string

const (
	MediaKindAudio       MediaKind = "audio"
	MediaKindVideo       MediaKind = "video"
	MediaKindUnsupported MediaKind = "unsupported"
)

// MediaAsset describes the file a request asked the pipeline to process.
// It is created at ingestion; Kind is derived by the classifier and never
// mutated afterwards.
type MediaAsset struct {
	LocalPath        string    // Absolute path of the file on the local filesystem.
	DisplayName      string    // The human-supplied or URL-derived filename; also keys the output directory.
	DeclaredMIMEType string    // The content type declared at upload time, may be empty.
	Kind             MediaKind // audio, video, or unsupported.
}

// ProcessedMedia is the artifact actually submitted for inference. For audio
// inputs it equals the original asset; for video inputs it is the extracted
// audio track, or the original video when no transcoder is available.
type ProcessedMedia struct {
	Path     string
	MIMEType string
}

// UploadedRemoteFile is the handle the inference provider returns after
// accepting a binary upload. It is created once per request and referenced by
// the subsequent generation calls; there is no caching across requests.
type UploadedRemoteFile struct {
	Name     string // The provider-assigned resource name, used for cleanup.
	URI      string // The stable reference URI used in generation requests.
	MIMEType string // The MIME type the provider confirmed for the upload.
}

// TranscriptionResult holds the normalized output of the transcription stage.
// TranslatedText always equals RawText when the model supplied no translation.
type TranscriptionResult struct {
	DetectedLanguage   string   `json:"detected_language"`
	LanguageConfidence float64  `json:"language_confidence"`
	RawText            string   `json:"raw_transcription"`
	TranslatedText     string   `json:"english_transcription"`
	RawFilePath        string   `json:"-"`
	TranslatedFilePath string   `json:"-"`
	DefaultedFields    []string `json:"defaulted_fields,omitempty"`
}

// AnalysisResult holds the normalized output of the analysis stage. Every
// mapping and list field defaults to empty when the model omits it, every
// confidence defaults to 0.0, OverallSentiment defaults to "neutral" and
// ContentType to "unknown". DefaultedFields records which fields fell back
// so consumers can tell confident results from best-effort ones.
type AnalysisResult struct {
	DominantEmotion     *string            `json:"dominant_emotion"`
	EmotionConfidence   float64            `json:"emotion_confidence"`
	EmotionScores       map[string]float64 `json:"emotion_scores"`
	OverallSentiment    string             `json:"overall_sentiment"`
	SentimentConfidence float64            `json:"sentiment_confidence"`
	SentimentBreakdown  map[string]float64 `json:"sentiment_breakdown"`
	PrimaryIntent       *string            `json:"primary_intent"`
	IntentConfidence    float64            `json:"intent_confidence"`
	IntentScores        map[string]float64 `json:"intent_scores"`
	SecondaryIntents    []string           `json:"secondary_intents"`
	Summary             string             `json:"summary"`
	KeyTopics           []string           `json:"key_topics"`
	ContentType         string             `json:"content_type"`
	ReportFilePath      string             `json:"-"`
	DefaultedFields     []string           `json:"defaulted_fields,omitempty"`
}

// PipelineResult is the terminal artifact of one pipeline run, combining the
// asset provenance with both stage results and the artifact locations.
type PipelineResult struct {
	Asset         *MediaAsset
	Processed     *ProcessedMedia
	Transcription *TranscriptionResult
	Analysis      *AnalysisResult
	OutputDir     string
}

// Artifacts lists the on-disk files a pipeline run produced, in the shape the
// response envelope exposes them.
type Artifacts struct {
	ProcessedAudioPath string `json:"processed_audio_path"`
	RawTranscriptPath  string `json:"raw_transcript_path"`
	EnglishTranscript  string `json:"english_transcript_path"`
	AnalysisReportPath string `json:"analysis_report_path"`
}

// InsightResponse is the success envelope returned to callers.
type InsightResponse struct {
	Status        string               `json:"status"`
	Model         string               `json:"model"`
	Timestamp     string               `json:"timestamp"`
	OutputDir     string               `json:"output_dir"`
	Transcription *TranscriptionResult `json:"transcription"`
	Analysis      *AnalysisResult      `json:"analysis"`
	Artifacts     Artifacts            `json:"artifacts"`
}

// NewInsightResponse assembles the caller-facing envelope from a completed
// pipeline run.
func NewInsightResponse(result *PipelineResult, modelName string, timestamp string) *InsightResponse {
	return &InsightResponse{
		Status:        "success",
		Model:         modelName,
		Timestamp:     timestamp,
		OutputDir:     result.OutputDir,
		Transcription: result.Transcription,
		Analysis:      result.Analysis,
		Artifacts: Artifacts{
			ProcessedAudioPath: result.Processed.Path,
			RawTranscriptPath:  result.Transcription.RawFilePath,
			EnglishTranscript:  result.Transcription.TranslatedFilePath,
			AnalysisReportPath: result.Analysis.ReportFilePath,
		},
	}
}
