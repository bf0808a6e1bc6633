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
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/normalize"
	"github.com/stretchr/testify/assert"
)

// TestNormalizeTranscriptionComplete verifies a fully populated reply passes
// through with the language lowercased and nothing defaulted.
func TestNormalizeTranscriptionComplete(t *testing.T) {
	rec := normalize.Record{
		"detected_language":        " ES ",
		"language_confidence":      0.87,
		"raw_transcription":        "Hola mundo.",
		"translated_transcription": "Hello world.",
	}

	result := NormalizeTranscription(rec)

	assert.Equal(t, "es", result.DetectedLanguage)
	assert.Equal(t, 0.87, result.LanguageConfidence)
	assert.Equal(t, "Hola mundo.", result.RawText)
	assert.Equal(t, "Hello world.", result.TranslatedText)
	assert.Empty(t, result.DefaultedFields)
}

// TestNormalizeTranscriptionDefaults verifies every fallback on an empty
// record: english language, 0.95 confidence, empty transcripts, and all four
// fields reported as defaulted.
func TestNormalizeTranscriptionDefaults(t *testing.T) {
	result := NormalizeTranscription(normalize.Record{})

	assert.Equal(t, DefaultDetectedLanguage, result.DetectedLanguage)
	assert.Equal(t, DefaultLanguageConfidence, result.LanguageConfidence)
	assert.Equal(t, "", result.RawText)
	assert.Equal(t, "", result.TranslatedText)
	assert.ElementsMatch(t,
		[]string{"detected_language", "language_confidence", "raw_transcription", "translated_transcription"},
		result.DefaultedFields)
}

// TestNormalizeTranscriptionTranslationFallsBackToRaw verifies that a
// missing translation reuses the raw transcription, so English-only media
// never produces an empty translated transcript.
func TestNormalizeTranscriptionTranslationFallsBackToRaw(t *testing.T) {
	rec := normalize.Record{
		"detected_language":   "en",
		"language_confidence": 0.99,
		"raw_transcription":   "Already in English.",
	}

	result := NormalizeTranscription(rec)

	assert.Equal(t, "Already in English.", result.TranslatedText)
	assert.Equal(t, []string{"translated_transcription"}, result.DefaultedFields)
}

// TestNormalizeTranscriptionTrimsWhitespace verifies padded model replies do
// not leak whitespace into the transcripts, and that the translation fallback
// compares the trimmed value, so a whitespace-only translation still falls
// back to the raw transcription.
func TestNormalizeTranscriptionTrimsWhitespace(t *testing.T) {
	rec := normalize.Record{
		"detected_language":        "es",
		"language_confidence":      0.9,
		"raw_transcription":        "  Hola mundo.  \n",
		"translated_transcription": "  Hello world.  \n",
	}

	result := NormalizeTranscription(rec)

	assert.Equal(t, "Hola mundo.", result.RawText)
	assert.Equal(t, "Hello world.", result.TranslatedText)
	assert.Empty(t, result.DefaultedFields)

	rec["translated_transcription"] = "   \n\t"
	result = NormalizeTranscription(rec)

	assert.Equal(t, "Hola mundo.", result.TranslatedText)
	assert.Equal(t, []string{"translated_transcription"}, result.DefaultedFields)
}

// TestNormalizeTranscriptionNonNumericConfidence verifies a string-typed
// confidence falls back to the default instead of failing.
func TestNormalizeTranscriptionNonNumericConfidence(t *testing.T) {
	rec := normalize.Record{
		"detected_language":        "fr",
		"language_confidence":      "very sure",
		"raw_transcription":        "Bonjour.",
		"translated_transcription": "Hello.",
	}

	result := NormalizeTranscription(rec)

	assert.Equal(t, DefaultLanguageConfidence, result.LanguageConfidence)
	assert.Equal(t, []string{"language_confidence"}, result.DefaultedFields)
}

// TestWriteTranscripts verifies both artifacts land in the output directory
// under their fixed names, paths recorded on the result, and that a second
// write overwrites rather than fails.
func TestWriteTranscripts(t *testing.T) {
	dir := t.TempDir()
	result := model.GetExampleTranscription()

	assert.NoError(t, WriteTranscripts(result, dir))
	assert.Equal(t, filepath.Join(dir, TranscriptionRawFileName), result.RawFilePath)
	assert.Equal(t, filepath.Join(dir, TranscriptionEnglishFileName), result.TranslatedFilePath)

	raw, err := os.ReadFile(result.RawFilePath)
	assert.NoError(t, err)
	assert.Equal(t, result.RawText, string(raw))

	result.TranslatedText = "Hello again"
	assert.NoError(t, WriteTranscripts(result, dir))
	en, err := os.ReadFile(result.TranslatedFilePath)
	assert.NoError(t, err)
	assert.Equal(t, "Hello again", string(en))
}
