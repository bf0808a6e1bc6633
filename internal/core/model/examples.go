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

// Package model defines the data structures for the application. This file
// provides factory functions for hardcoded example instances. They serve as
// fixtures for tests and as documentation of the shape the generative model
// is instructed to produce.
package model

// GetExampleTranscription returns a fully populated TranscriptionResult.
func GetExampleTranscription() *TranscriptionResult {
	return &TranscriptionResult{
		DetectedLanguage:   "es",
		LanguageConfidence: 0.98,
		RawText:            "Hola a todos y bienvenidos al programa de hoy.",
		TranslatedText:     "Hello everyone and welcome to today's show.",
	}
}

// GetExampleAnalysis returns a fully populated AnalysisResult of the kind the
// analysis stage emits for a short motivational monologue.
func GetExampleAnalysis() *AnalysisResult {
	emotion := "joy"
	intent := "Motivational"
	return &AnalysisResult{
		DominantEmotion:   &emotion,
		EmotionConfidence: 0.82,
		EmotionScores: map[string]float64{
			"joy":         0.82,
			"excitement":  0.64,
			"contentment": 0.31,
		},
		OverallSentiment:    "positive",
		SentimentConfidence: 0.9,
		SentimentBreakdown: map[string]float64{
			"positive": 0.78,
			"neutral":  0.17,
			"negative": 0.05,
		},
		PrimaryIntent:    &intent,
		IntentConfidence: 0.74,
		IntentScores: map[string]float64{
			"Motivational":         0.74,
			"Personal Experience":  0.41,
			"Educational/Tutorial": 0.12,
		},
		SecondaryIntents: []string{"Personal Experience"},
		Summary:          "The speaker shares a personal story about perseverance and encourages the audience to keep working toward their goals.",
		KeyTopics:        []string{"perseverance", "goal setting", "personal growth"},
		ContentType:      "monologue",
	}
}
