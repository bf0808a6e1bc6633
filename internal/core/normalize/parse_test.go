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

// Package normalize_test verifies the tolerant recovery of structured
// records from the reply shapes generative models actually produce.
package normalize_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/normalize"
	"github.com/zeebo/assert"
)

// TestParseStrictJSON verifies the happy path: a reply that is exactly the
// JSON document it was asked for.
func TestParseStrictJSON(t *testing.T) {
	rec := normalize.ParseStructured(`{"detected_language": "es", "language_confidence": 0.99}`)
	assert.Equal(t, "es", rec.String("detected_language", ""))
	conf, ok := rec.Float("language_confidence", 0)
	assert.True(t, ok)
	assert.Equal(t, 0.99, conf)
}

// TestParseFencedJSON verifies recovery from a markdown code block, with and
// without the language tag.
func TestParseFencedJSON(t *testing.T) {
	rec := normalize.ParseStructured("```json\n{\"overall_sentiment\": \"positive\"}\n```")
	assert.Equal(t, "positive", rec.String("overall_sentiment", ""))

	rec = normalize.ParseStructured("```\n{\"overall_sentiment\": \"negative\"}\n```")
	assert.Equal(t, "negative", rec.String("overall_sentiment", ""))
}

// TestParseEmbeddedJSON verifies recovery of a bare object wrapped in prose
// on both sides.
func TestParseEmbeddedJSON(t *testing.T) {
	text := `Sure! Here is the analysis you asked for: {"summary": "a short talk"} Hope that helps.`
	rec := normalize.ParseStructured(text)
	assert.Equal(t, "a short talk", rec.String("summary", ""))
}

// TestParseGarbage verifies that unrecoverable text degrades to an empty,
// usable record instead of an error.
func TestParseGarbage(t *testing.T) {
	rec := normalize.ParseStructured("I could not process the audio, sorry about that.")
	assert.NotNil(t, rec)
	assert.Equal(t, 0, len(rec))
	assert.Equal(t, "fallback", rec.String("anything", "fallback"))
}

// TestParseIdempotent verifies that parsing the same reply twice yields the
// same record.
func TestParseIdempotent(t *testing.T) {
	text := "```json\n{\"key_topics\": [\"go\", \"media\"]}\n```"
	first := normalize.ParseStructured(text)
	second := normalize.ParseStructured(text)
	firstTopics, _ := first.StringSlice("key_topics")
	secondTopics, _ := second.StringSlice("key_topics")
	assert.DeepEqual(t, firstTopics, secondTopics)
}

// TestCoercionHelpers exercises the typed accessors against loosely typed
// field values.
func TestCoercionHelpers(t *testing.T) {
	rec := normalize.Record{
		"name":    "  spaced  ",
		"conf":    "not-a-number",
		"count":   3,
		"scores":  map[string]interface{}{"joy": 0.8, "bad": "oops"},
		"topics":  []interface{}{"one", 2, "three"},
		"missing": nil,
	}

	assert.Equal(t, "spaced", rec.String("name", ""))
	assert.Nil(t, rec.StringPtr("absent"))

	conf, ok := rec.Float("conf", 0.5)
	assert.False(t, ok)
	assert.Equal(t, 0.5, conf)

	count, ok := rec.Float("count", 0)
	assert.True(t, ok)
	assert.Equal(t, 3.0, count)

	scores, ok := rec.ScoreMap("scores")
	assert.True(t, ok)
	assert.Equal(t, 1, len(scores))
	assert.Equal(t, 0.8, scores["joy"])

	topics, ok := rec.StringSlice("topics")
	assert.True(t, ok)
	assert.DeepEqual(t, []string{"one", "three"}, topics)
}
