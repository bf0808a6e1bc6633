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

// Package normalize recovers structured records from generative model
// replies. The model is instructed to emit strict JSON but does not always
// comply: replies arrive wrapped in prose, fenced in markdown, or partially
// corrupted. ParseStructured tolerates all of those shapes and never fails;
// the worst case is an empty record. The coercion helpers in this package
// give the pipeline stages a uniform way to read loosely typed fields out of
// a recovered record.
package normalize

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Fence is the marker delimiting a markdown code block in a model reply.
const Fence = "```"

// Record is a recovered key/value document from a model reply.
type Record map[string]interface{}

// ParseStructured attempts, in order: a direct parse of the whole text, a
// parse of the content between the first pair of code-fence markers, and a
// parse of the span from the first '{' to the last '}'. When all three fail
// it logs a truncated sample of the offending text and returns an empty
// record. It never returns an error.
func ParseStructured(text string) Record {
	t := strings.TrimSpace(text)

	var out Record
	if err := json.Unmarshal([]byte(t), &out); err == nil && out != nil {
		return out
	}

	// Markdown blocks like ```json ... ```
	if start := strings.Index(t, Fence); start != -1 {
		inner := t[start+len(Fence):]
		if end := strings.Index(inner, Fence); end > 0 {
			candidate := strings.TrimSpace(inner[:end])
			candidate = strings.TrimPrefix(candidate, "json")
			out = nil
			if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &out); err == nil && out != nil {
				return out
			}
		}
	}

	// A bare JSON object embedded in prose.
	s := strings.Index(t, "{")
	e := strings.LastIndex(t, "}")
	if s != -1 && e != -1 && e > s {
		out = nil
		if err := json.Unmarshal([]byte(t[s:e+1]), &out); err == nil && out != nil {
			return out
		}
	}

	slog.Warn("failed to parse structured model output", "sample", truncate(t, 200))
	return Record{}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// String returns the trimmed string under key, or def when the field is
// absent, empty, or not a string.
func (r Record) String(key, def string) string {
	if v, ok := r[key].(string); ok {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return def
}

// StringOK returns the raw string under key and whether the field was
// present as a string. Callers that need to distinguish "absent" from
// "empty" use this instead of String.
func (r Record) StringOK(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}

// StringPtr returns the string under key, or nil when absent or not a string.
func (r Record) StringPtr(key string) *string {
	if v, ok := r[key].(string); ok {
		if t := strings.TrimSpace(v); t != "" {
			return &t
		}
	}
	return nil
}

// Float returns the numeric value under key coerced to float64, or def when
// the field is absent or non-numeric. Unmarshal delivers every JSON number
// as float64; the int case serves records built directly in code.
func (r Record) Float(key string, def float64) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return def, false
}

// ScoreMap returns the mapping of names to numeric scores under key. Missing
// or malformed fields yield an empty map; non-numeric entries are skipped.
func (r Record) ScoreMap(key string) (map[string]float64, bool) {
	out := make(map[string]float64)
	raw, ok := r[key].(map[string]interface{})
	if !ok {
		return out, false
	}
	for name, value := range raw {
		if f, isNum := value.(float64); isNum {
			out[name] = f
		}
	}
	return out, true
}

// StringSlice returns the ordered list of strings under key. Missing or
// malformed fields yield an empty slice; non-string entries are skipped.
func (r Record) StringSlice(key string) ([]string, bool) {
	out := make([]string, 0)
	raw, ok := r[key].([]interface{})
	if !ok {
		return out, false
	}
	for _, value := range raw {
		if s, isStr := value.(string); isStr {
			out = append(out, s)
		}
	}
	return out, true
}
