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

package cloud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// TestExtractResponseText covers the known response shapes: the candidate
// walk, a multi-part candidate, a nil response, and one with no text at all.
func TestExtractResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "hello"}}}},
		},
	}
	assert.Equal(t, "hello", ExtractResponseText(resp))

	multi := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "first "}, {Text: "second"}}}},
		},
	}
	assert.Equal(t, "first second", ExtractResponseText(multi))

	assert.Equal(t, "", ExtractResponseText(nil))
	assert.Equal(t, "", ExtractResponseText(&genai.GenerateContentResponse{}))
}

// failingGenerator always errors, standing in for a provider failure.
type failingGenerator struct{}

func (failingGenerator) GenerateContent(context.Context, []*genai.Content) (*genai.GenerateContentResponse, error) {
	return nil, errors.New("quota exhausted")
}

// staticGenerator answers with a fixed response.
type staticGenerator struct {
	resp *genai.GenerateContentResponse
}

func (s staticGenerator) GenerateContent(context.Context, []*genai.Content) (*genai.GenerateContentResponse, error) {
	return s.resp, nil
}

// TestGenerateTextPropagatesError verifies a provider failure is returned
// as-is with no retry and no partial text.
func TestGenerateTextPropagatesError(t *testing.T) {
	text, err := GenerateText(context.Background(), nil, nil, failingGenerator{}, nil)
	require.Error(t, err)
	assert.Equal(t, "", text)
}

// TestGenerateTextEmptyPayload verifies an unextractable payload is not an
// error: the caller gets an empty string to normalize downstream.
func TestGenerateTextEmptyPayload(t *testing.T) {
	text, err := GenerateText(context.Background(), nil, nil, staticGenerator{resp: &genai.GenerateContentResponse{}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

// TestNewParts verifies the request part constructors.
func TestNewParts(t *testing.T) {
	text := NewTextPart("prompt")
	assert.Equal(t, "prompt", text.Text)

	file := NewFileDataPart("https://provider.example/files/x", "audio/mpeg")
	require.NotNil(t, file.FileData)
	assert.Equal(t, "https://provider.example/files/x", file.FileData.FileURI)
	assert.Equal(t, "audio/mpeg", file.FileData.MIMEType)
}
