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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewConfigDefaults verifies the compiled-in defaults let the
// application run with no configuration files at all.
func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()

	assert.Equal(t, 8080, c.Application.Port)
	assert.Equal(t, 0, c.Application.RequestTimeoutSeconds)
	assert.Equal(t, "data/uploads", c.Media.UploadDir)
	assert.Equal(t, "data/output", c.Media.OutputDir)
	assert.NotEmpty(t, c.PromptTemplates.TranscribePrompt)
	assert.NotEmpty(t, c.PromptTemplates.AnalyzePrompt)

	transcribe, ok := c.AgentModels[TranscribeModelKey]
	require.True(t, ok)
	assert.Equal(t, float32(0.1), transcribe.Temperature)
	assert.Equal(t, int32(4096), transcribe.MaxTokens)
	assert.Equal(t, "application/json", transcribe.OutputFormat)

	analyze, ok := c.AgentModels[AnalyzeModelKey]
	require.True(t, ok)
	assert.Equal(t, float32(0.2), analyze.Temperature)
	assert.Equal(t, int32(2048), analyze.MaxTokens)
}

// TestResolveAPIKey verifies the credential lookup order and the failure on
// absence.
func TestResolveAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKeyPrimary, "")
	t.Setenv(EnvAPIKeySecondary, "")

	_, err := ResolveAPIKey()
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	t.Setenv(EnvAPIKeySecondary, "secondary-key")
	key, err := ResolveAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "secondary-key", key)

	t.Setenv(EnvAPIKeyPrimary, "primary-key")
	key, err = ResolveAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "primary-key", key)
}

// TestResolveModelName verifies the override precedence: environment over
// configuration over the compiled-in default.
func TestResolveModelName(t *testing.T) {
	t.Setenv(EnvModelOverride, "")
	assert.Equal(t, "configured-model", ResolveModelName("configured-model"))
	assert.Equal(t, DefaultModelName, ResolveModelName(""))

	t.Setenv(EnvModelOverride, "override-model")
	assert.Equal(t, "override-model", ResolveModelName("configured-model"))
}
