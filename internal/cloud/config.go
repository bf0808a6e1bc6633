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

// Package cloud defines the application configuration, loaded from TOML
// files, and the clients used to talk to the generative inference provider.
// This file centralizes the configuration structs: general application
// settings, media directories, prompt templates, and per-stage model
// parameters.
package cloud

import "google.golang.org/genai"

// DefaultModelName is used when neither the configuration nor the
// GEMINI_MODEL environment variable names a model.
const DefaultModelName = "gemini-2.0-flash-exp"

// DefaultSafetySettings configures non-restrictive content thresholds. The
// pipeline processes user-supplied recordings whose content is not ours to
// police; blocking categories here would silently truncate transcripts.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// PromptTemplates holds the fixed instructional prompts for the two
// inference stages.
type PromptTemplates struct {
	TranscribePrompt string `toml:"transcribe"` // Instructions for transcription + translation.
	AnalyzePrompt    string `toml:"analyze"`    // Instructions for four-dimension content analysis.
}

// GeminiModel holds the generation parameters for one model role.
type GeminiModel struct {
	Model              string  `toml:"model"`               // The model identifier, e.g. "gemini-2.0-flash-exp".
	SystemInstructions string  `toml:"system_instructions"` // Optional system instructions.
	Temperature        float32 `toml:"temperature"`         // Sampling temperature.
	TopP               float32 `toml:"top_p"`
	TopK               float32 `toml:"top_k"`
	MaxTokens          int32   `toml:"max_tokens"`    // Output token ceiling.
	OutputFormat       string  `toml:"output_format"` // Response MIME type, e.g. "application/json".
	RateLimit          int     `toml:"rate_limit"`    // Requests per second allowed against the provider.
}

// Media holds the filesystem and transcoder settings for the pipeline.
type Media struct {
	UploadDir  string `toml:"upload_dir"`  // Where inbound files and URL downloads are written.
	OutputDir  string `toml:"output_dir"`  // Base directory for per-request artifact directories.
	FFmpegPath string `toml:"ffmpeg_path"` // Optional override for the ffmpeg executable location.
}

// Config is the root configuration for the application.
type Config struct {
	Application struct {
		Name                  string `toml:"name"`
		Port                  int    `toml:"port"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // 0 leaves pipeline runs unbounded.
	} `toml:"application"`
	Media           Media                  `toml:"media"`
	PromptTemplates PromptTemplates        `toml:"prompt_templates"`
	AgentModels     map[string]GeminiModel `toml:"agent_models"` // Keyed by role: "transcribe", "analyze".
}

// Model role keys in Config.AgentModels.
const (
	TranscribeModelKey = "transcribe"
	AnalyzeModelKey    = "analyze"
)

// NewConfig creates a Config seeded with working defaults so the application
// can run with no configuration files present. TOML files overwrite whatever
// they name.
func NewConfig() *Config {
	c := &Config{
		AgentModels: make(map[string]GeminiModel),
	}
	c.Application.Name = "media-insight-pipeline"
	c.Application.Port = 8080
	c.Media.UploadDir = "data/uploads"
	c.Media.OutputDir = "data/output"
	c.PromptTemplates.TranscribePrompt = DefaultTranscribePrompt
	c.PromptTemplates.AnalyzePrompt = DefaultAnalyzePrompt
	c.AgentModels[TranscribeModelKey] = GeminiModel{
		Model:        DefaultModelName,
		Temperature:  0.1,
		MaxTokens:    4096,
		OutputFormat: "application/json",
		RateLimit:    2,
	}
	c.AgentModels[AnalyzeModelKey] = GeminiModel{
		Model:        DefaultModelName,
		Temperature:  0.2,
		MaxTokens:    2048,
		OutputFormat: "application/json",
		RateLimit:    2,
	}
	return c
}
