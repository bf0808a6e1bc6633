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

// Package cloud provides components for interacting with the inference
// provider. This file initializes the client objects the application shares:
// the Generative AI client, the file service wrapper, and one rate-limited
// model per configured role. The resulting ServiceClients struct is a simple
// dependency container handed to workflows and API handlers.
package cloud

import (
	"context"

	"google.golang.org/genai"
)

// ServiceClients is the container for all external-service clients.
type ServiceClients struct {
	GenAIClient *genai.Client
	FileService *MediaFileService
	AgentModels map[string]*QuotaAwareGenerativeAIModel // Keyed by role from Config.AgentModels.
}

// NewCloudServiceClients initializes the provider clients from the
// configuration. The credential is resolved here, once, before any network
// call; its absence is a configuration error that aborts startup.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	apiKey, err := ResolveAPIKey()
	if err != nil {
		return nil, err
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for key, values := range config.AgentModels {
		cfg := &genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](values.Temperature),
			MaxOutputTokens:  values.MaxTokens,
			SafetySettings:   DefaultSafetySettings,
			ResponseMIMEType: values.OutputFormat,
		}
		if values.TopP > 0 {
			cfg.TopP = genai.Ptr[float32](values.TopP)
		}
		if values.TopK > 0 {
			cfg.TopK = genai.Ptr[float32](values.TopK)
		}
		if values.SystemInstructions != "" {
			cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}}
		}
		agentModels[key] = NewQuotaAwareModel(cfg, ResolveModelName(values.Model), gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		GenAIClient: gc,
		FileService: NewMediaFileService(gc),
		AgentModels: agentModels,
	}, nil
}
