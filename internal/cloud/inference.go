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
// provider. This file wraps the Generative AI SDK:
//
//   - QuotaAwareGenerativeAIModel decorates a model handle with a rate
//     limiter so the pipeline stays inside the provider's per-minute quota.
//     The limiter delays a first attempt; failed calls are never re-issued —
//     every fatal error propagates to the caller on first occurrence.
//   - MediaFileService uploads a local binary to the provider's file service
//     and resolves the stable reference URI that generation calls carry in
//     place of re-uploading the bytes.
//   - GenerateText runs one generation call and extracts the textual payload.
//     The SDK's response surface is inconsistent across call types, so
//     extraction probes a chain of known response shapes; when none yields
//     text the result is an empty string, not an error, and the caller must
//     treat empty as "nothing to parse".
package cloud

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ErrNoRemoteReference signals that the provider accepted an upload but
// returned no addressable reference for it. Fatal, never retried.
var ErrNoRemoteReference = errors.New("provider returned no usable reference for uploaded file")

// filePollInterval is how often an uploaded file's state is re-checked while
// the provider is still processing it.
const filePollInterval = 2 * time.Second

// ContentGenerator is the single-call generation surface pipeline commands
// depend on. QuotaAwareGenerativeAIModel is the production implementation.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error)
}

// QuotaAwareGenerativeAIModel decorates a generative model handle with a
// rate limiter.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               *rate.Limiter
}

// NewQuotaAwareModel wraps a model handle and its generation config with a
// limiter allowing requestsPerSecond calls.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, modelHandle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             modelHandle,
		RateLimit:               rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// GenerateContent waits for the limiter, then issues exactly one request.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
}

// responseTextExtractor is the adapter interface for pulling the textual
// payload out of one known response shape. Implementations are tried in
// order; add adapters here as the provider's shapes change, without touching
// callers.
type responseTextExtractor interface {
	extract(resp *genai.GenerateContentResponse) (string, bool)
}

// convenienceTextExtractor uses the SDK's aggregated Text helper.
type convenienceTextExtractor struct{}

func (convenienceTextExtractor) extract(resp *genai.GenerateContentResponse) (string, bool) {
	text := resp.Text()
	return text, text != ""
}

// candidatePartsExtractor walks candidates and concatenates their text
// parts, the shape older call types answer with.
type candidatePartsExtractor struct{}

func (candidatePartsExtractor) extract(resp *genai.GenerateContentResponse) (string, bool) {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), sb.Len() > 0
}

var textExtractors = []responseTextExtractor{
	convenienceTextExtractor{},
	candidatePartsExtractor{},
}

// ExtractResponseText probes the known response shapes in order and returns
// the first textual payload found, or "" when none of them yields text.
func ExtractResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, extractor := range textExtractors {
		if text, ok := extractor.extract(resp); ok {
			return text
		}
	}
	return ""
}

// GenerateText executes one generation request against the wrapped model,
// records token usage on the supplied counters, and extracts the textual
// payload. An unextractable payload yields "", nil.
func GenerateText(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	generator ContentGenerator,
	content []*genai.Content) (string, error) {
	resp, err := generator.GenerateContent(ctx, content)
	if err != nil {
		return "", err
	}

	if resp.UsageMetadata != nil {
		if inputTokenCounter != nil {
			inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		}
		if outputTokenCounter != nil {
			outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
		}
	}

	return ExtractResponseText(resp), nil
}

// NewTextPart builds a text content part for a generation request.
func NewTextPart(in string) *genai.Part {
	return &genai.Part{Text: in}
}

// NewFileDataPart builds a remote-file reference part for a generation
// request.
func NewFileDataPart(uri string, mimeType string) *genai.Part {
	return &genai.Part{FileData: &genai.FileData{FileURI: uri, MIMEType: mimeType}}
}

// MediaFileService registers local binaries with the provider's file
// service. One upload happens per request per media asset; handles are not
// cached or reused across requests.
type MediaFileService struct {
	client *genai.Client
}

// NewMediaFileService wraps the provider client's file surface.
func NewMediaFileService(client *genai.Client) *MediaFileService {
	return &MediaFileService{client: client}
}

// UploadAndReference uploads the binary once, waits out the provider's
// processing state, then fetches the file's metadata to obtain a stable
// reference URI and confirmed MIME type. A missing URI is fatal.
func (s *MediaFileService) UploadAndReference(ctx context.Context, localPath string, mimeType string, displayName string) (*model.UploadedRemoteFile, error) {
	if displayName == "" {
		displayName = filepath.Base(localPath)
	}

	uploaded, err := s.client.Files.UploadFromPath(ctx, localPath, &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload media to file service: %w", err)
	}

	// The file is not usable until the provider finishes processing it.
	for uploaded.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(filePollInterval):
		}
		if uploaded, err = s.client.Files.Get(ctx, uploaded.Name, nil); err != nil {
			return nil, fmt.Errorf("failed to get file status during processing: %w", err)
		}
	}
	if uploaded.State == genai.FileStateFailed {
		return nil, fmt.Errorf("provider failed to process uploaded file %q", uploaded.Name)
	}

	if uploaded.URI == "" {
		return nil, ErrNoRemoteReference
	}

	remoteMIME := uploaded.MIMEType
	if remoteMIME == "" {
		remoteMIME = mimeType
	}
	return &model.UploadedRemoteFile{
		Name:     uploaded.Name,
		URI:      uploaded.URI,
		MIMEType: remoteMIME,
	}, nil
}

// Delete removes a registered file from the provider's file service.
func (s *MediaFileService) Delete(ctx context.Context, name string) error {
	_, err := s.client.Files.Delete(ctx, name, nil)
	return err
}
