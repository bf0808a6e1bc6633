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

// Package workflow wires the pipeline commands into the single end-to-end
// chain a request runs through: classify, extract, upload, transcribe,
// analyze, clean up, assemble. One workflow instance serves all requests;
// each Run gets its own chain context.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jaycherian/gcp-go-media-insights/internal/cloud"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/commands"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/services"
)

// MediaInsightWorkflow is the orchestrator for one media-to-insight run.
type MediaInsightWorkflow struct {
	config        *cloud.Config
	chain         cor.Chain
	transcribeNme string
}

// NewMediaInsightPipeline builds the production workflow from the shared
// service clients.
func NewMediaInsightPipeline(config *cloud.Config, clients *cloud.ServiceClients) *MediaInsightWorkflow {
	return newMediaInsightWorkflow(
		config,
		clients.FileService,
		clients.FileService,
		clients.AgentModels[cloud.TranscribeModelKey],
		clients.AgentModels[cloud.AnalyzeModelKey],
	)
}

func newMediaInsightWorkflow(
	config *cloud.Config,
	uploader commands.FileUploader,
	remover commands.FileRemover,
	transcriber cloud.ContentGenerator,
	analyzer cloud.ContentGenerator,
) *MediaInsightWorkflow {
	ffmpegPath := commands.ResolveFFmpegPath(config.Media.FFmpegPath)
	if ffmpegPath == "" {
		slog.Warn("no transcoder found, video will be submitted whole for inference")
	}

	chain := cor.NewBaseChain("media_insight")
	chain.AddCommand(commands.NewMediaTypeClassifier("media_type_classifier"))
	chain.AddCommand(commands.NewAudioExtractor("audio_extractor", ffmpegPath))
	chain.AddCommand(commands.NewMediaUpload("media_upload", uploader))
	chain.AddCommand(commands.NewMediaTranscription("media_transcription", transcriber, config.PromptTemplates.TranscribePrompt))
	chain.AddCommand(commands.NewMediaAnalysis("media_analysis", analyzer, config.PromptTemplates.AnalyzePrompt))
	chain.AddCommand(commands.NewMediaCleanup("media_cleanup", remover))
	chain.AddCommand(commands.NewResultAssembler("result_assembler"))

	transcribeName := cloud.DefaultModelName
	if m, ok := config.AgentModels[cloud.TranscribeModelKey]; ok {
		transcribeName = cloud.ResolveModelName(m.Model)
	}

	return &MediaInsightWorkflow{
		config:        config,
		chain:         chain,
		transcribeNme: transcribeName,
	}
}

// ModelName reports the model identifier serving transcription, for the
// response envelope.
func (w *MediaInsightWorkflow) ModelName() string {
	return w.transcribeNme
}

// Run executes the full pipeline for one asset.
//
// Logic Flow:
//  1. Verify the asset exists on disk; a missing path is a not-found error.
//  2. Lay out the artifact directory from the sanitized display name.
//  3. Run the chain; the first command failure stops it.
//  4. Hand back the assembled PipelineResult, or the first recorded error.
func (w *MediaInsightWorkflow) Run(ctx context.Context, asset *model.MediaAsset) (*model.PipelineResult, error) {
	if _, err := os.Stat(asset.LocalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("media file %s not found: %w", asset.LocalPath, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to stat media file %s: %w", asset.LocalPath, err)
	}
	if asset.DisplayName == "" {
		asset.DisplayName = asset.LocalPath
	}

	outputDir, err := services.NewIngestService(w.config.Media.UploadDir, w.config.Media.OutputDir).
		CreateOutputDirectory(asset.DisplayName)
	if err != nil {
		return nil, err
	}

	chainCtx := cor.NewBaseContext()
	defer chainCtx.Close()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.GetOutputDirParamName(), outputDir)
	chainCtx.Add(cor.CtxIn, asset)

	w.chain.Execute(chainCtx)

	if chainCtx.HasErrors() {
		return nil, firstError(chainCtx.GetErrors())
	}

	result, ok := chainCtx.Get(commands.GetPipelineResultParamName()).(*model.PipelineResult)
	if !ok {
		return nil, fmt.Errorf("pipeline finished without producing a result for %s", asset.DisplayName)
	}
	return result, nil
}

// firstError surfaces one recorded failure. The chain stops at the first
// error, so at most one entry exists.
func firstError(errs map[string]error) error {
	for name, err := range errs {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
