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
	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
)

// GetPipelineResultParamName returns the key holding the assembled
// PipelineResult the workflow hands back to its caller.
func GetPipelineResultParamName() string { return "__PIPELINE_RESULT__" }

// ResultAssembler is the terminal command. It gathers the stage outputs
// from their canonical keys into the single PipelineResult the workflow
// returns.
type ResultAssembler struct {
	cor.BaseCommand
}

func NewResultAssembler(name string) *ResultAssembler {
	return &ResultAssembler{BaseCommand: *cor.NewBaseCommand(name)}
}

func (r *ResultAssembler) Execute(context cor.Context) {
	_, span := r.GetTracer().Start(context.GetContext(), r.GetName())
	defer span.End()

	result := &model.PipelineResult{
		Asset:         context.Get(GetMediaAssetParamName()).(*model.MediaAsset),
		Processed:     context.Get(GetProcessedMediaParamName()).(*model.ProcessedMedia),
		Transcription: context.Get(GetTranscriptionParamName()).(*model.TranscriptionResult),
		Analysis:      context.Get(GetAnalysisParamName()).(*model.AnalysisResult),
		OutputDir:     context.Get(GetOutputDirParamName()).(string),
	}

	context.Add(GetPipelineResultParamName(), result)
	context.Add(r.GetOutputParam(), result)
	r.GetSuccessCounter().Add(context.GetContext(), 1)
}
