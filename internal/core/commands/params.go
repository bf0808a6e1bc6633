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

// Package commands provides the concrete Command implementations that make
// up the media insight pipeline. This file defines the canonical context
// keys the commands use to share request state beyond the chain's CtxIn /
// CtxOut piping. Using accessor functions keeps the keys consistent across
// the commands that read them.
package commands

// GetMediaAssetParamName returns the key holding the request's MediaAsset.
func GetMediaAssetParamName() string { return "__MEDIA_ASSET__" }

// GetOutputDirParamName returns the key holding the request's artifact
// directory path.
func GetOutputDirParamName() string { return "__OUTPUT_DIR__" }

// GetProcessedMediaParamName returns the key holding the ProcessedMedia that
// will be submitted for inference.
func GetProcessedMediaParamName() string { return "__PROCESSED_MEDIA__" }

// GetUploadedFileParamName returns the key holding the provider file handle.
func GetUploadedFileParamName() string { return "__UPLOADED_FILE__" }

// GetTranscriptionParamName returns the key holding the TranscriptionResult.
func GetTranscriptionParamName() string { return "__TRANSCRIPTION__" }

// GetAnalysisParamName returns the key holding the AnalysisResult.
func GetAnalysisParamName() string { return "__ANALYSIS__" }
