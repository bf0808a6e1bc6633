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
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
)

// ExtractedAudioFileName is the fixed artifact name the extractor writes
// into the request's output directory.
const ExtractedAudioFileName = "extracted_audio.mp3"

// ResolveFFmpegPath locates the transcoder binary. Resolution order: the
// configured path, the FFMPEG_PATH environment variable, then PATH lookup.
// An empty return means no transcoder is available, which is a degraded
// mode rather than an error: video is analyzed whole.
func ResolveFFmpegPath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	if env := os.Getenv("FFMPEG_PATH"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env
		}
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p
	}
	return ""
}

// ExtractAudio transcodes a video's audio track to MP3 in the output
// directory, overwriting any prior artifact. The track is stripped of video
// (-vn) and encoded with libmp3lame at VBR quality 2.
func ExtractAudio(ffmpegPath string, videoPath string, outputDir string) (string, error) {
	outPath := filepath.Join(outputDir, ExtractedAudioFileName)
	cmd := exec.Command(ffmpegPath,
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-q:a", "2",
		outPath,
		"-loglevel", "error",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		slog.Error("transcoder invocation failed", "video", videoPath, "output", string(out), "error", err)
		return "", &ExtractionError{Path: videoPath, Err: err}
	}
	return outPath, nil
}

// AudioExtractor turns the classified asset into the ProcessedMedia the
// inference stages consume.
//
// Logic Flow:
//  1. Audio assets pass through untouched.
//  2. Video assets have their audio track extracted when a transcoder is
//     available; the MP3 becomes the processed media.
//  3. Video assets without a transcoder pass through whole, with a warning,
//     since the provider accepts video directly.
//  4. A transcoder that is present but fails is fatal.
type AudioExtractor struct {
	cor.BaseCommand
	ffmpegPath string
}

func NewAudioExtractor(name string, ffmpegPath string) *AudioExtractor {
	return &AudioExtractor{BaseCommand: *cor.NewBaseCommand(name), ffmpegPath: ffmpegPath}
}

func (a *AudioExtractor) Execute(context cor.Context) {
	_, span := a.GetTracer().Start(context.GetContext(), a.GetName())
	defer span.End()

	asset := context.Get(a.GetInputParam()).(*model.MediaAsset)
	outputDir := context.Get(GetOutputDirParamName()).(string)

	processed := &model.ProcessedMedia{
		Path:     asset.LocalPath,
		MIMEType: ResolveMIMEType(asset.LocalPath, asset.DeclaredMIMEType),
	}

	if asset.Kind == model.MediaKindVideo {
		if a.ffmpegPath == "" {
			slog.Warn("no transcoder available, submitting full video for inference", "file", asset.DisplayName)
		} else {
			audioPath, err := ExtractAudio(a.ffmpegPath, asset.LocalPath, outputDir)
			if err != nil {
				context.AddError(a.GetName(), err)
				a.GetErrorCounter().Add(context.GetContext(), 1)
				return
			}
			processed = &model.ProcessedMedia{Path: audioPath, MIMEType: "audio/mpeg"}
			slog.Info("extracted audio track", "file", asset.DisplayName, "audio", audioPath)
		}
	}

	context.Add(GetProcessedMediaParamName(), processed)
	context.Add(a.GetOutputParam(), processed)
	a.GetSuccessCounter().Add(context.GetContext(), 1)
}
