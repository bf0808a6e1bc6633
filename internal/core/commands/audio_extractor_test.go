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
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// newExtractorContext builds a chain context primed the way the classifier
// leaves it: asset on the chain input, output directory on its canonical key.
func newExtractorContext(t *testing.T, asset *model.MediaAsset) cor.Context {
	t.Helper()
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(GetOutputDirParamName(), t.TempDir())
	chainCtx.Add(cor.CtxIn, asset)
	chainCtx.Add(GetMediaAssetParamName(), asset)
	return chainCtx
}

// TestAudioExtractorPassthroughAudio verifies audio assets are never
// transcoded: the processed media is the original file.
func TestAudioExtractorPassthroughAudio(t *testing.T) {
	asset := &model.MediaAsset{
		LocalPath:   "/media/interview.mp3",
		DisplayName: "interview.mp3",
		Kind:        model.MediaKindAudio,
	}
	chainCtx := newExtractorContext(t, asset)

	NewAudioExtractor("audio_extractor", "/usr/bin/ffmpeg").Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	processed := chainCtx.Get(GetProcessedMediaParamName()).(*model.ProcessedMedia)
	assert.Equal(t, asset.LocalPath, processed.Path)
	assert.Equal(t, "audio/mpeg", processed.MIMEType)
}

// TestAudioExtractorVideoWithoutTranscoder verifies the degraded path: a
// video asset with no transcoder available passes through whole, keeping its
// video MIME type, and the chain continues without error.
func TestAudioExtractorVideoWithoutTranscoder(t *testing.T) {
	asset := &model.MediaAsset{
		LocalPath:   "/media/keynote.mp4",
		DisplayName: "keynote.mp4",
		Kind:        model.MediaKindVideo,
	}
	chainCtx := newExtractorContext(t, asset)

	NewAudioExtractor("audio_extractor", "").Execute(chainCtx)

	assert.False(t, chainCtx.HasErrors())
	processed := chainCtx.Get(GetProcessedMediaParamName()).(*model.ProcessedMedia)
	assert.Equal(t, asset.LocalPath, processed.Path)
	assert.Equal(t, "video/mp4", processed.MIMEType)
}

// TestAudioExtractorBrokenTranscoderIsFatal verifies that a transcoder path
// that exists in configuration but fails to run records an ExtractionError
// on the chain instead of silently passing the video through.
func TestAudioExtractorBrokenTranscoderIsFatal(t *testing.T) {
	asset := &model.MediaAsset{
		LocalPath:   "/media/keynote.mp4",
		DisplayName: "keynote.mp4",
		Kind:        model.MediaKindVideo,
	}
	chainCtx := newExtractorContext(t, asset)

	NewAudioExtractor("audio_extractor", "/no/such/transcoder").Execute(chainCtx)

	assert.True(t, chainCtx.HasErrors())
	var found bool
	for _, err := range chainCtx.GetErrors() {
		var extraction *ExtractionError
		if assert.ErrorAs(t, err, &extraction) {
			found = true
		}
	}
	assert.True(t, found)
}

// TestResolveFFmpegPathConfiguredMissing verifies a configured path that
// does not exist is not blindly trusted.
func TestResolveFFmpegPathConfiguredMissing(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("PATH", t.TempDir())
	assert.Equal(t, "", ResolveFFmpegPath("/no/such/dir/ffmpeg"))
}
