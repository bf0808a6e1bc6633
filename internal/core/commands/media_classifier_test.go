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
	"mime"
	"testing"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestClassifyKnownExtensions walks every extension in the supported sets
// and verifies the decision, including case insensitivity.
func TestClassifyKnownExtensions(t *testing.T) {
	audio := []string{"a.mp3", "b.wav", "c.flac", "d.aac", "e.ogg", "f.m4a", "g.wma", "UPPER.MP3"}
	for _, path := range audio {
		assert.Equal(t, model.MediaKindAudio, Classify(path), "expected audio for %s", path)
	}

	video := []string{"a.mp4", "b.avi", "c.mkv", "d.mov", "e.wmv", "f.flv", "g.webm", "h.m4v", "CLIP.MoV"}
	for _, path := range video {
		assert.Equal(t, model.MediaKindVideo, Classify(path), "expected video for %s", path)
	}
}

// TestClassifyUnsupported verifies that documents, extensionless names, and
// empty paths are rejected.
func TestClassifyUnsupported(t *testing.T) {
	for _, path := range []string{"notes.txt", "report.pdf", "archive", "", "image.png"} {
		assert.Equal(t, model.MediaKindUnsupported, Classify(path), "expected unsupported for %s", path)
	}
}

// TestClassifyMIMEFallback verifies that an extension outside the known sets
// still classifies when the platform MIME database maps it to an audio or
// video major type. The mapping is registered explicitly so the test does
// not depend on the host's MIME tables.
func TestClassifyMIMEFallback(t *testing.T) {
	err := mime.AddExtensionType(".mpga", "audio/mpeg")
	assert.NoError(t, err)
	assert.Equal(t, model.MediaKindAudio, Classify("track.mpga"))
}

// TestClassifyIsPure verifies that classification never consults the
// filesystem: a path that does not exist classifies the same as one that
// does.
func TestClassifyIsPure(t *testing.T) {
	assert.Equal(t, model.MediaKindVideo, Classify("/definitely/not/a/real/dir/clip.mp4"))
	assert.Equal(t, model.MediaKindAudio, Classify("relative/song.mp3"))
}

// TestResolveMIMEType verifies the resolution order: known extensions win,
// then the declared type, with audio/mpeg as the terminal fallback for
// unreadable unknowns.
func TestResolveMIMEType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", ResolveMIMEType("song.mp3", "application/octet-stream"))
	assert.Equal(t, "video/quicktime", ResolveMIMEType("clip.mov", ""))
	assert.Equal(t, "audio/mp4", ResolveMIMEType("voice.m4a", "audio/x-m4a"))

	// Unknown extension defers to the declared type.
	assert.Equal(t, "audio/custom", ResolveMIMEType("/no/such/file.zzz9", "audio/custom"))

	// Nothing known at all falls back to audio/mpeg.
	assert.Equal(t, "audio/mpeg", ResolveMIMEType("/no/such/file.zzz9", ""))
}
