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
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
)

// audioExtensions and videoExtensions are the authoritative classification
// sets. Extension matching wins over any MIME heuristic so classification
// stays deterministic for the formats the pipeline promises to support.
var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".flac": true, ".aac": true,
	".ogg": true, ".m4a": true, ".wma": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mkv": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true, ".m4v": true,
}

// extensionMIMETypes covers formats the platform MIME database misses or
// resolves inconsistently across systems.
var extensionMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".wma":  "audio/x-ms-wma",
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
}

// Classify decides whether a path names audio, video, or something the
// pipeline cannot process. Pure function of the path string: it never
// touches the filesystem, so the same path always classifies the same way.
// Extension sets are checked first; unknown extensions fall back to the
// platform MIME database's major type.
func Classify(path string) model.MediaKind {
	ext := strings.ToLower(filepath.Ext(path))
	if audioExtensions[ext] {
		return model.MediaKindAudio
	}
	if videoExtensions[ext] {
		return model.MediaKindVideo
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if strings.HasPrefix(mt, "audio/") {
			return model.MediaKindAudio
		}
		if strings.HasPrefix(mt, "video/") {
			return model.MediaKindVideo
		}
	}
	return model.MediaKindUnsupported
}

// ResolveMIMEType determines the MIME type submitted with the media upload.
// Resolution order: the known-extension table, the type declared at ingest,
// the platform MIME database, then content sniffing the first bytes of the
// file. Audio MPEG is the final fallback since the extractor emits MP3.
func ResolveMIMEType(path string, declared string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := extensionMIMETypes[ext]; ok {
		return mt
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		// Strip optional parameters such as "; charset=".
		if idx := strings.Index(mt, ";"); idx >= 0 {
			mt = mt[:idx]
		}
		return mt
	}
	if f, err := os.Open(path); err == nil {
		defer func() { _ = f.Close() }()
		head := make([]byte, 261)
		n, _ := f.Read(head)
		if kind, err := filetype.Match(head[:n]); err == nil && kind != filetype.Unknown {
			return kind.MIME.Value
		}
	}
	return "audio/mpeg"
}

// MediaTypeClassifier is the pipeline's first command. It takes the
// request's MediaAsset from the chain input, classifies it, and either
// annotates it with its kind or fails the chain with an UnsupportedMediaError
// before any expensive work happens.
type MediaTypeClassifier struct {
	cor.BaseCommand
}

func NewMediaTypeClassifier(name string) *MediaTypeClassifier {
	return &MediaTypeClassifier{BaseCommand: *cor.NewBaseCommand(name)}
}

func (m *MediaTypeClassifier) Execute(context cor.Context) {
	_, span := m.GetTracer().Start(context.GetContext(), m.GetName())
	defer span.End()

	asset := context.Get(m.GetInputParam()).(*model.MediaAsset)
	asset.Kind = Classify(asset.LocalPath)

	if asset.Kind == model.MediaKindUnsupported {
		err := &UnsupportedMediaError{Path: asset.DisplayName, Kind: string(asset.Kind)}
		slog.Warn("rejecting media of unsupported type", "file", asset.DisplayName)
		context.AddError(m.GetName(), err)
		m.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	slog.Info("classified media", "file", asset.DisplayName, "kind", string(asset.Kind))
	context.Add(GetMediaAssetParamName(), asset)
	context.Add(m.GetOutputParam(), asset)
	m.GetSuccessCounter().Add(context.GetContext(), 1)
}
