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
	"log/slog"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
)

// FileUploader registers a local binary with the inference provider and
// returns the stable reference handle generation calls use.
type FileUploader interface {
	UploadAndReference(ctx context.Context, localPath string, mimeType string, displayName string) (*model.UploadedRemoteFile, error)
}

// FileRemover deletes a registered binary from the provider's file service.
type FileRemover interface {
	Delete(ctx context.Context, name string) error
}

// MediaUpload pushes the processed media to the provider's file service.
// Every request uploads fresh; handles are never cached across requests.
// Upload failure is fatal for the request.
type MediaUpload struct {
	cor.BaseCommand
	uploader FileUploader
}

func NewMediaUpload(name string, uploader FileUploader) *MediaUpload {
	return &MediaUpload{BaseCommand: *cor.NewBaseCommand(name), uploader: uploader}
}

func (u *MediaUpload) Execute(context cor.Context) {
	ctx, span := u.GetTracer().Start(context.GetContext(), u.GetName())
	defer span.End()

	processed := context.Get(u.GetInputParam()).(*model.ProcessedMedia)
	asset := context.Get(GetMediaAssetParamName()).(*model.MediaAsset)

	remote, err := u.uploader.UploadAndReference(ctx, processed.Path, processed.MIMEType, asset.DisplayName)
	if err != nil {
		context.AddError(u.GetName(), err)
		u.GetErrorCounter().Add(context.GetContext(), 1)
		return
	}

	slog.Info("registered media with file service", "file", asset.DisplayName, "remote", remote.Name)
	context.Add(GetUploadedFileParamName(), remote)
	context.Add(u.GetOutputParam(), remote)
	u.GetSuccessCounter().Add(context.GetContext(), 1)
}
