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

	"github.com/jaycherian/gcp-go-media-insights/internal/core/cor"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
)

// MediaCleanup deletes the provider-side file once the generation calls are
// done with it. Deletion failure is logged and swallowed: the provider
// garbage-collects its file service on its own schedule, so a leaked handle
// never fails a request that already produced its artifacts. The command
// passes its input through so downstream commands keep their piped value.
type MediaCleanup struct {
	cor.BaseCommand
	remover FileRemover
}

func NewMediaCleanup(name string, remover FileRemover) *MediaCleanup {
	return &MediaCleanup{BaseCommand: *cor.NewBaseCommand(name), remover: remover}
}

func (c *MediaCleanup) Execute(context cor.Context) {
	ctx, span := c.GetTracer().Start(context.GetContext(), c.GetName())
	defer span.End()

	if remote, ok := context.Get(GetUploadedFileParamName()).(*model.UploadedRemoteFile); ok && remote != nil {
		if err := c.remover.Delete(ctx, remote.Name); err != nil {
			slog.Warn("failed to delete provider-side file", "remote", remote.Name, "error", err)
		} else {
			slog.Info("deleted provider-side file", "remote", remote.Name)
		}
	}

	context.Add(c.GetOutputParam(), context.Get(c.GetInputParam()))
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}
