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

package workflow

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/jaycherian/gcp-go-media-insights/internal/core/commands"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/services"
)

// StatusForError maps a pipeline failure to the HTTP status the API layer
// answers with. Unsupported media is the caller's mistake; a missing local
// file or a 404 from a remote fetch is not found; everything else, provider
// failures included, is an internal error.
func StatusForError(err error) int {
	var unsupported *commands.UnsupportedMediaError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest
	}
	if errors.Is(err, fs.ErrNotExist) {
		return http.StatusNotFound
	}
	var download *services.DownloadError
	if errors.As(err, &download) && download.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
