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

import "fmt"

// UnsupportedMediaError rejects a file whose type the pipeline cannot
// process. It is a caller mistake, not a system failure, and maps to a
// client error at the API boundary.
type UnsupportedMediaError struct {
	Path string
	Kind string
}

func (e *UnsupportedMediaError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (%s). Please provide an audio or video file", e.Kind, e.Path)
}

// ExtractionError wraps a transcoder invocation failure. Invocation failure
// is fatal: the transcoder was present but could not produce audio, so
// silently analyzing the raw video would hide a broken installation.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("audio extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
