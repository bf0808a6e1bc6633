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

// Package services holds the request-ingestion layer: landing uploaded or
// remote media on the local filesystem and laying out per-request artifact
// directories. Everything here runs before the pipeline chain starts.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// downloadFallbackName names a fetched file whose URL carries no usable
// basename.
const downloadFallbackName = "downloaded_media"

// displayNameSanitizer collapses whitespace and hyphens to underscores when
// deriving a directory name from a display name.
var displayNameSanitizer = regexp.MustCompile(`[-\s]`)

// DownloadError reports a remote fetch that came back non-2xx. StatusCode
// carries the upstream status so the API layer can distinguish a missing
// remote file from other failures.
type DownloadError struct {
	URL        string
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: upstream returned status %d", e.URL, e.StatusCode)
}

// IngestService lands request media in the upload directory and creates the
// per-request artifact directory under the output base.
type IngestService struct {
	UploadDir string
	OutputDir string
	client    *http.Client
}

func NewIngestService(uploadDir string, outputDir string) *IngestService {
	return &IngestService{
		UploadDir: uploadDir,
		OutputDir: outputDir,
		client:    http.DefaultClient,
	}
}

// EnsureDirs creates the upload and output base directories.
func (s *IngestService) EnsureDirs() error {
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// storedName prefixes the original extension-preserving name with a short
// unique id, so two uploads of the same filename never collide on disk.
func storedName(original string) string {
	return uuid.NewString()[:8] + "-" + filepath.Base(original)
}

// SaveUpload writes a multipart upload into the upload directory and
// returns its local path.
func (s *IngestService) SaveUpload(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() { _ = src.Close() }()

	dstPath := filepath.Join(s.UploadDir, storedName(header.Filename))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload target: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to persist uploaded file: %w", err)
	}
	slog.Info("saved uploaded media", "file", header.Filename, "path", dstPath)
	return dstPath, nil
}

// DownloadToUploads fetches remote media into the upload directory and
// returns its local path plus the display name derived from the URL. A
// non-2xx upstream status yields a DownloadError.
func (s *IngestService) DownloadToUploads(ctx context.Context, mediaURL string) (string, string, error) {
	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid media url %q: %w", mediaURL, err)
	}
	displayName := filepath.Base(parsed.Path)
	if displayName == "." || displayName == "/" || displayName == "" {
		displayName = downloadFallbackName
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch %s: %w", mediaURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", &DownloadError{URL: mediaURL, StatusCode: resp.StatusCode}
	}

	dstPath := filepath.Join(s.UploadDir, storedName(displayName))
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create download target: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return "", "", fmt.Errorf("failed to persist downloaded file: %w", err)
	}
	slog.Info("downloaded remote media", "url", mediaURL, "path", dstPath)
	return dstPath, displayName, nil
}

// SanitizeDisplayName derives a directory-safe name from a display name:
// the basename minus its extension, with whitespace and hyphens replaced by
// underscores. Two inputs can sanitize to the same name; the later request
// then reuses and overwrites inside the earlier one's directory.
func SanitizeDisplayName(displayName string) string {
	base := filepath.Base(displayName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return displayNameSanitizer.ReplaceAllString(base, "_")
}

// CreateOutputDirectory lays out the per-request artifact directory named
// after the sanitized display name and returns its path.
func (s *IngestService) CreateOutputDirectory(displayName string) (string, error) {
	dir := filepath.Join(s.OutputDir, SanitizeDisplayName(displayName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return dir, nil
}
