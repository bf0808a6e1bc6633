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

// Package api exposes the HTTP surface of the media insight pipeline. One
// endpoint accepts media three ways (multipart upload, local path, remote
// URL), runs the pipeline synchronously, and answers with the insight
// envelope or a mapped error.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/services"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/workflow"
)

// PipelineRunner is the workflow surface the handlers depend on.
type PipelineRunner interface {
	Run(ctx context.Context, asset *model.MediaAsset) (*model.PipelineResult, error)
	ModelName() string
}

// analyzeRequest is the JSON body for path- and URL-based analysis.
type analyzeRequest struct {
	MediaPath string `json:"media_path"`
	MediaURL  string `json:"media_url"`
}

// AnalyzeHandler serves the media analysis endpoint.
type AnalyzeHandler struct {
	ingest  *services.IngestService
	runner  PipelineRunner
	timeout time.Duration
}

func NewAnalyzeHandler(ingest *services.IngestService, runner PipelineRunner, timeout time.Duration) *AnalyzeHandler {
	return &AnalyzeHandler{ingest: ingest, runner: runner, timeout: timeout}
}

// RegisterRoutes mounts the analysis and health endpoints on a router group.
func (h *AnalyzeHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/analyze", h.Analyze)
	group.GET("/healthz", h.Health)
}

func (h *AnalyzeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze accepts one media input per request. Precedence: a multipart
// "file" field wins, then a JSON media_path, then media_url. The pipeline
// runs synchronously and the caller waits for the full envelope.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	asset, ok := h.resolveAsset(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.runner.Run(ctx, asset)
	if err != nil {
		status := workflow.StatusForError(err)
		slog.Error("pipeline run failed", "file", asset.DisplayName, "status", status, "error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.NewInsightResponse(result, h.runner.ModelName(), time.Now().UTC().Format(time.RFC3339)))
}

// resolveAsset lands the request's media locally and describes it. On
// failure it writes the error response itself and reports false.
func (h *AnalyzeHandler) resolveAsset(c *gin.Context) (*model.MediaAsset, bool) {
	if header, err := c.FormFile("file"); err == nil {
		localPath, saveErr := h.ingest.SaveUpload(header)
		if saveErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": saveErr.Error()})
			return nil, false
		}
		return &model.MediaAsset{
			LocalPath:        localPath,
			DisplayName:      header.Filename,
			DeclaredMIMEType: header.Header.Get("Content-Type"),
		}, true
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.MediaPath == "" && req.MediaURL == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no media provided: upload a file or pass media_path or media_url"})
		return nil, false
	}

	// A local path wins over a URL when the body carries both.
	if req.MediaPath != "" {
		return &model.MediaAsset{
			LocalPath:   req.MediaPath,
			DisplayName: filepath.Base(req.MediaPath),
		}, true
	}

	localPath, displayName, err := h.ingest.DownloadToUploads(c.Request.Context(), req.MediaURL)
	if err != nil {
		c.JSON(workflow.StatusForError(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return &model.MediaAsset{LocalPath: localPath, DisplayName: displayName}, true
}
