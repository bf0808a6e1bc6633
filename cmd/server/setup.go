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

// Package main contains the state setup for the server: a centralized
// container holding the configuration, provider clients, ingest service, and
// the pipeline workflow, initialized once at startup.
package main

import (
	"context"
	"log"
	"os"

	"github.com/jaycherian/gcp-go-media-insights/internal/cloud"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/services"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/workflow"
)

// StateManager holds the shared dependencies for the server process.
type StateManager struct {
	config   *cloud.Config
	cloud    *cloud.ServiceClients
	ingest   *services.IngestService
	pipeline *workflow.MediaInsightWorkflow
}

var state = &StateManager{}

// SetupOS points the configuration loader at the local configuration files.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig is a singleton accessor for the application configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup os: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState creates the provider clients, the ingest service, and the
// pipeline workflow, and wires them into the shared state. A missing
// credential or unreachable provider aborts startup.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		log.Fatalf("failed to initialize provider clients: %v\n", err)
	}
	state.cloud = cloudClients

	state.ingest = services.NewIngestService(config.Media.UploadDir, config.Media.OutputDir)
	if err := state.ingest.EnsureDirs(); err != nil {
		log.Fatalf("failed to create media directories: %v\n", err)
	}

	state.pipeline = workflow.NewMediaInsightPipeline(config, cloudClients)
}
