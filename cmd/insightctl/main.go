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

// insightctl is the command line companion to the media insight server: it
// runs the pipeline against a local file without standing up the HTTP
// surface, and prunes media left behind on the provider's file service.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaycherian/gcp-go-media-insights/internal/cloud"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/model"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/services"
	"github.com/jaycherian/gcp-go-media-insights/internal/core/workflow"
	"github.com/jaycherian/gcp-go-media-insights/internal/telemetry"
)

var runtimeEnv string

func loadConfig() *cloud.Config {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		_ = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	}
	_ = os.Setenv(cloud.EnvConfigRuntime, runtimeEnv)
	config := cloud.NewConfig()
	cloud.LoadConfig(&config)
	return config
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <path>",
		Short: "Run the media insight pipeline against a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			clients, err := cloud.NewCloudServiceClients(cmd.Context(), config)
			if err != nil {
				return err
			}

			ingest := services.NewIngestService(config.Media.UploadDir, config.Media.OutputDir)
			if err := ingest.EnsureDirs(); err != nil {
				return err
			}

			pipeline := workflow.NewMediaInsightPipeline(config, clients)
			asset := &model.MediaAsset{
				LocalPath:   args[0],
				DisplayName: filepath.Base(args[0]),
			}

			result, err := pipeline.Run(cmd.Context(), asset)
			if err != nil {
				return err
			}

			envelope := model.NewInsightResponse(result, pipeline.ModelName(), time.Now().UTC().Format(time.RFC3339))
			out, err := json.MarshalIndent(envelope, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete media left behind on the provider's file service",
		Long: "Deletes every file registered with the provider's file service. " +
			"Normal runs clean up after themselves; prune collects the leftovers " +
			"from runs that failed between upload and cleanup.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			clients, err := cloud.NewCloudServiceClients(cmd.Context(), config)
			if err != nil {
				return err
			}

			deleted := 0
			for file, err := range clients.GenAIClient.Files.All(cmd.Context()) {
				if err != nil {
					return fmt.Errorf("failed to list provider files: %w", err)
				}
				if err := clients.FileService.Delete(cmd.Context(), file.Name); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "failed to delete %s: %v\n", file.Name, err)
					continue
				}
				deleted++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d provider files\n", deleted)
			return nil
		},
	}
}

func main() {
	telemetry.SetupLogging()

	root := &cobra.Command{
		Use:           "insightctl",
		Short:         "Media insight pipeline tooling",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&runtimeEnv, "env", "local", "runtime environment for configuration overrides")
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newPruneCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
