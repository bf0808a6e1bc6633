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

// Package cloud provides components for interacting with the inference
// provider. This file implements hierarchical configuration loading: a base
// TOML file is read first and an environment-specific file overwrites it.
// A `.env` file, when present, is folded into the process environment before
// the provider credential is resolved.
package cloud

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	ConfigFileBaseName  = ".env"                         // Base name for configuration files (".env.toml").
	ConfigFileExtension = ".toml"                        // Extension for configuration files.
	ConfigSeparator     = "."                            // Separator in override names (".env.local.toml").
	EnvConfigFilePrefix = "MEDIA_INSIGHT_CONFIG_PREFIX"  // Directory holding the config files.
	EnvConfigRuntime    = "MEDIA_INSIGHT_RUNTIME"        // Runtime context: "local", "test", "prod".

	// Credential and override environment variables.
	EnvAPIKeyPrimary   = "GOOGLE_API_KEY"
	EnvAPIKeySecondary = "GEMINI_API_KEY"
	EnvModelOverride   = "GEMINI_MODEL"
	EnvFFmpegOverride  = "FFMPEG_PATH"
)

// ErrMissingAPIKey signals a deployment defect: the provider credential is
// absent from the environment. It is raised before any network activity.
var ErrMissingAPIKey = errors.New("missing inference credential: set GOOGLE_API_KEY or GEMINI_API_KEY")

// fileExists reports whether a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig populates baseConfig from the base TOML file, then overwrites
// with the environment-specific file when one exists. The directory prefix
// and runtime environment come from MEDIA_INSIGHT_CONFIG_PREFIX and
// MEDIA_INSIGHT_RUNTIME; the runtime defaults to "test".
func LoadConfig(baseConfig interface{}) {
	// Fold a .env file into the process environment first, so credentials
	// can live next to the config files during development.
	_ = godotenv.Load()

	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		_, err := toml.DecodeFile(baseConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	if fileExists(envConfigFileName) {
		_, err := toml.DecodeFile(envConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// ResolveAPIKey returns the provider credential from the environment,
// checking GOOGLE_API_KEY then GEMINI_API_KEY. Absence is a configuration
// error, not a runtime failure.
func ResolveAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKeyPrimary)); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(EnvAPIKeySecondary)); key != "" {
		return key, nil
	}
	return "", ErrMissingAPIKey
}

// ResolveModelName returns the model identifier for a configured role,
// honoring the GEMINI_MODEL environment override.
func ResolveModelName(configured string) string {
	if override := strings.TrimSpace(os.Getenv(EnvModelOverride)); override != "" {
		return override
	}
	if configured != "" {
		return configured
	}
	return DefaultModelName
}
