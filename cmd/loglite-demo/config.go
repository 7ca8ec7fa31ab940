// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// defaultConfigPaths lists where a config file is searched, in order.
var defaultConfigPaths = []string{
	"loglite.yaml",
	"loglite.yml",
	"/etc/loglite/config.yaml",
}

// configPathEnvVar overrides the config file path.
const configPathEnvVar = "LOGLITE_CONFIG"

// envPrefix namespaces the demo's environment variables, e.g.
// LOGLITE_LOGFILE, LOGLITE_PRODUCERS, LOGLITE_RETRY_MAXRETRIES.
const envPrefix = "LOGLITE_"

// demoConfig configures the demo run. The log file path is the fixed
// external value the logger core expects; producers/messages shape the load.
type demoConfig struct {
	LogFile   string        `koanf:"logfile"`
	Producers int           `koanf:"producers"`
	Messages  int           `koanf:"messages"`
	Timezone  string        `koanf:"timezone"`
	CloseWait time.Duration `koanf:"closewait"`
	Retry     retryConfig   `koanf:"retry"`
}

type retryConfig struct {
	MaxRetries  int           `koanf:"maxretries"`
	Backoff     time.Duration `koanf:"backoff"`
	Jitter      time.Duration `koanf:"jitter"`
	Exponential bool          `koanf:"exponential"`
}

// defaultConfig mirrors the original demo scenario: ten producers, one
// hundred messages each, appended to log.txt.
func defaultConfig() *demoConfig {
	return &demoConfig{
		LogFile:   "log.txt",
		Producers: 10,
		Messages:  100,
		Timezone:  "UTC",
		CloseWait: 5 * time.Second,
	}
}

// loadConfig layers configuration as defaults -> optional YAML file -> env.
func loadConfig() (*demoConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// LOGLITE_RETRY_MAXRETRIES -> retry.maxretries, LOGLITE_LOGFILE -> logfile.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &demoConfig{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if cfg.LogFile == "" {
		return nil, fmt.Errorf("logfile must not be empty")
	}
	if cfg.Producers <= 0 {
		cfg.Producers = 1
	}
	if cfg.Messages <= 0 {
		cfg.Messages = 1
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(configPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
