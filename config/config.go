// Package config provides configuration management for the pocket-edition
// world storage engine.
//
// Configuration follows a two-tier hierarchy:
//  1. Environment variables (highest priority)
//  2. An optional YAML file, "engine.yaml" (lowest priority)
//
// Every field has a sensible default, so a zero-value Load() call never
// fails — the config system is additive, not mandatory.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Config holds the engine-wide settings that are not themselves part of a
// world's on-disk state (those live in the root metadata Compound, see
// package world).
type Config struct {
	// DataPath is the default directory searched for a world when a
	// command-line tool is not given an explicit path.
	// Environment: POCKETWORLD_DATA_PATH
	// YAML: data_path
	DataPath string `yaml:"data_path"`

	// HoldOpen mirrors store.Facade's hold-open policy: when true the
	// facade keeps its store handle open across calls; when false each
	// scoped acquisition opens and releases its own handle.
	// Environment: POCKETWORLD_HOLD_OPEN
	// YAML: hold_open
	HoldOpen bool `yaml:"hold_open"`

	// LogLevel holds a minimum logger.Level name. Nothing passes this field
	// to the logger: the commands set their level with logger.Configure,
	// which reads POCKETWORLD_LOG_LEVEL only, so a log_level from YAML has
	// no effect on logging.
	// Environment: POCKETWORLD_LOG_LEVEL
	// YAML: log_level
	LogLevel string `yaml:"log_level"`

	// API holds settings for the optional read-only introspection server
	// (cmd/worldapi).
	API APIConfig `yaml:"api"`
}

// APIConfig configures the optional HTTP introspection server.
type APIConfig struct {
	// Addr is the listen address, e.g. ":8099".
	// Environment: POCKETWORLD_API_ADDR
	Addr string `yaml:"addr"`

	// SwaggerHost is the host:port embedded in the generated swagger
	// document's "host" field.
	// Environment: POCKETWORLD_API_SWAGGER_HOST
	SwaggerHost string `yaml:"swagger_host"`
}

// Default returns the built-in defaults, used when neither a YAML file nor
// environment variables override them.
func Default() *Config {
	return &Config{
		DataPath: "./world",
		HoldOpen: true,
		LogLevel: "info",
		API: APIConfig{
			Addr:        ":8099",
			SwaggerHost: "localhost:8099",
		},
	}
}

// Load builds a Config starting from Default(), applying a YAML file at
// yamlPath if it exists (a missing file is not an error — it is simply
// skipped), then applying environment variable overrides, which always win.
func Load(yamlPath string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err == nil {
			if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", yamlPath, uerr)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: reading %s: %w", yamlPath, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DataPath = getEnv("POCKETWORLD_DATA_PATH", cfg.DataPath)
	cfg.HoldOpen = getEnvBool("POCKETWORLD_HOLD_OPEN", cfg.HoldOpen)
	cfg.LogLevel = getEnv("POCKETWORLD_LOG_LEVEL", cfg.LogLevel)
	cfg.API.Addr = getEnv("POCKETWORLD_API_ADDR", cfg.API.Addr)
	cfg.API.SwaggerHost = getEnv("POCKETWORLD_API_SWAGGER_HOST", cfg.API.SwaggerHost)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}
