package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration, read from a YAML file with
// environment variable overrides for deployment settings.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Storage struct {
		// Driver selects the persistence backend: "memory" or "postgres".
		Driver string `yaml:"driver"`
	} `yaml:"storage"`

	Relay struct {
		Enabled              bool   `yaml:"enabled"`
		URL                  string `yaml:"url"`
		SubjectPrefix        string `yaml:"subject_prefix"`
		ReconnectWaitSeconds int    `yaml:"reconnect_wait_seconds"`
	} `yaml:"relay"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Storage.Driver = "memory"
	cfg.Relay.SubjectPrefix = "timesync"
	cfg.Relay.ReconnectWaitSeconds = 2
	cfg.Log.Level = "info"
	return &cfg
}

// loadConfig reads the YAML config at path, falling back to defaults when the
// file does not exist, then applies environment overrides.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Storage.Driver = getEnv("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Relay.Enabled = getEnvAsBool("RELAY_ENABLED", cfg.Relay.Enabled)
	cfg.Relay.URL = getEnv("NATS_URL", cfg.Relay.URL)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
