package api

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the console server configuration.
type Config struct {
	Port         int    `yaml:"port"`
	RawRoot      string `yaml:"raw_root"`
	CacheDir     string `yaml:"cache_dir"`
	WatchRawRoot bool   `yaml:"watch_raw_root"`
	DevMode      bool   `yaml:"dev_mode"`
}

// LoadConfigFromEnv builds a Config from environment variables, applying
// defaults for anything unset.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Port:     8080,
		RawRoot:  "./data/raw-results",
		CacheDir: "./data/processed",
	}

	if v := os.Getenv("EVALBOARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := os.Getenv("EVALBOARD_RAW_ROOT"); v != "" {
		cfg.RawRoot = v
	}
	if v := os.Getenv("EVALBOARD_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	cfg.WatchRawRoot = os.Getenv("EVALBOARD_WATCH") == "true"
	cfg.DevMode = os.Getenv("EVALBOARD_DEV") == "true"

	return cfg
}

// ApplyConfigFile overlays settings from a YAML file onto cfg. Only keys
// present in the file are applied.
func ApplyConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
