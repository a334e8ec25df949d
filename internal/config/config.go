// Package config loads daemon configuration from a file (yaml, json, or
// toml, decided by extension), applies environment overrides, and fills
// defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// BackendConfig addresses one remote model server.
type BackendConfig struct {
	URL            string `json:"url" yaml:"url" toml:"url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	MemoryThresholdGB        float64 `json:"memory_threshold_gb" yaml:"memory_threshold_gb" toml:"memory_threshold_gb"`
	AutoUnloadTimeoutMinutes int     `json:"auto_unload_timeout_minutes" yaml:"auto_unload_timeout_minutes" toml:"auto_unload_timeout_minutes"`
	ConcurrentModelsLimit    int     `json:"concurrent_models_limit" yaml:"concurrent_models_limit" toml:"concurrent_models_limit"`
	MonitorIntervalSeconds   int     `json:"monitor_interval_seconds" yaml:"monitor_interval_seconds" toml:"monitor_interval_seconds"`
	ReapIntervalSeconds      int     `json:"reap_interval_seconds" yaml:"reap_interval_seconds" toml:"reap_interval_seconds"`

	Analysis   BackendConfig `json:"analysis" yaml:"analysis" toml:"analysis"`
	Generation BackendConfig `json:"generation" yaml:"generation" toml:"generation"`
	Submission BackendConfig `json:"submission" yaml:"submission" toml:"submission"`

	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// FromEnv overrides cfg fields from AGENTD_* environment variables.
func FromEnv(cfg *Config) {
	setStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setStr("AGENTD_ADDR", &cfg.Addr)
	setStr("AGENTD_LOG_LEVEL", &cfg.LogLevel)
	if v := os.Getenv("AGENTD_MEMORY_THRESHOLD_GB"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MemoryThresholdGB = f
		}
	}
	setInt("AGENTD_AUTO_UNLOAD_TIMEOUT_MINUTES", &cfg.AutoUnloadTimeoutMinutes)
	setInt("AGENTD_CONCURRENT_MODELS_LIMIT", &cfg.ConcurrentModelsLimit)
	setStr("AGENTD_ANALYSIS_URL", &cfg.Analysis.URL)
	setStr("AGENTD_GENERATION_URL", &cfg.Generation.URL)
	setStr("AGENTD_SUBMISSION_URL", &cfg.Submission.URL)
	setInt("AGENTD_ANALYSIS_TIMEOUT_SECONDS", &cfg.Analysis.TimeoutSeconds)
	setInt("AGENTD_GENERATION_TIMEOUT_SECONDS", &cfg.Generation.TimeoutSeconds)
	setInt("AGENTD_SUBMISSION_TIMEOUT_SECONDS", &cfg.Submission.TimeoutSeconds)
}

// ApplyDefaults fills unset fields with the stock deployment: three local
// model servers and the 8GB-host memory profile.
func (cfg *Config) ApplyDefaults() {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MemoryThresholdGB <= 0 {
		cfg.MemoryThresholdGB = 6.0
	}
	if cfg.AutoUnloadTimeoutMinutes <= 0 {
		cfg.AutoUnloadTimeoutMinutes = 15
	}
	if cfg.ConcurrentModelsLimit <= 0 {
		cfg.ConcurrentModelsLimit = 2
	}
	if cfg.MonitorIntervalSeconds <= 0 {
		cfg.MonitorIntervalSeconds = 30
	}
	if cfg.ReapIntervalSeconds <= 0 {
		cfg.ReapIntervalSeconds = 300
	}
	if cfg.Analysis.URL == "" {
		cfg.Analysis.URL = "http://localhost:8002"
	}
	if cfg.Analysis.TimeoutSeconds <= 0 {
		cfg.Analysis.TimeoutSeconds = 45
	}
	if cfg.Generation.URL == "" {
		cfg.Generation.URL = "http://localhost:8001"
	}
	if cfg.Generation.TimeoutSeconds <= 0 {
		cfg.Generation.TimeoutSeconds = 30
	}
	if cfg.Submission.URL == "" {
		cfg.Submission.URL = "http://localhost:8003"
	}
	if cfg.Submission.TimeoutSeconds <= 0 {
		cfg.Submission.TimeoutSeconds = 60
	}
}
