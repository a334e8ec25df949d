package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "agentd.yaml", `
addr: ":9090"
memory_threshold_gb: 5.5
concurrent_models_limit: 1
analysis:
  url: "http://analysis:8002"
  timeout_seconds: 90
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr: got %q", cfg.Addr)
	}
	if cfg.MemoryThresholdGB != 5.5 {
		t.Errorf("memory_threshold_gb: got %v", cfg.MemoryThresholdGB)
	}
	if cfg.ConcurrentModelsLimit != 1 {
		t.Errorf("concurrent_models_limit: got %d", cfg.ConcurrentModelsLimit)
	}
	if cfg.Analysis.URL != "http://analysis:8002" || cfg.Analysis.TimeoutSeconds != 90 {
		t.Errorf("analysis: got %+v", cfg.Analysis)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "agentd.json", `{
  "addr": ":7070",
  "log_level": "debug",
  "generation": {"url": "http://gen:8001", "timeout_seconds": 20}
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.LogLevel != "debug" {
		t.Errorf("got addr=%q log_level=%q", cfg.Addr, cfg.LogLevel)
	}
	if cfg.Generation.URL != "http://gen:8001" || cfg.Generation.TimeoutSeconds != 20 {
		t.Errorf("generation: got %+v", cfg.Generation)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "agentd.toml", `
addr = ":6060"
auto_unload_timeout_minutes = 5

[submission]
url = "http://sub:8003"
timeout_seconds = 120
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":6060" || cfg.AutoUnloadTimeoutMinutes != 5 {
		t.Errorf("got addr=%q auto_unload=%d", cfg.Addr, cfg.AutoUnloadTimeoutMinutes)
	}
	if cfg.Submission.URL != "http://sub:8003" || cfg.Submission.TimeoutSeconds != 120 {
		t.Errorf("submission: got %+v", cfg.Submission)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "agentd.ini", "addr=:1234")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Addr != ":8080" || cfg.LogLevel != "info" {
		t.Errorf("got addr=%q log_level=%q", cfg.Addr, cfg.LogLevel)
	}
	if cfg.MemoryThresholdGB != 6.0 {
		t.Errorf("memory_threshold_gb: got %v", cfg.MemoryThresholdGB)
	}
	if cfg.AutoUnloadTimeoutMinutes != 15 || cfg.ConcurrentModelsLimit != 2 {
		t.Errorf("got auto_unload=%d limit=%d", cfg.AutoUnloadTimeoutMinutes, cfg.ConcurrentModelsLimit)
	}
	if cfg.MonitorIntervalSeconds != 30 || cfg.ReapIntervalSeconds != 300 {
		t.Errorf("got monitor=%d reap=%d", cfg.MonitorIntervalSeconds, cfg.ReapIntervalSeconds)
	}
	if cfg.Analysis.URL != "http://localhost:8002" || cfg.Analysis.TimeoutSeconds != 45 {
		t.Errorf("analysis: got %+v", cfg.Analysis)
	}
	if cfg.Generation.URL != "http://localhost:8001" || cfg.Generation.TimeoutSeconds != 30 {
		t.Errorf("generation: got %+v", cfg.Generation)
	}
	if cfg.Submission.URL != "http://localhost:8003" || cfg.Submission.TimeoutSeconds != 60 {
		t.Errorf("submission: got %+v", cfg.Submission)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{Addr: ":9999", MemoryThresholdGB: 4.5}
	cfg.ApplyDefaults()

	if cfg.Addr != ":9999" {
		t.Errorf("addr overwritten: got %q", cfg.Addr)
	}
	if cfg.MemoryThresholdGB != 4.5 {
		t.Errorf("threshold overwritten: got %v", cfg.MemoryThresholdGB)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AGENTD_ADDR", ":4444")
	t.Setenv("AGENTD_MEMORY_THRESHOLD_GB", "5.0")
	t.Setenv("AGENTD_CONCURRENT_MODELS_LIMIT", "3")
	t.Setenv("AGENTD_ANALYSIS_URL", "http://other:9002")
	t.Setenv("AGENTD_SUBMISSION_TIMEOUT_SECONDS", "30")

	cfg := Config{Addr: ":8080", MemoryThresholdGB: 6.0}
	FromEnv(&cfg)

	if cfg.Addr != ":4444" {
		t.Errorf("addr: got %q", cfg.Addr)
	}
	if cfg.MemoryThresholdGB != 5.0 {
		t.Errorf("threshold: got %v", cfg.MemoryThresholdGB)
	}
	if cfg.ConcurrentModelsLimit != 3 {
		t.Errorf("limit: got %d", cfg.ConcurrentModelsLimit)
	}
	if cfg.Analysis.URL != "http://other:9002" {
		t.Errorf("analysis url: got %q", cfg.Analysis.URL)
	}
	if cfg.Submission.TimeoutSeconds != 30 {
		t.Errorf("submission timeout: got %d", cfg.Submission.TimeoutSeconds)
	}
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("AGENTD_CONCURRENT_MODELS_LIMIT", "two")

	cfg := Config{ConcurrentModelsLimit: 2}
	FromEnv(&cfg)

	if cfg.ConcurrentModelsLimit != 2 {
		t.Errorf("limit: got %d", cfg.ConcurrentModelsLimit)
	}
}
