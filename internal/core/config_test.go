package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".vpkconfig"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestLoadGlobalConfigDefaults(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}

	defaults := DefaultGlobalConfig()
	if cfg.MaxTokens != defaults.MaxTokens {
		t.Errorf("max tokens = %d, want %d", cfg.MaxTokens, defaults.MaxTokens)
	}
	if cfg.CostWarnThreshold != defaults.CostWarnThreshold {
		t.Errorf("warn threshold = %v, want %v", cfg.CostWarnThreshold, defaults.CostWarnThreshold)
	}
	if cfg.ExportDirectory != defaults.ExportDirectory {
		t.Errorf("export directory = %q, want %q", cfg.ExportDirectory, defaults.ExportDirectory)
	}
	if !cfg.AutoExport {
		t.Error("auto export should default to true")
	}
}

func TestLoadGlobalConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `budgets:
  max_tokens: 5000
  max_api_calls: 10
output:
  export_directory: ./out
  auto_export: false
debug: true
`)

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if cfg.MaxTokens != 5000 {
		t.Errorf("max tokens = %d, want 5000", cfg.MaxTokens)
	}
	if cfg.MaxAPICalls != 10 {
		t.Errorf("max api calls = %d, want 10", cfg.MaxAPICalls)
	}
	if cfg.ExportDirectory != "./out" {
		t.Errorf("export directory = %q, want ./out", cfg.ExportDirectory)
	}
	if cfg.AutoExport {
		t.Error("auto export should be false")
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	// Unset keys keep their defaults.
	if cfg.MaxComputationTime != DefaultGlobalConfig().MaxComputationTime {
		t.Errorf("max computation time = %d, want default", cfg.MaxComputationTime)
	}
}

func TestLoadGlobalConfigEnvOverride(t *testing.T) {
	t.Setenv("VPK_MAX_TOKENS", "1234")

	cfg, err := NewConfigurationManager(t.TempDir()).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if cfg.MaxTokens != 1234 {
		t.Errorf("max tokens = %d, want env override 1234", cfg.MaxTokens)
	}
}

func TestLoadGlobalConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "budgets: [not: valid: yaml\n")

	if _, err := NewConfigurationManager(dir).LoadGlobalConfig(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestLoadGlobalConfigRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"zero tokens", "budgets:\n  max_tokens: 0\n"},
		{"negative calls", "budgets:\n  max_api_calls: -5\n"},
		{"threshold above one", "budgets:\n  warn_threshold: 1.5\n"},
		{"empty export dir", "output:\n  export_directory: \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tc.content)
			if _, err := NewConfigurationManager(dir).LoadGlobalConfig(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}
