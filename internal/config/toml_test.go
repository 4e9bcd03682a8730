package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Run.Year != nil || cfg.Run.Stats != nil {
		t.Fatalf("expected empty config, got %+v", cfg.Run)
	}
}

func TestLoadConfigRunSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[run]
year = 2023
stats = 5
skip-tests = true
inputs-dir = "/tmp/aoc"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Run.Year == nil || *cfg.Run.Year != 2023 {
		t.Fatalf("unexpected year: %v", cfg.Run.Year)
	}
	if cfg.Run.Stats == nil || *cfg.Run.Stats != 5 {
		t.Fatalf("unexpected stats: %v", cfg.Run.Stats)
	}
	if cfg.Run.SkipTests == nil || !*cfg.Run.SkipTests {
		t.Fatalf("unexpected skip-tests: %v", cfg.Run.SkipTests)
	}
	if cfg.Run.InputsDir == nil || *cfg.Run.InputsDir != "/tmp/aoc" {
		t.Fatalf("unexpected inputs-dir: %v", cfg.Run.InputsDir)
	}
	if cfg.Run.SessionFile != nil {
		t.Fatalf("expected session-file unset, got %q", *cfg.Run.SessionFile)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[run]\nyeer = 2023\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "run.yeer") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsHonourXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "aocrun", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultHistoryPath(); got != filepath.Join("/data", "aocrun", "history.db") {
		t.Fatalf("unexpected history path: %s", got)
	}
}
