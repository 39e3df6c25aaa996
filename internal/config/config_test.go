package config

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return Load(path)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := loadFixture(t, "site:\n  content_dir: /srv/content\n")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Cache.Enabled {
		t.Error("cache.enabled should default to true")
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("cache.backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %s/%s", cfg.Logging.Level, cfg.Logging.Format)
	}
	if len(cfg.Formats.HTMLExtensions) == 0 || len(cfg.Formats.TextExtensions) == 0 {
		t.Error("format extension defaults missing")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "bad backend",
			yaml: "cache:\n  backend: redis\n",
		},
		{
			name: "bad log level",
			yaml: "logging:\n  level: loud\n",
		},
		{
			name: "bad log format",
			yaml: "logging:\n  format: xml\n",
		},
		{
			name: "bad timeout",
			yaml: "http:\n  read_timeout: soon\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadFixture(t, tt.yaml); err == nil {
				t.Error("Load() should reject invalid configuration")
			}
		})
	}
}

func TestCachePathDefaults(t *testing.T) {
	c := CacheConfig{}
	if got := c.GetTitlesFile("/var/state"); got != filepath.Join("/var/state", "titles.dat") {
		t.Errorf("GetTitlesFile() = %q", got)
	}
	if got := c.GetSQLitePath("/var/state"); got != filepath.Join("/var/state", "titles.db") {
		t.Errorf("GetSQLitePath() = %q", got)
	}

	c = CacheConfig{TitlesFile: "/elsewhere/t.dat", SQLitePath: "/elsewhere/t.db"}
	if got := c.GetTitlesFile("/var/state"); got != "/elsewhere/t.dat" {
		t.Errorf("GetTitlesFile() override = %q", got)
	}
	if got := c.GetSQLitePath("/var/state"); got != "/elsewhere/t.db" {
		t.Errorf("GetSQLitePath() override = %q", got)
	}
}
