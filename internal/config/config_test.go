package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/aidir/internal/i18n"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultLanguage != "de" {
		t.Errorf("expected default language %q, got %q", "de", cfg.DefaultLanguage)
	}
	if cfg.OutputDir != "public" {
		t.Errorf("expected default output_dir %q, got %q", "public", cfg.OutputDir)
	}
	if cfg.ReadyTimeout() != 3*time.Second {
		t.Errorf("expected ready timeout 3s, got %s", cfg.ReadyTimeout())
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestDefaultConfigCopiesAssets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assets[0] = "changed"
	if DefaultAssets[0] == "changed" {
		t.Error("DefaultConfig shares the DefaultAssets backing array")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.aidir.yml")

	original := DefaultConfig()
	original.SiteName = "KI Werkzeuge"
	original.BaseURL = "https://tools.example.com"
	original.CatalogDB = "catalog.db"
	original.DefaultLanguage = "en"
	original.Assets = []string{"img/**", "robots.txt", "fonts/*.woff2", "favicon.svg"}
	original.ReadyTimeoutMS = 500
	original.Server.Port = 9000
	original.Server.AllowAllCORS = true

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("AIDIR_BASE_URL", "https://override.example")
	t.Setenv("AIDIR_SERVER_PORT", "9090")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.BaseURL != "https://override.example" {
		t.Errorf("env override failed: got %q", loaded.BaseURL)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("nested env override failed: got %d", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"db only", func(c *Config) { c.Catalog = ""; c.CatalogDB = "tools.db" }, false},
		{"empty site name", func(c *Config) { c.SiteName = " " }, true},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
		{"relative base url", func(c *Config) { c.BaseURL = "/tools" }, true},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.com" }, true},
		{"no catalog source", func(c *Config) { c.Catalog = ""; c.CatalogDB = "" }, true},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, true},
		{"unknown language", func(c *Config) { c.DefaultLanguage = "fr" }, true},
		{"negative timeout", func(c *Config) { c.ReadyTimeoutMS = -1 }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLanguage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLanguage = "en-GB"
	if cfg.Language() != i18n.English {
		t.Errorf("Language() = %q, want en", cfg.Language())
	}
	cfg.DefaultLanguage = "xx"
	if cfg.Language() != i18n.Default {
		t.Errorf("Language() = %q, want default", cfg.Language())
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.png", []string{"**/*.png"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitAndTrim(tt.input)); diff != "" {
			t.Errorf("splitAndTrim(%q) (-want +got):\n%s", tt.input, diff)
		}
	}
}
