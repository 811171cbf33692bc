package config

import "time"

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".aidir.yml"

// Config is the top-level directory configuration, corresponding to .aidir.yml.
type Config struct {
	SiteName        string       `yaml:"site_name" koanf:"site_name"`
	BaseURL         string       `yaml:"base_url" koanf:"base_url"`
	Catalog         string       `yaml:"catalog" koanf:"catalog"`
	CatalogDB       string       `yaml:"catalog_db" koanf:"catalog_db"`
	OutputDir       string       `yaml:"output_dir" koanf:"output_dir"`
	PagesDir        string       `yaml:"pages_dir" koanf:"pages_dir"`
	Assets          []string     `yaml:"assets" koanf:"assets"`
	DefaultLanguage string       `yaml:"default_language" koanf:"default_language"`
	PreferencesPath string       `yaml:"preferences_path" koanf:"preferences_path"`
	ReadyTimeoutMS  int          `yaml:"ready_timeout_ms" koanf:"ready_timeout_ms"`
	Server          ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for the preview server.
type ServerConfig struct {
	Port         int  `yaml:"port" koanf:"port"`
	AllowAllCORS bool `yaml:"allow_all_cors" koanf:"allow_all_cors"`
	LiveReload   bool `yaml:"live_reload" koanf:"live_reload"`
}

// ReadyTimeout is how long a page waits for the catalog before rendering
// without it.
func (c *Config) ReadyTimeout() time.Duration {
	return time.Duration(c.ReadyTimeoutMS) * time.Millisecond
}

// DefaultAssets are the glob patterns copied verbatim into the output
// directory.
var DefaultAssets = []string{
	"assets/**/*.{png,jpg,jpeg,svg,webp,ico}",
	"assets/**/*.css",
	"assets/**/*.js",
	"favicon.ico",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteName:        "AI Tool Directory",
		BaseURL:         "http://localhost:8080",
		Catalog:         "tools.json",
		OutputDir:       "public",
		PagesDir:        "pages",
		Assets:          append([]string(nil), DefaultAssets...),
		DefaultLanguage: "de",
		PreferencesPath: ".aidir/prefs.db",
		ReadyTimeoutMS:  3000,
		Server: ServerConfig{
			Port:       8080,
			LiveReload: true,
		},
	}
}
