package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Cache backend names
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config represents the entire application configuration
type Config struct {
	Site    SiteConfig    `mapstructure:"site"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Formats FormatsConfig `mapstructure:"formats"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SiteConfig locates the content tree and the state directory
type SiteConfig struct {
	ContentDir string `mapstructure:"content_dir"`
	StateDir   string `mapstructure:"state_dir"`
}

// CacheConfig controls title-cache persistence
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Backend    string `mapstructure:"backend"`
	TitlesFile string `mapstructure:"titles_file"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// FormatsConfig maps file extensions to logical content formats
type FormatsConfig struct {
	HTMLExtensions []string `mapstructure:"html_extensions"`
	TextExtensions []string `mapstructure:"text_extensions"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	BindAddr     string `mapstructure:"bind_addr"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	IdleTimeout  string `mapstructure:"idle_timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from the specified file path
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Default returns the configuration with every default applied, without
// reading a file. Used by tests and by callers that configure in code.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("defaults must unmarshal: %v", err))
	}
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.content_dir", "./content")
	v.SetDefault("site.state_dir", "./state")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.titles_file", "")
	v.SetDefault("cache.sqlite_path", "")
	v.SetDefault("formats.html_extensions", []string{"html", "htm"})
	v.SetDefault("formats.text_extensions", []string{"txt", "md", "markdown", "rst"})
	v.SetDefault("http.bind_addr", "0.0.0.0:8080")
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Site.ContentDir == "" {
		return fmt.Errorf("site.content_dir is required")
	}
	if c.Site.StateDir == "" {
		return fmt.Errorf("site.state_dir is required")
	}

	switch c.Cache.Backend {
	case BackendFile, BackendSQLite:
		// Valid backends
	default:
		return fmt.Errorf("invalid cache.backend: %s", c.Cache.Backend)
	}

	if _, err := time.ParseDuration(c.HTTP.ReadTimeout); err != nil {
		return fmt.Errorf("invalid http.read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.HTTP.WriteTimeout); err != nil {
		return fmt.Errorf("invalid http.write_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.HTTP.IdleTimeout); err != nil {
		return fmt.Errorf("invalid http.idle_timeout: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetTitlesFile returns the flat-file cache path, defaulting to titles.dat
// inside the state directory.
func (c *CacheConfig) GetTitlesFile(stateDir string) string {
	if c.TitlesFile != "" {
		return c.TitlesFile
	}
	return filepath.Join(stateDir, "titles.dat")
}

// GetSQLitePath returns the SQLite cache path, defaulting to titles.db
// inside the state directory.
func (c *CacheConfig) GetSQLitePath(stateDir string) string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(stateDir, "titles.db")
}

// GetReadTimeout returns the read timeout as time.Duration
func (c *HTTPConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetWriteTimeout returns the write timeout as time.Duration
func (c *HTTPConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetIdleTimeout returns the idle timeout as time.Duration
func (c *HTTPConfig) GetIdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	if d == 0 {
		return 60 * time.Second
	}
	return d
}
