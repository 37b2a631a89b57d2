package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
// It is built once at startup and handed to every stage.
type Config struct {
	// GitHub
	Org         string
	GitHubToken string
	GitHubAPI   string // base URL override, e.g. for GitHub Enterprise
	HTTPTimeout time.Duration
	MinDelay    time.Duration // pause between GitHub API calls

	// Output
	IndexPath        string
	TemplatePath     string
	SiteConfigPath   string
	Bootstrap        bool
	IncludeTimestamp bool
	Plain            bool

	// Archive
	Archive     bool
	StorageType string // "sqlite" or "postgres"
	SQLitePath  string
	PostgresURL string

	// Preview server
	APIPort string
	APIHost string

	// CLI
	APIEndpoint string

	// Logging
	LogLevel  string
	LogFormat string
}

var defaults = map[string]any{
	"org_name":          "intoolswetrust",
	"gh_token":          "",
	"github_api_url":    "",
	"http_timeout":      "0s",
	"github_min_delay":  "100ms",
	"index_path":        "index.md",
	"template_path":     "templates/index.md.tmpl",
	"site_config_path":  "_config.yml",
	"bootstrap":         true,
	"include_timestamp": true,
	"plain":             false,
	"archive":           false,
	"storage_type":      "sqlite",
	"sqlite_path":       "./pages.db",
	"postgres_url":      "",
	"api_port":          "8080",
	"api_host":          "localhost",
	"api_endpoint":      "http://localhost:8080",
	"log_level":         "warn",
	"log_format":        "auto",
}

// Load loads the configuration from environment variables and an optional config file.
// Environment variables take precedence over the file.
func Load(cfgFile string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	}

	return &Config{
		Org:              v.GetString("org_name"),
		GitHubToken:      v.GetString("gh_token"),
		GitHubAPI:        v.GetString("github_api_url"),
		HTTPTimeout:      v.GetDuration("http_timeout"),
		MinDelay:         v.GetDuration("github_min_delay"),
		IndexPath:        v.GetString("index_path"),
		TemplatePath:     v.GetString("template_path"),
		SiteConfigPath:   v.GetString("site_config_path"),
		Bootstrap:        v.GetBool("bootstrap"),
		IncludeTimestamp: v.GetBool("include_timestamp"),
		Plain:            v.GetBool("plain"),
		Archive:          v.GetBool("archive"),
		StorageType:      v.GetString("storage_type"),
		SQLitePath:       v.GetString("sqlite_path"),
		PostgresURL:      v.GetString("postgres_url"),
		APIPort:          v.GetString("api_port"),
		APIHost:          v.GetString("api_host"),
		APIEndpoint:      v.GetString("api_endpoint"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Org == "" {
		return &ConfigError{Field: "ORG_NAME", Message: "organization is required"}
	}
	if c.IndexPath == "" {
		return &ConfigError{Field: "INDEX_PATH", Message: "output path is required"}
	}
	if c.StorageType != "sqlite" && c.StorageType != "postgres" {
		return &ConfigError{Field: "STORAGE_TYPE", Message: "must be 'sqlite' or 'postgres'"}
	}
	if c.Archive && c.StorageType == "postgres" && c.PostgresURL == "" {
		return &ConfigError{Field: "POSTGRES_URL", Message: "PostgreSQL URL is required when STORAGE_TYPE is 'postgres'"}
	}
	if c.HTTPTimeout < 0 {
		return &ConfigError{Field: "HTTP_TIMEOUT", Message: "must not be negative"}
	}
	if c.MinDelay < 0 {
		return &ConfigError{Field: "GITHUB_MIN_DELAY", Message: "must not be negative"}
	}
	return nil
}

// Authenticated reports whether a GitHub token is configured
func (c *Config) Authenticated() bool {
	return c.GitHubToken != ""
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
