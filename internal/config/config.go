// Package config provides configuration loading and management for the
// cheeseshop index server.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables read by the server.
const EnvPrefix = "CHEESESHOP"

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Site describes the index this server fronts; feed links and channel
	// metadata are built from it
	Site SiteConfig `yaml:"site"`

	// Address is the listen address of the HTTP server
	Address string `yaml:"address,omitempty"`

	// Database configures the Postgres-backed packaging store
	Database *DatabaseConfig `yaml:"database,omitempty"`

	// IndexDump configures the file-backed packaging store
	IndexDump *IndexDumpConfig `yaml:"indexDump,omitempty"`

	// Telemetry configures metrics exposure
	Telemetry *TelemetryConfig `yaml:"telemetry,omitempty"`
}

// SiteConfig identifies the site served by this index
type SiteConfig struct {
	// Name is the display name of the index (feed channel titles use it)
	Name string `yaml:"name"`

	// URL is the canonical site root; item links are built under it
	URL string `yaml:"url"`
}

// IndexDumpConfig defines the file-backed store settings
type IndexDumpConfig struct {
	// Path is the location of the JSON index dump
	Path string `yaml:"path"`

	// RefreshInterval is how long a loaded snapshot is served before the
	// dump file is re-read (e.g. "30s", "5m")
	RefreshInterval string `yaml:"refreshInterval,omitempty"`
}

// TelemetryConfig defines metrics settings
type TelemetryConfig struct {
	// Metrics enables the Prometheus /metrics endpoint
	Metrics bool `yaml:"metrics,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password.
	// This is the recommended approach for production deployments.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxConns is the maximum number of pooled connections
	MaxConns int32 `yaml:"maxConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from CHEESESHOP_DATABASE_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(EnvPrefix + "_DATABASE_PASSWORD"); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s_DATABASE_PASSWORD environment variable",
		EnvPrefix,
	)
}

// GetConnectionString builds a PostgreSQL connection string with proper
// password handling. The password is URL-escaped to handle special
// characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	// As of now, this is required because there's no other options to load
	// configuration. Once we add more options, we can remove this check.
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Site.Name == "" {
		return fmt.Errorf("site.name is required")
	}
	if c.Site.URL == "" {
		return fmt.Errorf("site.url is required")
	}
	parsed, err := url.Parse(c.Site.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("site.url must be an absolute http(s) URL, got %q", c.Site.URL)
	}

	// Exactly one packaging store must be configured
	if c.Database == nil && c.IndexDump == nil {
		return fmt.Errorf("one of database or indexDump configuration must be specified")
	}
	if c.Database != nil && c.IndexDump != nil {
		return fmt.Errorf("only one of database or indexDump configuration may be specified")
	}

	if c.Database != nil {
		if err := c.validateDatabase(); err != nil {
			return err
		}
	}

	if c.IndexDump != nil {
		if c.IndexDump.Path == "" {
			return fmt.Errorf("indexDump.path is required")
		}
		if c.IndexDump.RefreshInterval != "" {
			if _, err := time.ParseDuration(c.IndexDump.RefreshInterval); err != nil {
				return fmt.Errorf("indexDump.refreshInterval must be a valid duration (e.g., '30s', '5m'): %w", err)
			}
		}
	}

	return nil
}

func (c *Config) validateDatabase() error {
	d := c.Database
	if d.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if d.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if d.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if d.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if d.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(d.ConnMaxLifetime); err != nil {
			return fmt.Errorf("database.connMaxLifetime must be a valid duration: %w", err)
		}
	}
	return nil
}

// GetAddress returns the listen address, defaulting to ":8080".
func (c *Config) GetAddress() string {
	if c.Address == "" {
		return ":8080"
	}
	return c.Address
}

// GetRefreshInterval returns the parsed dump refresh interval, defaulting
// to 30 seconds. Validation has already checked the duration parses.
func (i *IndexDumpConfig) GetRefreshInterval() time.Duration {
	if i == nil || i.RefreshInterval == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(i.RefreshInterval)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
