// Package config loads and finalizes service configuration from TOML files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/boratech/exportdesk/internal/auth"
	"github.com/boratech/exportdesk/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvExportdeskEnv             = "EXPORTDESK_ENV"
	EnvExportdeskShutdownTimeout = "EXPORTDESK_SHUTDOWN_TIMEOUT"
	EnvExportdeskVersion         = "EXPORTDESK_VERSION"
	EnvExportdeskWebDistDir      = "EXPORTDESK_WEB_DIST_DIR"
)

var storageEnv = &storage.Env{
	ContainerName:    "EXPORTDESK_STORAGE_CONTAINER_NAME",
	ConnectionString: "EXPORTDESK_STORAGE_CONNECTION_STRING",
}

var authEnv = &auth.Env{
	Secret:   "EXPORTDESK_AUTH_SECRET",
	TokenTTL: "EXPORTDESK_AUTH_TOKEN_TTL",
}

// WebConfig holds static frontend serving settings.
type WebConfig struct {
	DistDir string `toml:"dist_dir"`
}

// Config is the root configuration for the export document service.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	Regions         RegionsConfig  `toml:"regions"`
	Storage         storage.Config `toml:"storage"`
	Auth            auth.Config    `toml:"auth"`
	API             APIConfig      `toml:"api"`
	Web             WebConfig      `toml:"web"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
	Version         string         `toml:"version"`
}

// Env returns the EXPORTDESK_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvExportdeskEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.Web.DistDir != "" {
		c.Web.DistDir = overlay.Web.DistDir
	}
	c.Server.Merge(&overlay.Server)
	c.Regions.Merge(&overlay.Regions)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Regions.Finalize(); err != nil {
		return fmt.Errorf("regions: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.Web.DistDir == "" {
		c.Web.DistDir = "web/dist"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvExportdeskShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvExportdeskVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvExportdeskWebDistDir); v != "" {
		c.Web.DistDir = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvExportdeskEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
