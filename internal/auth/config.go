package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/boratech/exportdesk/internal/regions"
)

// Credential holds the static login pair for one region.
type Credential struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// Config holds authentication settings: the token signing secret, token
// lifetime, and the static per-region credentials.
type Config struct {
	Secret      string                `toml:"secret"`
	TokenTTL    string                `toml:"token_ttl"`
	Credentials map[string]Credential `toml:"credentials"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Secret   string
	TokenTTL string
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
	if overlay.Credentials != nil {
		c.Credentials = overlay.Credentials
	}
}

func (c *Config) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "12h"
	}
	if c.Credentials == nil {
		c.Credentials = make(map[string]Credential)
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.TokenTTL != "" {
		if v := os.Getenv(env.TokenTTL); v != "" {
			c.TokenTTL = v
		}
	}
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret required")
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	for token, cred := range c.Credentials {
		if _, err := regions.Parse(token); err != nil {
			return fmt.Errorf("credentials for unknown region: %s", token)
		}
		if cred.Email == "" || cred.Password == "" {
			return fmt.Errorf("incomplete credentials for region: %s", token)
		}
	}
	return nil
}
