package config

import (
	"fmt"

	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/database"
)

var russiaEnv = &database.Env{
	Host:            "EXPORTDESK_DB_RUSSIA_HOST",
	Port:            "EXPORTDESK_DB_RUSSIA_PORT",
	Name:            "EXPORTDESK_DB_RUSSIA_NAME",
	User:            "EXPORTDESK_DB_RUSSIA_USER",
	Password:        "EXPORTDESK_DB_RUSSIA_PASSWORD",
	SSLMode:         "EXPORTDESK_DB_RUSSIA_SSL_MODE",
	MaxOpenConns:    "EXPORTDESK_DB_RUSSIA_MAX_OPEN_CONNS",
	MaxIdleConns:    "EXPORTDESK_DB_RUSSIA_MAX_IDLE_CONNS",
	ConnMaxLifetime: "EXPORTDESK_DB_RUSSIA_CONN_MAX_LIFETIME",
	ConnTimeout:     "EXPORTDESK_DB_RUSSIA_CONN_TIMEOUT",
}

var dubaiEnv = &database.Env{
	Host:            "EXPORTDESK_DB_DUBAI_HOST",
	Port:            "EXPORTDESK_DB_DUBAI_PORT",
	Name:            "EXPORTDESK_DB_DUBAI_NAME",
	User:            "EXPORTDESK_DB_DUBAI_USER",
	Password:        "EXPORTDESK_DB_DUBAI_PASSWORD",
	SSLMode:         "EXPORTDESK_DB_DUBAI_SSL_MODE",
	MaxOpenConns:    "EXPORTDESK_DB_DUBAI_MAX_OPEN_CONNS",
	MaxIdleConns:    "EXPORTDESK_DB_DUBAI_MAX_IDLE_CONNS",
	ConnMaxLifetime: "EXPORTDESK_DB_DUBAI_CONN_MAX_LIFETIME",
	ConnTimeout:     "EXPORTDESK_DB_DUBAI_CONN_TIMEOUT",
}

// RegionsConfig holds one database configuration per supported region.
// The regional databases are fully isolated from each other.
type RegionsConfig struct {
	Russia database.Config `toml:"russia"`
	Dubai  database.Config `toml:"dubai"`
}

// Database returns the database config for a region.
func (c *RegionsConfig) Database(region regions.Region) *database.Config {
	switch region {
	case regions.Russia:
		return &c.Russia
	case regions.Dubai:
		return &c.Dubai
	default:
		return nil
	}
}

// Finalize applies defaults, environment variable overrides, and validation
// for every regional database config.
func (c *RegionsConfig) Finalize() error {
	if err := c.Russia.Finalize(russiaEnv); err != nil {
		return fmt.Errorf("russia: %w", err)
	}
	if err := c.Dubai.Finalize(dubaiEnv); err != nil {
		return fmt.Errorf("dubai: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay for each region.
func (c *RegionsConfig) Merge(overlay *RegionsConfig) {
	c.Russia.Merge(&overlay.Russia)
	c.Dubai.Merge(&overlay.Dubai)
}
