package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/boratech/exportdesk/pkg/formatting"
	"github.com/boratech/exportdesk/pkg/middleware"
	"github.com/boratech/exportdesk/pkg/openapi"
	"github.com/boratech/exportdesk/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "EXPORTDESK_CORS_ENABLED",
	Origins:          "EXPORTDESK_CORS_ORIGINS",
	AllowedMethods:   "EXPORTDESK_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "EXPORTDESK_CORS_ALLOWED_HEADERS",
	AllowCredentials: "EXPORTDESK_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "EXPORTDESK_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "EXPORTDESK_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "EXPORTDESK_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "EXPORTDESK_OPENAPI_TITLE",
	Description: "EXPORTDESK_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, upload, blob handling, CORS, and pagination settings.
type APIConfig struct {
	BasePath              string                `toml:"base_path"`
	MaxUploadSize         string                `toml:"max_upload_size"`
	SignedURLTTL          string                `toml:"signed_url_ttl"`
	BlobOpTimeout         string                `toml:"blob_op_timeout"`
	BlobDeleteConcurrency int                   `toml:"blob_delete_concurrency"`
	CORS                  middleware.CORSConfig `toml:"cors"`
	Pagination            pagination.Config     `toml:"pagination"`
	OpenAPI               openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns the upload limit in bytes, defaulting to 50MB.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024
	}
	return size
}

// SignedURLTTLDuration returns SignedURLTTL as a time.Duration.
func (c *APIConfig) SignedURLTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SignedURLTTL)
	return d
}

// BlobOpTimeoutDuration returns BlobOpTimeout as a time.Duration.
func (c *APIConfig) BlobOpTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.BlobOpTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.SignedURLTTL != "" {
		c.SignedURLTTL = overlay.SignedURLTTL
	}
	if overlay.BlobOpTimeout != "" {
		c.BlobOpTimeout = overlay.BlobOpTimeout
	}
	if overlay.BlobDeleteConcurrency != 0 {
		c.BlobDeleteConcurrency = overlay.BlobDeleteConcurrency
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if c.SignedURLTTL == "" {
		c.SignedURLTTL = "1h"
	}
	if c.BlobOpTimeout == "" {
		c.BlobOpTimeout = "30s"
	}
	if c.BlobDeleteConcurrency == 0 {
		c.BlobDeleteConcurrency = 8
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("EXPORTDESK_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("EXPORTDESK_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv("EXPORTDESK_API_SIGNED_URL_TTL"); v != "" {
		c.SignedURLTTL = v
	}
	if v := os.Getenv("EXPORTDESK_API_BLOB_OP_TIMEOUT"); v != "" {
		c.BlobOpTimeout = v
	}
	if v := os.Getenv("EXPORTDESK_API_BLOB_DELETE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.BlobDeleteConcurrency = n
		}
	}
}

func (c *APIConfig) validate() error {
	if _, err := time.ParseDuration(c.SignedURLTTL); err != nil {
		return fmt.Errorf("invalid signed_url_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.BlobOpTimeout); err != nil {
		return fmt.Errorf("invalid blob_op_timeout: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if c.BlobDeleteConcurrency < 1 {
		return fmt.Errorf("blob_delete_concurrency must be positive")
	}
	return nil
}
