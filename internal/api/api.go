// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/boratech/exportdesk/internal/config"
	"github.com/boratech/exportdesk/internal/infrastructure"
	"github.com/boratech/exportdesk/pkg/middleware"
	"github.com/boratech/exportdesk/pkg/module"
	"github.com/boratech/exportdesk/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	specBytes, err := buildSpec(cfg)
	if err != nil {
		return nil, fmt.Errorf("building openapi spec: %w", err)
	}
	mux.Handle("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
