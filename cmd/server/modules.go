package main

import (
	"encoding/json"
	"net/http"

	"github.com/boratech/exportdesk/internal/api"
	"github.com/boratech/exportdesk/internal/config"
	"github.com/boratech/exportdesk/internal/infrastructure"
	"github.com/boratech/exportdesk/pkg/module"
	"github.com/boratech/exportdesk/pkg/web"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	if web.Available(cfg.Web.DistDir) {
		spa := web.NewSPAHandler(cfg.Web.DistDir)
		router.HandleNative("/", spa.ServeHTTP)
		infra.Logger.Info("serving frontend", "dist", cfg.Web.DistDir)
	}

	return router
}
