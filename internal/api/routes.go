package api

import (
	"net/http"

	"github.com/boratech/exportdesk/internal/config"
	"github.com/boratech/exportdesk/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	groups := domain.Invoices.Handler(cfg.API.MaxUploadSizeBytes()).Routes()
	groups = append(groups, domain.Auth.Handler().Routes())

	routes.Register(mux, groups...)
}
