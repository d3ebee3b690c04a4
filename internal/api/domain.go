package api

import (
	"github.com/boratech/exportdesk/internal/auth"
	"github.com/boratech/exportdesk/internal/config"
	"github.com/boratech/exportdesk/internal/invoices"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Invoices invoices.System
	Auth     auth.System
}

// NewDomain creates all domain systems from the API runtime. Each region's
// metadata database backs its own invoice store; blob storage is shared.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	stores := make(invoices.StoreSet, len(runtime.Databases))
	for region, db := range runtime.Databases {
		stores[region] = invoices.NewPostgresStore(db.Connection(), region)
	}

	invoiceSystem := invoices.New(
		stores,
		runtime.Storage,
		runtime.Logger,
		invoices.Config{
			SignedURLTTL:      cfg.API.SignedURLTTLDuration(),
			BlobOpTimeout:     cfg.API.BlobOpTimeoutDuration(),
			DeleteConcurrency: cfg.API.BlobDeleteConcurrency,
		},
		runtime.Pagination,
	)

	authSystem := auth.New(&cfg.Auth, runtime.Logger)

	return &Domain{
		Invoices: invoiceSystem,
		Auth:     authSystem,
	}
}
