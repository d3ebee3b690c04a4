// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, regional databases, storage) that domain
// systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/boratech/exportdesk/internal/config"
	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/database"
	"github.com/boratech/exportdesk/pkg/lifecycle"
	"github.com/boratech/exportdesk/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Each region gets its own metadata database; blob storage is shared.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Databases map[regions.Region]database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	databases := make(map[regions.Region]database.System, len(regions.All))
	for _, region := range regions.All {
		db, err := database.New(cfg.Regions.Database(region), string(region), logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed for %s: %w", region, err)
		}
		databases[region] = db
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Databases: databases,
		Storage:   store,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Every regional database and the storage client register startup and shutdown hooks.
func (i *Infrastructure) Start() error {
	for region, db := range i.Databases {
		if err := db.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed for %s: %w", region, err)
		}
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
