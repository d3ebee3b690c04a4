package invoices

import (
	"context"

	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/pagination"
)

// ListField identifies one of the invoice's two document lists for atomic appends.
type ListField string

const (
	FieldShipmentDocuments ListField = "shipment_documents"
	FieldLogisticBills     ListField = "logistic_bills"
)

// Store is the metadata store contract for one region's invoice collection.
// Implementations must make AppendDocument a single atomic operation so that
// concurrent appends to the same invoice never lose an update.
type Store interface {
	// Insert stores a new invoice and returns the stored record with
	// its server-assigned creation timestamp.
	Insert(ctx context.Context, inv *Invoice) (*Invoice, error)
	// FindAll returns every invoice ordered by creation time descending.
	FindAll(ctx context.Context) ([]Invoice, error)
	// FindByID returns the invoice or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Invoice, error)
	// AppendDocument atomically appends item to the given list of the
	// invoice identified by id and returns the updated record, or
	// ErrNotFound if no invoice matched.
	AppendDocument(ctx context.Context, id string, field ListField, item any) (*Invoice, error)
	// DeleteByID removes the invoice and returns the removed record,
	// or ErrNotFound if no invoice matched.
	DeleteByID(ctx context.Context, id string) (*Invoice, error)
	// OwnsKey reports whether any invoice in this store references the
	// given blob storage key.
	OwnsKey(ctx context.Context, key string) (bool, error)
	// Search returns a filtered, sorted page of invoices.
	Search(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Invoice], error)
}

// Resolver maps a region to its isolated metadata store.
type Resolver interface {
	Store(region regions.Region) (Store, error)
}

// StoreSet resolves regions against a fixed set of store handles.
// The two regional stores are fully isolated; no operation touches both.
type StoreSet map[regions.Region]Store

// Store returns the handle for the given region, or ErrInvalidRegion when
// the region has no configured store.
func (s StoreSet) Store(region regions.Region) (Store, error) {
	store, ok := s[region]
	if !ok {
		return nil, regions.ErrInvalidRegion
	}
	return store, nil
}
