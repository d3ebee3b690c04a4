package invoices

import (
	"context"

	"github.com/boratech/exportdesk/pkg/pagination"
)

// System defines the public contract for invoice domain operations.
// Region parameters are raw tokens; every operation validates them against
// the closed region set before any store handle is resolved.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Invoice, error)
	List(ctx context.Context, region string) ([]Invoice, error)
	Search(
		ctx context.Context,
		region string,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Invoice], error)
	Find(ctx context.Context, region, id string) (*Invoice, error)
	Notifications(ctx context.Context, region, id string) ([]Notification, error)
	Upload(ctx context.Context, cmd UploadCommand) (*Invoice, error)
	Delete(ctx context.Context, region, id string) (*DeleteResult, error)
	ViewURL(ctx context.Context, region, key string) (string, error)
}
