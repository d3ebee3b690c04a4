package invoices

import (
	"net/url"

	"github.com/boratech/exportdesk/pkg/query"
)

// Filters contains optional filtering criteria for invoice searches.
// Nil fields are ignored. InvoiceNumber uses case-insensitive contains matching.
type Filters struct {
	InvoiceNumber *string `json:"invoiceNumber,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("InvoiceNumber", f.InvoiceNumber)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("invoice_number"); n != "" {
		f.InvoiceNumber = &n
	}

	return f
}
