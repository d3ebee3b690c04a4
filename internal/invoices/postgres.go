package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/pagination"
	"github.com/boratech/exportdesk/pkg/query"
	"github.com/boratech/exportdesk/pkg/repository"
)

const invoiceColumns = "id, invoice_number, region, created_at, shipment_documents, logistic_bills"

var projection = query.
	NewProjectionMap("public", "invoices", "i").
	Project("id", "ID").
	Project("invoice_number", "InvoiceNumber").
	Project("region", "Region").
	Project("created_at", "CreatedAt").
	Project("shipment_documents", "ShipmentDocuments").
	Project("logistic_bills", "LogisticBills")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// pgStore implements Store on a single regional PostgreSQL database.
// Document lists live in JSONB columns; appends use JSONB concatenation
// in one UPDATE statement, never a read-modify-write.
type pgStore struct {
	db     *sql.DB
	region regions.Region
}

// NewPostgresStore creates the metadata store for one region's database.
func NewPostgresStore(db *sql.DB, region regions.Region) Store {
	return &pgStore{db: db, region: region}
}

func (s *pgStore) Insert(ctx context.Context, inv *Invoice) (*Invoice, error) {
	q := `
		INSERT INTO invoices (id, invoice_number, region, shipment_documents, logistic_bills)
		VALUES ($1, $2, $3, '[]'::jsonb, '[]'::jsonb)
		RETURNING ` + invoiceColumns

	args := []any{inv.ID, inv.InvoiceNumber, inv.Region}

	stored, err := repository.QueryOne(ctx, s.db, q, args, scanInvoice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &stored, nil
}

func (s *pgStore) FindAll(ctx context.Context) ([]Invoice, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM invoices ORDER BY created_at DESC",
		invoiceColumns,
	)

	invs, err := repository.QueryMany(ctx, s.db, q, nil, scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	return invs, nil
}

func (s *pgStore) FindByID(ctx context.Context, id string) (*Invoice, error) {
	q := fmt.Sprintf(
		"SELECT %s FROM invoices WHERE id = $1",
		invoiceColumns,
	)

	inv, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanInvoice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &inv, nil
}

func (s *pgStore) AppendDocument(ctx context.Context, id string, field ListField, item any) (*Invoice, error) {
	if field != FieldShipmentDocuments && field != FieldLogisticBills {
		return nil, fmt.Errorf("unknown list field: %s", field)
	}

	// marshaled as a one-element array so JSONB || is an array concatenation
	payload, err := json.Marshal([]any{item})
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	q := fmt.Sprintf(
		"UPDATE invoices SET %s = %s || $2::jsonb WHERE id = $1 RETURNING %s",
		field, field, invoiceColumns,
	)

	inv, err := repository.QueryOne(ctx, s.db, q, []any{id, payload}, scanInvoice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &inv, nil
}

func (s *pgStore) DeleteByID(ctx context.Context, id string) (*Invoice, error) {
	q := fmt.Sprintf(
		"DELETE FROM invoices WHERE id = $1 RETURNING %s",
		invoiceColumns,
	)

	inv, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanInvoice)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &inv, nil
}

func (s *pgStore) OwnsKey(ctx context.Context, key string) (bool, error) {
	needle, err := json.Marshal([]map[string]string{{"filePath": key}})
	if err != nil {
		return false, fmt.Errorf("marshal key needle: %w", err)
	}

	q := `
		SELECT EXISTS (
			SELECT 1 FROM invoices
			WHERE shipment_documents @> $1::jsonb OR logistic_bills @> $1::jsonb
		)`

	owns, err := repository.QueryExists(ctx, s.db, q, needle)
	if err != nil {
		return false, fmt.Errorf("check key ownership: %w", err)
	}
	return owns, nil
}

func (s *pgStore) Search(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Invoice], error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "InvoiceNumber")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	invs, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanInvoice)
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}

	result := pagination.NewPageResult(invs, total, page.Page, page.PageSize)
	return &result, nil
}

func scanInvoice(s repository.Scanner) (Invoice, error) {
	var (
		inv      Invoice
		shipment []byte
		bills    []byte
	)

	if err := s.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.Region,
		&inv.CreatedAt,
		&shipment,
		&bills,
	); err != nil {
		return inv, err
	}

	if err := json.Unmarshal(shipment, &inv.ShipmentDocuments); err != nil {
		return inv, fmt.Errorf("decode shipment documents: %w", err)
	}
	if err := json.Unmarshal(bills, &inv.LogisticBills); err != nil {
		return inv, fmt.Errorf("decode logistic bills: %w", err)
	}

	return inv, nil
}
