package invoices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/pagination"
	"github.com/boratech/exportdesk/pkg/storage"
)

// Config holds runtime knobs for the invoice system.
type Config struct {
	// SignedURLTTL bounds the validity of viewing URLs.
	SignedURLTTL time.Duration
	// BlobOpTimeout bounds each individual blob store call during deletion.
	// A timeout counts as a delete failure for that one object.
	BlobOpTimeout time.Duration
	// DeleteConcurrency limits parallel blob deletions per invoice removal.
	DeleteConcurrency int
}

func (c *Config) normalize() {
	if c.SignedURLTTL <= 0 {
		c.SignedURLTTL = time.Hour
	}
	if c.BlobOpTimeout <= 0 {
		c.BlobOpTimeout = 30 * time.Second
	}
	if c.DeleteConcurrency <= 0 {
		c.DeleteConcurrency = 8
	}
}

type repo struct {
	stores     Resolver
	blobs      storage.System
	logger     *slog.Logger
	cfg        Config
	pagination pagination.Config
}

// New creates an invoice system implementing the System interface.
func New(
	stores Resolver,
	blobs storage.System,
	logger *slog.Logger,
	cfg Config,
	pg pagination.Config,
) System {
	cfg.normalize()
	return &repo{
		stores:     stores,
		blobs:      blobs,
		logger:     logger.With("system", "invoices"),
		cfg:        cfg,
		pagination: pg,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

// resolve validates the region token and yields that region's store handle.
// It must run before any store access on every entry point.
func (r *repo) resolve(token string) (regions.Region, Store, error) {
	region, err := regions.Parse(token)
	if err != nil {
		return "", nil, err
	}
	store, err := r.stores.Store(region)
	if err != nil {
		return "", nil, err
	}
	return region, store, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Invoice, error) {
	region, store, err := r.resolve(cmd.Region)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cmd.InvoiceNumber) == "" {
		return nil, ErrEmptyInvoiceNumber
	}

	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		id = uuid.New().String()
	}

	inv, err := store.Insert(ctx, &Invoice{
		ID:            id,
		InvoiceNumber: cmd.InvoiceNumber,
		Region:        region,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("invoice created", "id", inv.ID, "region", region)
	return inv, nil
}

func (r *repo) List(ctx context.Context, region string) ([]Invoice, error) {
	_, store, err := r.resolve(region)
	if err != nil {
		return nil, err
	}
	return store.FindAll(ctx)
}

func (r *repo) Search(
	ctx context.Context,
	region string,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Invoice], error) {
	_, store, err := r.resolve(region)
	if err != nil {
		return nil, err
	}

	page.Normalize(r.pagination)
	return store.Search(ctx, page, filters)
}

func (r *repo) Find(ctx context.Context, region, id string) (*Invoice, error) {
	_, store, err := r.resolve(region)
	if err != nil {
		return nil, err
	}
	return store.FindByID(ctx, id)
}

func (r *repo) Notifications(ctx context.Context, region, id string) ([]Notification, error) {
	inv, err := r.Find(ctx, region, id)
	if err != nil {
		return nil, err
	}
	return MissingDocuments(inv), nil
}

// Upload writes the blob first and then atomically appends the document
// reference to the invoice. The two steps are not transactional: a crash
// between them leaves an orphan blob, which is tolerated but logged so an
// operator can reconcile.
func (r *repo) Upload(ctx context.Context, cmd UploadCommand) (*Invoice, error) {
	region, store, err := r.resolve(cmd.Region)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cmd.InvoiceID) == "" {
		return nil, ErrEmptyInvoiceID
	}
	if len(cmd.Data) == 0 {
		return nil, ErrMissingFile
	}

	key := buildStorageKey(region, cmd.InvoiceID, cmd.FileName)

	if err := r.blobs.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload document blob: %w", err)
	}

	field, item := buildDocument(cmd, key)

	inv, err := store.AppendDocument(ctx, cmd.InvoiceID, field, item)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if delErr := r.blobs.Delete(ctx, key); delErr != nil {
				r.logger.Warn("orphaned blob after failed append", "key", key, "error", delErr)
			}
		}
		return nil, err
	}

	r.logger.Info(
		"document uploaded",
		"invoice", inv.ID,
		"region", region,
		"classification", cmd.Classification,
		"key", key,
	)
	return inv, nil
}

// Delete removes every blob referenced by the invoice and then the metadata
// record. Blob deletions run concurrently and all settle before the metadata
// delete; individual failures are reported as diagnostics, never as an
// operation failure.
func (r *repo) Delete(ctx context.Context, region, id string) (*DeleteResult, error) {
	_, store, err := r.resolve(region)
	if err != nil {
		return nil, err
	}

	inv, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := collectKeys(inv)
	failures := r.deleteBlobs(ctx, keys)

	if _, err := store.DeleteByID(ctx, id); err != nil {
		return nil, err
	}

	for _, f := range failures {
		r.logger.Warn("blob delete failed during invoice removal",
			"invoice", id,
			"key", f.Key,
			"error", f.Error,
		)
	}

	r.logger.Info("invoice deleted",
		"id", id,
		"region", region,
		"blobs", len(keys),
		"failed", len(failures),
	)

	return &DeleteResult{
		InvoiceID:    id,
		BlobsDeleted: len(keys) - len(failures),
		Failures:     failures,
	}, nil
}

// deleteBlobs issues one delete per key with bounded concurrency and a
// per-call timeout, waiting for every attempt to settle. A blob that is
// already gone counts as deleted.
func (r *repo) deleteBlobs(ctx context.Context, keys []string) []BlobFailure {
	results := make([]*BlobFailure, len(keys))

	var g errgroup.Group
	g.SetLimit(r.cfg.DeleteConcurrency)

	for i, key := range keys {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, r.cfg.BlobOpTimeout)
			defer cancel()

			err := r.blobs.Delete(callCtx, key)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				results[i] = &BlobFailure{Key: key, Error: err.Error()}
			}
			return nil
		})
	}

	g.Wait()

	failures := make([]BlobFailure, 0, len(keys))
	for _, f := range results {
		if f != nil {
			failures = append(failures, *f)
		}
	}
	return failures
}

// ViewURL issues a time-limited read URL for a blob key. The key must sit
// under the resolved region's prefix and be referenced by an invoice in
// that region's store; unowned keys report not found.
func (r *repo) ViewURL(ctx context.Context, region, key string) (string, error) {
	resolved, store, err := r.resolve(region)
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(key, "documents/"+resolved.String()+"/") {
		return "", storage.ErrNotFound
	}

	owns, err := store.OwnsKey(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve key owner: %w", err)
	}
	if !owns {
		return "", storage.ErrNotFound
	}

	exists, err := r.blobs.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", storage.ErrNotFound
	}

	return r.blobs.SignedURL(ctx, key, r.cfg.SignedURLTTL)
}

func collectKeys(inv *Invoice) []string {
	keys := make([]string, 0, len(inv.ShipmentDocuments)+len(inv.LogisticBills))
	for _, doc := range inv.ShipmentDocuments {
		if doc.FilePath != "" {
			keys = append(keys, doc.FilePath)
		}
	}
	for _, bill := range inv.LogisticBills {
		if bill.FilePath != "" {
			keys = append(keys, bill.FilePath)
		}
	}
	return keys
}

func buildDocument(cmd UploadCommand, key string) (ListField, any) {
	if cmd.Classification == ClassificationLogistic {
		return FieldLogisticBills, LogisticBill{
			ID:           uuid.New().String(),
			DocumentName: cmd.DocumentName,
			FileName:     cmd.FileName,
			FilePath:     key,
			FileSize:     int64(len(cmd.Data)),
			PageCount:    cmd.PageCount,
			UploadedAt:   time.Now().UTC(),
		}
	}

	return FieldShipmentDocuments, ShipmentDocument{
		ID:         uuid.New().String(),
		Type:       cmd.Classification,
		FileName:   cmd.FileName,
		FilePath:   key,
		FileSize:   int64(len(cmd.Data)),
		PageCount:  cmd.PageCount,
		UploadedAt: time.Now().UTC(),
	}
}

// buildStorageKey namespaces a blob by region and invoice; the random
// component keeps keys unique across repeated uploads of the same filename.
func buildStorageKey(region regions.Region, invoiceID, fileName string) string {
	return fmt.Sprintf(
		"documents/%s/%s/%s-%s",
		region, invoiceID, uuid.New(), sanitizeFilename(fileName),
	)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "document"
	}
	return url.PathEscape(name)
}
