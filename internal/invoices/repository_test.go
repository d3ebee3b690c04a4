package invoices_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/boratech/exportdesk/internal/invoices"
	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/lifecycle"
	"github.com/boratech/exportdesk/pkg/pagination"
	"github.com/boratech/exportdesk/pkg/storage"
)

// fakeStore is an in-memory Store with atomic appends, mirroring the
// single-statement semantics of the real implementation.
type fakeStore struct {
	mu       sync.Mutex
	invoices map[string]*invoices.Invoice
	calls    int

	appendErr error
	findErr   error
}

func newFakeStore(invs ...*invoices.Invoice) *fakeStore {
	s := &fakeStore{invoices: make(map[string]*invoices.Invoice)}
	for _, inv := range invs {
		s.invoices[inv.ID] = inv
	}
	return s
}

func (s *fakeStore) touch() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *fakeStore) Insert(_ context.Context, inv *invoices.Invoice) (*invoices.Invoice, error) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; exists {
		return nil, invoices.ErrDuplicate
	}
	stored := *inv
	stored.CreatedAt = time.Now().UTC()
	s.invoices[inv.ID] = &stored

	out := stored
	return &out, nil
}

func (s *fakeStore) FindAll(_ context.Context) ([]invoices.Invoice, error) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]invoices.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, *inv)
	}
	return out, nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*invoices.Invoice, error) {
	s.touch()
	if s.findErr != nil {
		return nil, s.findErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, invoices.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (s *fakeStore) AppendDocument(
	_ context.Context,
	id string,
	field invoices.ListField,
	item any,
) (*invoices.Invoice, error) {
	s.touch()
	if s.appendErr != nil {
		return nil, s.appendErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, invoices.ErrNotFound
	}

	switch field {
	case invoices.FieldShipmentDocuments:
		inv.ShipmentDocuments = append(inv.ShipmentDocuments, item.(invoices.ShipmentDocument))
	case invoices.FieldLogisticBills:
		inv.LogisticBills = append(inv.LogisticBills, item.(invoices.LogisticBill))
	default:
		return nil, fmt.Errorf("unknown list field: %s", field)
	}

	out := *inv
	return &out, nil
}

func (s *fakeStore) DeleteByID(_ context.Context, id string) (*invoices.Invoice, error) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, invoices.ErrNotFound
	}
	delete(s.invoices, id)
	return inv, nil
}

func (s *fakeStore) OwnsKey(_ context.Context, key string) (bool, error) {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		for _, doc := range inv.ShipmentDocuments {
			if doc.FilePath == key {
				return true, nil
			}
		}
		for _, bill := range inv.LogisticBills {
			if bill.FilePath == key {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *fakeStore) Search(
	ctx context.Context,
	page pagination.PageRequest,
	_ invoices.Filters,
) (*pagination.PageResult[invoices.Invoice], error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := pagination.NewPageResult(all, len(all), page.Page, page.PageSize)
	return &result, nil
}

// fakeBlobs is an in-memory storage.System that can fail selected keys.
type fakeBlobs struct {
	mu    sync.Mutex
	blobs map[string][]byte

	failDelete map[string]error
	uploadErr  error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{
		blobs:      make(map[string][]byte),
		failDelete: make(map[string]error),
	}
}

func (b *fakeBlobs) Start(_ *lifecycle.Coordinator) error { return nil }

func (b *fakeBlobs) Upload(_ context.Context, key string, reader io.Reader, _ string) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.blobs[key] = data
	b.mu.Unlock()
	return nil
}

func (b *fakeBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err, ok := b.failDelete[key]; ok {
		return err
	}
	if _, ok := b.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(b.blobs, key)
	return nil
}

func (b *fakeBlobs) Exists(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.blobs[key]
	return ok, nil
}

func (b *fakeBlobs) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://blobs.example.com/%s?expiry=%s", key, ttl), nil
}

func (b *fakeBlobs) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.blobs))
	for k := range b.blobs {
		out = append(out, k)
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(russia, dubai invoices.Store, blobs storage.System) invoices.System {
	stores := invoices.StoreSet{}
	if russia != nil {
		stores[regions.Russia] = russia
	}
	if dubai != nil {
		stores[regions.Dubai] = dubai
	}
	return invoices.New(
		stores,
		blobs,
		testLogger(),
		invoices.Config{},
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func TestCreate(t *testing.T) {
	store := newFakeStore()
	sys := newSystem(store, newFakeStore(), newFakeBlobs())

	inv, err := sys.Create(context.Background(), invoices.CreateCommand{
		InvoiceNumber: "EXP-2024-001",
		Region:        "russia",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if inv.ID == "" {
		t.Error("expected generated id")
	}
	if inv.Region != regions.Russia {
		t.Errorf("region = %s, want russia", inv.Region)
	}
	if inv.CreatedAt.IsZero() {
		t.Error("expected server-assigned creation time")
	}
}

func TestCreateWithClientID(t *testing.T) {
	sys := newSystem(newFakeStore(), newFakeStore(), newFakeBlobs())

	inv, err := sys.Create(context.Background(), invoices.CreateCommand{
		ID:            "client-id-1",
		InvoiceNumber: "EXP-2024-002",
		Region:        "dubai",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inv.ID != "client-id-1" {
		t.Errorf("id = %s, want client-id-1", inv.ID)
	}
}

func TestCreateEmptyInvoiceNumber(t *testing.T) {
	sys := newSystem(newFakeStore(), newFakeStore(), newFakeBlobs())

	for _, number := range []string{"", "   ", "\t"} {
		_, err := sys.Create(context.Background(), invoices.CreateCommand{
			InvoiceNumber: number,
			Region:        "russia",
		})
		if !errors.Is(err, invoices.ErrEmptyInvoiceNumber) {
			t.Errorf("Create(%q) error = %v, want ErrEmptyInvoiceNumber", number, err)
		}
	}
}

func TestCreateDuplicate(t *testing.T) {
	sys := newSystem(newFakeStore(), newFakeStore(), newFakeBlobs())

	cmd := invoices.CreateCommand{ID: "dup", InvoiceNumber: "EXP-1", Region: "russia"}
	if _, err := sys.Create(context.Background(), cmd); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := sys.Create(context.Background(), cmd); !errors.Is(err, invoices.ErrDuplicate) {
		t.Errorf("second create error = %v, want ErrDuplicate", err)
	}
}

func TestInvalidRegionNeverTouchesStores(t *testing.T) {
	russia := newFakeStore()
	dubai := newFakeStore()
	sys := newSystem(russia, dubai, newFakeBlobs())
	ctx := context.Background()

	ops := map[string]func() error{
		"create": func() error {
			_, err := sys.Create(ctx, invoices.CreateCommand{InvoiceNumber: "N", Region: "mars"})
			return err
		},
		"list": func() error {
			_, err := sys.List(ctx, "mars")
			return err
		},
		"find": func() error {
			_, err := sys.Find(ctx, "mars", "inv-1")
			return err
		},
		"notifications": func() error {
			_, err := sys.Notifications(ctx, "mars", "inv-1")
			return err
		},
		"upload": func() error {
			_, err := sys.Upload(ctx, invoices.UploadCommand{
				InvoiceID: "inv-1",
				Region:    "mars",
				Data:      []byte("x"),
				FileName:  "f.pdf",
			})
			return err
		},
		"delete": func() error {
			_, err := sys.Delete(ctx, "mars", "inv-1")
			return err
		},
		"view": func() error {
			_, err := sys.ViewURL(ctx, "mars", "documents/mars/inv-1/key")
			return err
		},
		"search": func() error {
			_, err := sys.Search(ctx, "mars", pagination.PageRequest{}, invoices.Filters{})
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op(); !errors.Is(err, regions.ErrInvalidRegion) {
				t.Errorf("error = %v, want ErrInvalidRegion", err)
			}
		})
	}

	if russia.callCount() != 0 || dubai.callCount() != 0 {
		t.Errorf(
			"stores touched on invalid region: russia=%d dubai=%d calls",
			russia.callCount(), dubai.callCount(),
		)
	}
}

func TestRegionIsolation(t *testing.T) {
	russia := newFakeStore(&invoices.Invoice{ID: "ru-1", Region: regions.Russia})
	dubai := newFakeStore(&invoices.Invoice{ID: "du-1", Region: regions.Dubai})
	sys := newSystem(russia, dubai, newFakeBlobs())
	ctx := context.Background()

	if _, err := sys.Find(ctx, "russia", "ru-1"); err != nil {
		t.Fatalf("find in home region failed: %v", err)
	}
	if _, err := sys.Find(ctx, "dubai", "ru-1"); !errors.Is(err, invoices.ErrNotFound) {
		t.Errorf("cross-region find error = %v, want ErrNotFound", err)
	}
}

func TestUploadShipmentDocument(t *testing.T) {
	store := newFakeStore(&invoices.Invoice{ID: "inv-1", Region: regions.Russia})
	blobs := newFakeBlobs()
	sys := newSystem(store, newFakeStore(), blobs)

	pages := 3
	inv, err := sys.Upload(context.Background(), invoices.UploadCommand{
		InvoiceID:      "inv-1",
		Region:         "russia",
		Classification: string(invoices.TypePackingList),
		Data:           []byte("pdf bytes"),
		FileName:       "packing.pdf",
		ContentType:    "application/pdf",
		PageCount:      &pages,
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if len(inv.ShipmentDocuments) != 1 {
		t.Fatalf("got %d shipment documents, want 1", len(inv.ShipmentDocuments))
	}
	if len(inv.LogisticBills) != 0 {
		t.Fatalf("got %d logistic bills, want 0", len(inv.LogisticBills))
	}

	doc := inv.ShipmentDocuments[0]
	if doc.Type != "packing_list" {
		t.Errorf("type = %s, want packing_list", doc.Type)
	}
	if doc.FileName != "packing.pdf" {
		t.Errorf("fileName = %s, want packing.pdf", doc.FileName)
	}
	if doc.FileSize != int64(len("pdf bytes")) {
		t.Errorf("fileSize = %d, want %d", doc.FileSize, len("pdf bytes"))
	}
	if doc.PageCount == nil || *doc.PageCount != 3 {
		t.Errorf("pageCount = %v, want 3", doc.PageCount)
	}
	if !strings.HasPrefix(doc.FilePath, "documents/russia/inv-1/") {
		t.Errorf("filePath = %s, want documents/russia/inv-1/ prefix", doc.FilePath)
	}
	if !strings.HasSuffix(doc.FilePath, "-packing.pdf") {
		t.Errorf("filePath = %s, want -packing.pdf suffix", doc.FilePath)
	}

	keys := blobs.keys()
	if len(keys) != 1 || keys[0] != doc.FilePath {
		t.Errorf("stored blob keys = %v, want [%s]", keys, doc.FilePath)
	}
}

func TestUploadLogisticBill(t *testing.T) {
	store := newFakeStore(&invoices.Invoice{ID: "inv-1", Region: regions.Dubai})
	sys := newSystem(newFakeStore(), store, newFakeBlobs())

	inv, err := sys.Upload(context.Background(), invoices.UploadCommand{
		InvoiceID:      "inv-1",
		Region:         "dubai",
		Classification: invoices.ClassificationLogistic,
		DocumentName:   "Freight Charges",
		Data:           []byte("bill"),
		FileName:       "freight.pdf",
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if len(inv.LogisticBills) != 1 {
		t.Fatalf("got %d logistic bills, want 1", len(inv.LogisticBills))
	}
	if len(inv.ShipmentDocuments) != 0 {
		t.Fatalf("got %d shipment documents, want 0", len(inv.ShipmentDocuments))
	}

	bill := inv.LogisticBills[0]
	if bill.DocumentName != "Freight Charges" {
		t.Errorf("documentName = %s, want Freight Charges", bill.DocumentName)
	}
	if !strings.HasPrefix(bill.FilePath, "documents/dubai/inv-1/") {
		t.Errorf("filePath = %s, want documents/dubai/inv-1/ prefix", bill.FilePath)
	}
}

func TestUploadOpenClassificationStoredVerbatim(t *testing.T) {
	store := newFakeStore(&invoices.Invoice{ID: "inv-1", Region: regions.Russia})
	sys := newSystem(store, newFakeStore(), newFakeBlobs())

	inv, err := sys.Upload(context.Background(), invoices.UploadCommand{
		InvoiceID:      "inv-1",
		Region:         "russia",
		Classification: "certificate_of_origin",
		Data:           []byte("x"),
		FileName:       "coo.pdf",
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if len(inv.ShipmentDocuments) != 1 {
		t.Fatalf("got %d shipment documents, want 1", len(inv.ShipmentDocuments))
	}
	if inv.ShipmentDocuments[0].Type != "certificate_of_origin" {
		t.Errorf("type = %s, want certificate_of_origin", inv.ShipmentDocuments[0].Type)
	}
}

func TestUploadValidation(t *testing.T) {
	store := newFakeStore(&invoices.Invoice{ID: "inv-1", Region: regions.Russia})
	blobs := newFakeBlobs()
	sys := newSystem(store, newFakeStore(), blobs)
	ctx := context.Background()

	_, err := sys.Upload(ctx, invoices.UploadCommand{
		Region: "russia", Data: []byte("x"), FileName: "f.pdf",
	})
	if !errors.Is(err, invoices.ErrEmptyInvoiceID) {
		t.Errorf("missing invoice id error = %v, want ErrEmptyInvoiceID", err)
	}

	_, err = sys.Upload(ctx, invoices.UploadCommand{
		InvoiceID: "inv-1", Region: "russia", FileName: "f.pdf",
	})
	if !errors.Is(err, invoices.ErrMissingFile) {
		t.Errorf("empty file error = %v, want ErrMissingFile", err)
	}

	if len(blobs.keys()) != 0 {
		t.Errorf("blobs written despite validation failure: %v", blobs.keys())
	}
}

func TestUploadToMissingInvoiceCleansUpBlob(t *testing.T) {
	store := newFakeStore()
	blobs := newFakeBlobs()
	sys := newSystem(store, newFakeStore(), blobs)

	_, err := sys.Upload(context.Background(), invoices.UploadCommand{
		InvoiceID:      "ghost",
		Region:         "russia",
		Classification: string(invoices.TypeExportInvoice),
		Data:           []byte("x"),
		FileName:       "f.pdf",
	})
	if !errors.Is(err, invoices.ErrNotFound) {
		t.Fatalf("upload error = %v, want ErrNotFound", err)
	}

	if len(blobs.keys()) != 0 {
		t.Errorf("orphan blob left behind: %v", blobs.keys())
	}
}

func TestConcurrentUploadsLoseNoDocuments(t *testing.T) {
	store := newFakeStore(&invoices.Invoice{ID: "inv-1", Region: regions.Russia})
	sys := newSystem(store, newFakeStore(), newFakeBlobs())

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = sys.Upload(context.Background(), invoices.UploadCommand{
				InvoiceID:      "inv-1",
				Region:         "russia",
				Classification: string(invoices.TypeExportInvoice),
				Data:           []byte("x"),
				FileName:       fmt.Sprintf("doc-%d.pdf", i),
			})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("upload %d failed: %v", i, err)
		}
	}

	inv, err := sys.Find(context.Background(), "russia", "inv-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(inv.ShipmentDocuments) != n {
		t.Errorf("got %d shipment documents, want %d", len(inv.ShipmentDocuments), n)
	}
}

func deletableInvoice(blobs *fakeBlobs, keys ...string) *invoices.Invoice {
	inv := &invoices.Invoice{ID: "inv-1", Region: regions.Russia}
	for i, key := range keys {
		blobs.blobs[key] = []byte("data")
		if i%2 == 0 {
			inv.ShipmentDocuments = append(inv.ShipmentDocuments, invoices.ShipmentDocument{
				ID: fmt.Sprintf("doc-%d", i), Type: "export_invoice", FilePath: key,
			})
		} else {
			inv.LogisticBills = append(inv.LogisticBills, invoices.LogisticBill{
				ID: fmt.Sprintf("bill-%d", i), DocumentName: "Bill", FilePath: key,
			})
		}
	}
	return inv
}

func TestDeleteRemovesAllBlobsAndMetadata(t *testing.T) {
	blobs := newFakeBlobs()
	keys := []string{
		"documents/russia/inv-1/a-one.pdf",
		"documents/russia/inv-1/b-two.pdf",
		"documents/russia/inv-1/c-three.pdf",
	}
	store := newFakeStore(deletableInvoice(blobs, keys...))
	sys := newSystem(store, newFakeStore(), blobs)

	result, err := sys.Delete(context.Background(), "russia", "inv-1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if result.BlobsDeleted != 3 {
		t.Errorf("blobsDeleted = %d, want 3", result.BlobsDeleted)
	}
	if len(result.Failures) != 0 {
		t.Errorf("failures = %v, want none", result.Failures)
	}
	if len(blobs.keys()) != 0 {
		t.Errorf("blobs remaining: %v", blobs.keys())
	}
	if _, err := sys.Find(context.Background(), "russia", "inv-1"); !errors.Is(err, invoices.ErrNotFound) {
		t.Errorf("find after delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteToleratesBlobFailures(t *testing.T) {
	blobs := newFakeBlobs()
	keys := []string{
		"documents/russia/inv-1/a-one.pdf",
		"documents/russia/inv-1/b-two.pdf",
		"documents/russia/inv-1/c-three.pdf",
	}
	store := newFakeStore(deletableInvoice(blobs, keys...))
	blobs.failDelete[keys[1]] = errors.New("storage unavailable")
	sys := newSystem(store, newFakeStore(), blobs)

	result, err := sys.Delete(context.Background(), "russia", "inv-1")
	if err != nil {
		t.Fatalf("delete failed despite tolerant policy: %v", err)
	}

	if result.BlobsDeleted != 2 {
		t.Errorf("blobsDeleted = %d, want 2", result.BlobsDeleted)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(result.Failures))
	}
	if result.Failures[0].Key != keys[1] {
		t.Errorf("failure key = %s, want %s", result.Failures[0].Key, keys[1])
	}
	if result.Failures[0].Error == "" {
		t.Error("failure missing error detail")
	}

	// Metadata goes regardless of blob outcomes.
	if _, err := sys.Find(context.Background(), "russia", "inv-1"); !errors.Is(err, invoices.ErrNotFound) {
		t.Errorf("find after delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissingBlobCountsAsDeleted(t *testing.T) {
	blobs := newFakeBlobs()
	inv := deletableInvoice(blobs, "documents/russia/inv-1/a-one.pdf")
	inv.ShipmentDocuments = append(inv.ShipmentDocuments, invoices.ShipmentDocument{
		ID: "doc-gone", Type: "packing_list", FilePath: "documents/russia/inv-1/z-gone.pdf",
	})
	store := newFakeStore(inv)
	sys := newSystem(store, newFakeStore(), blobs)

	result, err := sys.Delete(context.Background(), "russia", "inv-1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if result.BlobsDeleted != 2 {
		t.Errorf("blobsDeleted = %d, want 2", result.BlobsDeleted)
	}
	if len(result.Failures) != 0 {
		t.Errorf("failures = %v, want none", result.Failures)
	}
}

func TestDeleteMissingInvoice(t *testing.T) {
	sys := newSystem(newFakeStore(), newFakeStore(), newFakeBlobs())

	_, err := sys.Delete(context.Background(), "russia", "ghost")
	if !errors.Is(err, invoices.ErrNotFound) {
		t.Errorf("delete error = %v, want ErrNotFound", err)
	}
}

func TestViewURL(t *testing.T) {
	blobs := newFakeBlobs()
	key := "documents/russia/inv-1/a-doc.pdf"
	store := newFakeStore(deletableInvoice(blobs, key))
	sys := newSystem(store, newFakeStore(), blobs)

	url, err := sys.ViewURL(context.Background(), "russia", key)
	if err != nil {
		t.Fatalf("view url failed: %v", err)
	}
	if !strings.Contains(url, key) {
		t.Errorf("url = %s, want key %s embedded", url, key)
	}
}

func TestViewURLRejectsForeignKeys(t *testing.T) {
	blobs := newFakeBlobs()
	key := "documents/russia/inv-1/a-doc.pdf"
	store := newFakeStore(deletableInvoice(blobs, key))
	sys := newSystem(store, newFakeStore(), blobs)
	ctx := context.Background()

	tests := []struct {
		name   string
		region string
		key    string
	}{
		{name: "wrong region prefix", region: "dubai", key: key},
		{name: "unowned key", region: "russia", key: "documents/russia/inv-9/x-other.pdf"},
		{name: "outside documents prefix", region: "russia", key: "secrets/russia/creds.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.ViewURL(ctx, tt.region, tt.key)
			if !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("error = %v, want storage.ErrNotFound", err)
			}
		})
	}
}

func TestViewURLMissingBlob(t *testing.T) {
	blobs := newFakeBlobs()
	key := "documents/russia/inv-1/a-doc.pdf"
	inv := deletableInvoice(blobs, key)
	delete(blobs.blobs, key)
	sys := newSystem(newFakeStore(inv), newFakeStore(), blobs)

	_, err := sys.ViewURL(context.Background(), "russia", key)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want storage.ErrNotFound", err)
	}
}
