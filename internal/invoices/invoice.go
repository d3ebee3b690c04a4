// Package invoices implements the export-invoice domain: the invoice aggregate,
// per-region metadata stores, document upload and invoice deletion orchestration,
// and the missing-document notification engine.
package invoices

import (
	"time"

	"github.com/boratech/exportdesk/internal/regions"
)

// Invoice is the aggregate root. Each invoice belongs to exactly one region,
// which determines the physical store that owns the record. Its two document
// lists are only ever mutated through atomic appends.
type Invoice struct {
	ID                string             `json:"id"`
	InvoiceNumber     string             `json:"invoiceNumber"`
	Region            regions.Region     `json:"region"`
	CreatedAt         time.Time          `json:"createdAt"`
	ShipmentDocuments []ShipmentDocument `json:"shipmentDocuments"`
	LogisticBills     []LogisticBill     `json:"logisticBills"`
}

// ShipmentDocument is a classified mandatory-track document attached to an invoice.
// FilePath is the blob storage key and is exclusively owned by this invoice.
type ShipmentDocument struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	FileSize   int64     `json:"fileSize"`
	PageCount  *int      `json:"pageCount,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// LogisticBill is a free-form labeled document attached to an invoice.
type LogisticBill struct {
	ID           string    `json:"id"`
	DocumentName string    `json:"documentName"`
	FileName     string    `json:"fileName"`
	FilePath     string    `json:"filePath"`
	FileSize     int64     `json:"fileSize"`
	PageCount    *int      `json:"pageCount,omitempty"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// CreateCommand carries the data needed to create a new invoice.
// ID is an optional client-supplied hint; a UUID is generated when blank.
type CreateCommand struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	Region        string `json:"region"`
}

// UploadCommand carries the data needed to upload and attach a document.
// Classification "logistic" targets the logistic bill list; any other value
// targets the shipment document list and is stored verbatim as the type.
// PageCount is optional and may be extracted by the caller for PDF files.
type UploadCommand struct {
	InvoiceID      string
	Region         string
	Classification string
	DocumentName   string
	Data           []byte
	FileName       string
	ContentType    string
	PageCount      *int
}

// BlobFailure records one failed blob deletion during invoice removal.
type BlobFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// DeleteResult reports the outcome of an invoice deletion. Failures lists
// blobs that could not be removed; the metadata record is gone regardless.
type DeleteResult struct {
	InvoiceID    string        `json:"invoiceId"`
	BlobsDeleted int           `json:"blobsDeleted"`
	Failures     []BlobFailure `json:"failures,omitempty"`
}
