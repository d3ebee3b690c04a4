package invoices_test

import (
	"testing"

	"github.com/boratech/exportdesk/internal/invoices"
	"github.com/boratech/exportdesk/internal/regions"
)

func invoiceWithTypes(types ...invoices.DocumentType) *invoices.Invoice {
	inv := &invoices.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "EXP-2024-001",
		Region:        regions.Russia,
	}
	for _, t := range types {
		inv.ShipmentDocuments = append(inv.ShipmentDocuments, invoices.ShipmentDocument{
			ID:   "doc-" + string(t),
			Type: string(t),
		})
	}
	return inv
}

func TestMissingDocumentsEmptyInvoice(t *testing.T) {
	notifications := invoices.MissingDocuments(invoiceWithTypes())

	if len(notifications) != len(invoices.MandatoryTypes) {
		t.Fatalf("got %d notifications, want %d", len(notifications), len(invoices.MandatoryTypes))
	}

	for i, n := range notifications {
		if n.DocumentType != invoices.MandatoryTypes[i] {
			t.Errorf("notification %d type = %s, want %s", i, n.DocumentType, invoices.MandatoryTypes[i])
		}
		if n.InvoiceID != "inv-1" {
			t.Errorf("notification %d invoice = %s, want inv-1", i, n.InvoiceID)
		}
		if n.Kind != invoices.KindMissingDocument {
			t.Errorf("notification %d kind = %s, want %s", i, n.Kind, invoices.KindMissingDocument)
		}
	}
}

func TestMissingDocumentsMessages(t *testing.T) {
	notifications := invoices.MissingDocuments(invoiceWithTypes())

	want := []string{
		"Export Invoice not uploaded",
		"Packing List not uploaded",
		"Shipping Bill not uploaded",
		"Final Checklist not uploaded",
		"Serial Number List not uploaded",
		"AWB / Seaway Bill not uploaded",
	}

	for i, n := range notifications {
		if n.Message != want[i] {
			t.Errorf("message %d = %q, want %q", i, n.Message, want[i])
		}
	}
}

func TestMissingDocumentsPartialUpload(t *testing.T) {
	inv := invoiceWithTypes(invoices.TypePackingList, invoices.TypeAWBSeawayBill)
	notifications := invoices.MissingDocuments(inv)

	want := []invoices.DocumentType{
		invoices.TypeExportInvoice,
		invoices.TypeShippingBill,
		invoices.TypeFinalChecklist,
		invoices.TypeSerialNumberList,
	}

	if len(notifications) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(notifications), len(want))
	}
	for i, n := range notifications {
		if n.DocumentType != want[i] {
			t.Errorf("notification %d type = %s, want %s", i, n.DocumentType, want[i])
		}
	}
}

func TestMissingDocumentsEnumerationOrderNotUploadOrder(t *testing.T) {
	// Upload order reversed relative to enumeration order; the remaining gaps
	// must still report in enumeration order.
	inv := invoiceWithTypes(invoices.TypeAWBSeawayBill, invoices.TypeExportInvoice)
	notifications := invoices.MissingDocuments(inv)

	want := []invoices.DocumentType{
		invoices.TypePackingList,
		invoices.TypeShippingBill,
		invoices.TypeFinalChecklist,
		invoices.TypeSerialNumberList,
	}

	for i, n := range notifications {
		if n.DocumentType != want[i] {
			t.Errorf("notification %d type = %s, want %s", i, n.DocumentType, want[i])
		}
	}
}

func TestMissingDocumentsDuplicatesCountOnce(t *testing.T) {
	inv := invoiceWithTypes(
		invoices.TypeExportInvoice,
		invoices.TypeExportInvoice,
		invoices.TypeExportInvoice,
	)
	notifications := invoices.MissingDocuments(inv)

	if len(notifications) != 5 {
		t.Fatalf("got %d notifications, want 5", len(notifications))
	}
	for _, n := range notifications {
		if n.DocumentType == invoices.TypeExportInvoice {
			t.Errorf("export_invoice reported missing despite uploads")
		}
	}
}

func TestMissingDocumentsIgnoresLogisticBills(t *testing.T) {
	inv := invoiceWithTypes()
	inv.LogisticBills = []invoices.LogisticBill{
		{ID: "bill-1", DocumentName: "Freight Bill"},
	}

	if got := len(invoices.MissingDocuments(inv)); got != len(invoices.MandatoryTypes) {
		t.Errorf("got %d notifications, want %d", got, len(invoices.MandatoryTypes))
	}
}

func TestIsComplete(t *testing.T) {
	if invoices.IsComplete(invoiceWithTypes(invoices.MandatoryTypes[:5]...)) {
		t.Error("invoice with five of six types reported complete")
	}
	if !invoices.IsComplete(invoiceWithTypes(invoices.MandatoryTypes...)) {
		t.Error("invoice with all six types reported incomplete")
	}
}

func TestDocumentTypeLabel(t *testing.T) {
	if got := invoices.TypeAWBSeawayBill.Label(); got != "AWB / Seaway Bill" {
		t.Errorf("Label() = %q, want %q", got, "AWB / Seaway Bill")
	}
	if got := invoices.DocumentType("custom_type").Label(); got != "custom_type" {
		t.Errorf("Label() = %q, want raw value", got)
	}
}
