package invoices

// ClassificationLogistic routes an upload to the logistic bill list.
// Every other classification value targets the shipment document list.
const ClassificationLogistic = "logistic"

// DocumentType classifies a shipment document.
type DocumentType string

// The six mandatory shipment document types. An invoice is complete once
// every one of them is present at least once.
const (
	TypeExportInvoice    DocumentType = "export_invoice"
	TypePackingList      DocumentType = "packing_list"
	TypeShippingBill     DocumentType = "shipping_bill"
	TypeFinalChecklist   DocumentType = "final_checklist"
	TypeSerialNumberList DocumentType = "serial_number_list"
	TypeAWBSeawayBill    DocumentType = "awb_seaway_bill"
)

// MandatoryTypes lists the mandatory shipment document types in their fixed
// enumeration order. Notification ordering follows this slice, not upload order.
var MandatoryTypes = []DocumentType{
	TypeExportInvoice,
	TypePackingList,
	TypeShippingBill,
	TypeFinalChecklist,
	TypeSerialNumberList,
	TypeAWBSeawayBill,
}

var labels = map[DocumentType]string{
	TypeExportInvoice:    "Export Invoice",
	TypePackingList:      "Packing List",
	TypeShippingBill:     "Shipping Bill",
	TypeFinalChecklist:   "Final Checklist",
	TypeSerialNumberList: "Serial Number List",
	TypeAWBSeawayBill:    "AWB / Seaway Bill",
}

// Label returns the display label for a document type, or the raw value
// for types outside the mandatory set.
func (t DocumentType) Label() string {
	if label, ok := labels[t]; ok {
		return label
	}
	return string(t)
}
