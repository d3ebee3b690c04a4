package invoices

// NotificationKind categorizes derived invoice notifications.
type NotificationKind string

// KindMissingDocument flags a mandatory shipment document type with no upload.
const KindMissingDocument NotificationKind = "missing_document"

// Notification reports one missing mandatory document for an invoice.
// Notifications are derived on every read and never persisted.
type Notification struct {
	InvoiceID    string           `json:"invoiceId"`
	DocumentType DocumentType     `json:"documentType"`
	Message      string           `json:"message"`
	Kind         NotificationKind `json:"kind"`
}

// MissingDocuments derives the notifications for an invoice: one entry per
// mandatory document type absent from its shipment documents, emitted in
// the fixed enumeration order. Duplicate uploads of a type count once.
func MissingDocuments(inv *Invoice) []Notification {
	present := make(map[DocumentType]bool, len(inv.ShipmentDocuments))
	for _, doc := range inv.ShipmentDocuments {
		present[DocumentType(doc.Type)] = true
	}

	notifications := make([]Notification, 0, len(MandatoryTypes))
	for _, t := range MandatoryTypes {
		if present[t] {
			continue
		}
		notifications = append(notifications, Notification{
			InvoiceID:    inv.ID,
			DocumentType: t,
			Message:      t.Label() + " not uploaded",
			Kind:         KindMissingDocument,
		})
	}

	return notifications
}

// IsComplete reports whether every mandatory document type is present.
func IsComplete(inv *Invoice) bool {
	return len(MissingDocuments(inv)) == 0
}
