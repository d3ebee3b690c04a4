package api

import (
	"github.com/boratech/exportdesk/internal/config"
	"github.com/boratech/exportdesk/internal/invoices"
	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/openapi"
)

func regionEnum() []any {
	values := make([]any, 0, len(regions.All))
	for _, region := range regions.All {
		values = append(values, string(region))
	}
	return values
}

func documentTypeEnum() []any {
	values := make([]any, 0, len(invoices.MandatoryTypes))
	for _, t := range invoices.MandatoryTypes {
		values = append(values, string(t))
	}
	return values
}

func regionParam() *openapi.Parameter {
	p := openapi.PathParam("region", "Region whose isolated store handles the request")
	p.Schema.Enum = regionEnum()
	return p
}

func documentSchema(description string) *openapi.Schema {
	return &openapi.Schema{
		Type:        "object",
		Description: description,
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string"},
			"fileName":   {Type: "string"},
			"filePath":   {Type: "string", Description: "Storage key of the uploaded blob"},
			"fileSize":   {Type: "integer", Format: "int64"},
			"pageCount":  {Type: "integer", Description: "PDF page count, absent for other formats"},
			"uploadedAt": {Type: "string", Format: "date-time"},
		},
	}
}

func buildSchemas() map[string]*openapi.Schema {
	shipmentDocument := documentSchema("Mandatory shipment document attached to an invoice")
	shipmentDocument.Properties["type"] = &openapi.Schema{
		Type: "string",
		Enum: documentTypeEnum(),
	}

	logisticBill := documentSchema("Open-ended logistic bill attached to an invoice")
	logisticBill.Properties["documentName"] = &openapi.Schema{
		Type:        "string",
		Description: "Caller-supplied bill classification",
	}

	return map[string]*openapi.Schema{
		"Invoice": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string"},
				"invoiceNumber":     {Type: "string"},
				"region":            {Type: "string", Enum: regionEnum()},
				"createdAt":         {Type: "string", Format: "date-time"},
				"shipmentDocuments": {Type: "array", Items: openapi.SchemaRef("ShipmentDocument")},
				"logisticBills":     {Type: "array", Items: openapi.SchemaRef("LogisticBill")},
			},
		},
		"ShipmentDocument": shipmentDocument,
		"LogisticBill":     logisticBill,
		"CreateInvoice": {
			Type:     "object",
			Required: []string{"invoiceNumber", "region"},
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Description: "Optional client-supplied identifier"},
				"invoiceNumber": {Type: "string"},
				"region":        {Type: "string", Enum: regionEnum()},
			},
		},
		"SearchInvoices": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":          {Type: "integer", Example: 1},
				"page_size":     {Type: "integer", Example: 20},
				"search":        {Type: "string"},
				"sort":          {Type: "string"},
				"invoiceNumber": {Type: "string", Description: "Substring filter on invoice number"},
			},
		},
		"InvoicePage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Invoice")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"Notification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"invoiceId":    {Type: "string"},
				"documentType": {Type: "string", Enum: documentTypeEnum()},
				"message":      {Type: "string", Example: "Packing List not uploaded"},
				"kind":         {Type: "string", Enum: []any{"missing_document"}},
			},
		},
		"DeleteResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message":      {Type: "string"},
				"blobsDeleted": {Type: "integer"},
				"failures": {
					Type:        "array",
					Description: "Blobs that could not be deleted; metadata is removed regardless",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"key":   {Type: "string"},
							"error": {Type: "string"},
						},
					},
				},
			},
		},
		"ViewURL": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"url": {Type: "string", Description: "Time-limited signed URL for the blob"},
			},
		},
		"LoginRequest": {
			Type:     "object",
			Required: []string{"email", "password", "region"},
			Properties: map[string]*openapi.Schema{
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string", Format: "password"},
				"region":   {Type: "string", Enum: regionEnum()},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"token":     {Type: "string", Description: "Bearer token scoped to the region"},
				"region":    {Type: "string", Enum: regionEnum()},
				"email":     {Type: "string"},
				"expiresAt": {Type: "string", Format: "date-time"},
			},
		},
	}
}

func buildPaths() map[string]*openapi.PathItem {
	uploadSchema := &openapi.Schema{
		Type:     "object",
		Required: []string{"invoiceId", "region", "type", "file"},
		Properties: map[string]*openapi.Schema{
			"invoiceId":    {Type: "string"},
			"region":       {Type: "string", Enum: regionEnum()},
			"type":         {Type: "string", Description: "Shipment document type or 'logistic'"},
			"documentName": {Type: "string", Description: "Bill classification, required for logistic uploads"},
			"file":         {Type: "string", Format: "binary"},
		},
	}

	return map[string]*openapi.PathItem{
		"/auth/login": {
			Post: &openapi.Operation{
				Summary:     "Authenticate against a region",
				Tags:        []string{"auth"},
				RequestBody: openapi.RequestBodyJSON("LoginRequest", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Session with signed token", "Session"),
					400: openapi.ResponseRef("BadRequest"),
					401: openapi.ResponseRef("Unauthorized"),
				},
			},
		},
		"/invoices": {
			Post: &openapi.Operation{
				Summary:     "Create an invoice",
				Tags:        []string{"invoices"},
				RequestBody: openapi.RequestBodyJSON("CreateInvoice", true),
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Created invoice", "Invoice"),
					400: openapi.ResponseRef("BadRequest"),
					409: openapi.ResponseRef("Conflict"),
				},
			},
		},
		"/invoices/{region}": {
			Get: &openapi.Operation{
				Summary:    "List invoices in a region, newest first",
				Tags:       []string{"invoices"},
				Parameters: []*openapi.Parameter{regionParam()},
				Responses: map[int]*openapi.Response{
					200: {
						Description: "All invoices in the region",
						Content: map[string]*openapi.MediaType{
							"application/json": {
								Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Invoice")},
							},
						},
					},
					400: openapi.ResponseRef("BadRequest"),
				},
			},
		},
		"/invoices/{region}/search": {
			Post: &openapi.Operation{
				Summary:     "Search invoices with pagination and filters",
				Tags:        []string{"invoices"},
				Parameters:  []*openapi.Parameter{regionParam()},
				RequestBody: openapi.RequestBodyJSON("SearchInvoices", false),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Page of matching invoices", "InvoicePage"),
					400: openapi.ResponseRef("BadRequest"),
				},
			},
		},
		"/invoices/{region}/{id}": {
			Get: &openapi.Operation{
				Summary:    "Fetch a single invoice",
				Tags:       []string{"invoices"},
				Parameters: []*openapi.Parameter{regionParam(), openapi.PathParam("id", "Invoice identifier")},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("The invoice", "Invoice"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
			Delete: &openapi.Operation{
				Summary:    "Delete an invoice and its stored files",
				Tags:       []string{"invoices"},
				Parameters: []*openapi.Parameter{regionParam(), openapi.PathParam("id", "Invoice identifier")},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Deletion outcome", "DeleteResult"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/invoices/{region}/{id}/notifications": {
			Get: &openapi.Operation{
				Summary:    "List missing-document notifications for an invoice",
				Tags:       []string{"invoices"},
				Parameters: []*openapi.Parameter{regionParam(), openapi.PathParam("id", "Invoice identifier")},
				Responses: map[int]*openapi.Response{
					200: {
						Description: "Notifications in document enumeration order",
						Content: map[string]*openapi.MediaType{
							"application/json": {
								Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Notification")},
							},
						},
					},
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/documents/upload": {
			Post: &openapi.Operation{
				Summary:     "Upload a document to an invoice",
				Tags:        []string{"documents"},
				RequestBody: openapi.RequestBodyMultipart(uploadSchema, true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Invoice with the new document appended", "Invoice"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
					413: openapi.ResponseRef("PayloadTooLarge"),
				},
			},
		},
		"/documents/view/{key}": {
			Get: &openapi.Operation{
				Summary: "Issue a signed viewing URL for a stored document",
				Tags:    []string{"documents"},
				Parameters: []*openapi.Parameter{
					openapi.PathParam("key", "Full storage key of the document"),
					openapi.QueryParam("region", "string", "Region owning the document", true),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Signed URL valid for a limited time", "ViewURL"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
	}
}

func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(buildSchemas())
	spec.Paths = buildPaths()

	return spec.JSON()
}
