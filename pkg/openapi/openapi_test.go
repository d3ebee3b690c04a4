package openapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boratech/exportdesk/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Test API" {
		t.Errorf("title: got %s, want Test API", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("version: got %s, want 1.0.0", spec.Info.Version)
	}
	if spec.Components == nil {
		t.Fatal("components should not be nil")
	}
	if spec.Paths == nil {
		t.Fatal("paths should not be nil")
	}
}

func TestAddServer(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.AddServer("/api")

	if len(spec.Servers) != 1 {
		t.Fatalf("servers: got %d, want 1", len(spec.Servers))
	}
	if spec.Servers[0].URL != "/api" {
		t.Errorf("server url: got %s", spec.Servers[0].URL)
	}
}

func TestSchemaRef(t *testing.T) {
	ref := openapi.SchemaRef("Invoice")
	expected := "#/components/schemas/Invoice"

	if ref.Ref != expected {
		t.Errorf("ref: got %s, want %s", ref.Ref, expected)
	}
}

func TestResponseRef(t *testing.T) {
	ref := openapi.ResponseRef("NotFound")
	expected := "#/components/responses/NotFound"

	if ref.Ref != expected {
		t.Errorf("ref: got %s, want %s", ref.Ref, expected)
	}
}

func TestRequestBodyJSON(t *testing.T) {
	rb := openapi.RequestBodyJSON("CreateInvoice", true)

	if !rb.Required {
		t.Error("required should be true")
	}
	ct, ok := rb.Content["application/json"]
	if !ok {
		t.Fatal("missing application/json content type")
	}
	if ct.Schema.Ref != "#/components/schemas/CreateInvoice" {
		t.Errorf("schema ref: got %s", ct.Schema.Ref)
	}
}

func TestRequestBodyMultipart(t *testing.T) {
	schema := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"file": {Type: "string", Format: "binary"},
		},
	}
	rb := openapi.RequestBodyMultipart(schema, true)

	if !rb.Required {
		t.Error("required should be true")
	}
	ct, ok := rb.Content["multipart/form-data"]
	if !ok {
		t.Fatal("missing multipart/form-data content type")
	}
	if ct.Schema.Properties["file"].Format != "binary" {
		t.Errorf("file format: got %s", ct.Schema.Properties["file"].Format)
	}
}

func TestPathParam(t *testing.T) {
	p := openapi.PathParam("id", "Invoice identifier")

	if p.Name != "id" {
		t.Errorf("name: got %s", p.Name)
	}
	if p.In != "path" {
		t.Errorf("in: got %s", p.In)
	}
	if !p.Required {
		t.Error("path params should be required")
	}
	if p.Schema.Type != "string" {
		t.Errorf("schema type: got %s", p.Schema.Type)
	}
}

func TestQueryParam(t *testing.T) {
	p := openapi.QueryParam("region", "string", "Region identifier", true)

	if p.Name != "region" {
		t.Errorf("name: got %s", p.Name)
	}
	if p.In != "query" {
		t.Errorf("in: got %s", p.In)
	}
	if !p.Required {
		t.Error("should be required")
	}
	if p.Schema.Type != "string" {
		t.Errorf("schema type: got %s", p.Schema.Type)
	}
}

func TestNewComponentsDefaults(t *testing.T) {
	c := openapi.NewComponents()

	if _, ok := c.Schemas["PageRequest"]; !ok {
		t.Error("missing default schema: PageRequest")
	}

	responses := []string{"BadRequest", "Unauthorized", "NotFound", "Conflict", "PayloadTooLarge"}
	for _, name := range responses {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("missing default response: %s", name)
		}
	}
}

func TestAddSchemas(t *testing.T) {
	c := openapi.NewComponents()
	c.AddSchemas(map[string]*openapi.Schema{
		"Invoice": {Type: "object"},
	})

	if _, ok := c.Schemas["Invoice"]; !ok {
		t.Error("Invoice schema not added")
	}
	if _, ok := c.Schemas["PageRequest"]; !ok {
		t.Error("default PageRequest schema should still exist")
	}
}

func TestSpecJSON(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	data, err := spec.JSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if parsed["openapi"] != "3.1.0" {
		t.Errorf("openapi: got %v", parsed["openapi"])
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	data, _ := spec.JSON()

	handler := openapi.ServeSpec(data)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/openapi.json", nil)

	handler(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}

	body, _ := io.ReadAll(res.Body)
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("body unmarshal failed: %v", err)
	}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "ExportDesk API" {
		t.Errorf("title: got %s, want ExportDesk API", cfg.Title)
	}
	if cfg.Description == "" {
		t.Error("description should default to a non-empty value")
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Custom API")
	t.Setenv("TEST_OPENAPI_DESC", "Custom description")

	env := &openapi.ConfigEnv{
		Title:       "TEST_OPENAPI_TITLE",
		Description: "TEST_OPENAPI_DESC",
	}

	cfg := openapi.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Title != "Custom API" {
		t.Errorf("title: got %s, want Custom API", cfg.Title)
	}
	if cfg.Description != "Custom description" {
		t.Errorf("description: got %s", cfg.Description)
	}
}

func TestConfigMerge(t *testing.T) {
	base := openapi.Config{Title: "Base", Description: "Base description"}
	overlay := openapi.Config{Title: "Overlay"}
	base.Merge(&overlay)

	if base.Title != "Overlay" {
		t.Errorf("title: got %s, want Overlay", base.Title)
	}
	if base.Description != "Base description" {
		t.Errorf("description: got %s, want base preserved", base.Description)
	}
}
