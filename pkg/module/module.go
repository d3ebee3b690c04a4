// Package module provides prefix-scoped HTTP modules with per-module middleware.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/boratech/exportdesk/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner router
// with its own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the module prefix from the request path and dispatches to the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, scopedRequest(req, m.prefix))
}

// Use adds middleware to the module's stack.
func (m *Module) Use(mw middleware.Middleware) {
	m.middleware.Use(mw)
}

// scopedRequest shallow-copies the request with the module prefix stripped
// from its path, leaving the original request untouched.
func scopedRequest(req *http.Request, prefix string) *http.Request {
	scoped := new(http.Request)
	*scoped = *req
	scoped.URL = new(url.URL)
	*scoped.URL = *req.URL

	path := req.URL.Path[len(prefix):]
	if path == "" {
		path = "/"
	}
	scoped.URL.Path = path
	scoped.URL.RawPath = ""

	return scoped
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
