// Package middleware provides an ordered HTTP middleware stack and common middleware.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware = func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware.
type System interface {
	Use(mw Middleware)
	Apply(handler http.Handler) http.Handler
}

type chain struct {
	stack []Middleware
}

// New creates an empty middleware System.
func New() System {
	return &chain{}
}

func (c *chain) Use(mw Middleware) {
	c.stack = append(c.stack, mw)
}

// Apply wraps the handler so the first middleware added runs outermost.
func (c *chain) Apply(handler http.Handler) http.Handler {
	for i := len(c.stack) - 1; i >= 0; i-- {
		handler = c.stack[i](handler)
	}
	return handler
}
