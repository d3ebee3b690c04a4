package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Get creates a GET route for the given pattern.
func Get(pattern string, handler http.HandlerFunc) Route {
	return Route{Method: http.MethodGet, Pattern: pattern, Handler: handler}
}

// Post creates a POST route for the given pattern.
func Post(pattern string, handler http.HandlerFunc) Route {
	return Route{Method: http.MethodPost, Pattern: pattern, Handler: handler}
}

// Delete creates a DELETE route for the given pattern.
func Delete(pattern string, handler http.HandlerFunc) Route {
	return Route{Method: http.MethodDelete, Pattern: pattern, Handler: handler}
}
