// Package web serves a built single-page-application bundle from disk.
package web

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves static files from distDir, falling back to index.html
// for paths that do not match a file so client-side routing keeps working.
type SPAHandler struct {
	distDir string
	files   http.Handler
}

// NewSPAHandler creates a handler rooted at distDir.
func NewSPAHandler(distDir string) *SPAHandler {
	return &SPAHandler{
		distDir: distDir,
		files:   http.FileServer(http.Dir(distDir)),
	}
}

// Available reports whether the dist directory exists and can be served.
func Available(distDir string) bool {
	if distDir == "" {
		return false
	}
	info, err := os.Stat(distDir)
	return err == nil && info.IsDir()
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.distDir, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		if !strings.HasPrefix(r.URL.Path, "/") || filepath.Ext(r.URL.Path) != "" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(h.distDir, "index.html"))
		return
	}

	h.files.ServeHTTP(w, r)
}
