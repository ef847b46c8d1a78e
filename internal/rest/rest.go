package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse carries the full list of validation failures for a
// rejected event payload.
type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// FrontendHandler serves a built single-page frontend from a directory,
// falling back to the index document for client-side routes.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := strings.TrimPrefix(filepath.Clean(r.URL.Path), "/")
	path := filepath.Join(h.dir, requested)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		path = filepath.Join(h.dir, h.index)
	}
	http.ServeFile(w, r, path)
}
