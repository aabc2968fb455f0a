package handler

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheet and scripts. Directory
// listings are not served.
type StaticHandler struct {
	files http.Handler
	root  fs.FS
}

func NewStaticHandler() *StaticHandler {
	root, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return &StaticHandler{
		files: http.FileServer(http.FS(root)),
		root:  root,
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Get the wildcard path from Chi router context
	path := chi.URLParam(r, "*")
	if path == "" || strings.HasSuffix(path, "/") {
		http.NotFound(w, r)
		return
	}

	info, err := fs.Stat(h.root, path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	r2 := r.Clone(r.Context())
	r2.URL.Path = "/" + path
	h.files.ServeHTTP(w, r2)
}
