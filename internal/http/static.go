package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// StaticHandler serves the client bundle for every unmatched path: the file
// itself when it exists, else the bundle's index.html so client-side routes
// resolve, else fallback. Paths with a file extension that match no file
// are 404s and never reach index.html or fallback.
type StaticHandler struct {
	dir      string
	fallback http.Handler
}

func NewStaticHandler(dir string, fallback http.Handler) *StaticHandler {
	return &StaticHandler{dir: dir, fallback: fallback}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)

	if h.dir != "" {
		name := filepath.Join(h.dir, filepath.FromSlash(clean))
		if isFile(name) {
			http.ServeFile(w, r, name)
			return
		}
	}

	if path.Ext(clean) != "" {
		http.NotFound(w, r)
		return
	}

	if h.dir != "" {
		index := filepath.Join(h.dir, "index.html")
		if isFile(index) {
			http.ServeFile(w, r, index)
			return
		}
	}

	h.fallback.ServeHTTP(w, r)
}

// MapRedirect sends client routes to the map page, keeping the query.
func MapRedirect() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := "/map"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
	})
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
