package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves files from dir. Paths that do not name an existing
// file get index.html so the frontend can route client-side.
func StaticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))

		info, err := os.Stat(filePath)
		if err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}
