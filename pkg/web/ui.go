package web

import (
	_ "embed"
	"net/http"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

//go:embed ui/index.html
var embeddedIndex []byte

// dashboard serves the operator's UI directory when one is
// configured, otherwise the built-in status page.
func (t api) dashboard() http.HandlerFunc {
	if t.config.UiDir != "" {
		return serveSPA(t.config.UiDir, "index.html")
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(embeddedIndex)
	}
}

func serveSPA(directory string, mainIndex string) http.HandlerFunc {
	mainIndexPath := filepath.Join(directory, mainIndex)

	return func(w http.ResponseWriter, r *http.Request) {
		// Disable caching
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		if r.URL.Path == "/" {
			http.ServeFile(w, r, mainIndexPath)
			return
		}

		filePath := filepath.Join(directory, filepath.Clean("/"+r.URL.Path))

		files, err := filepath.Glob(filePath)
		if err != nil {
			log.WithField("component", "ui").WithError(err).Warn("Error searching for UI file")
			http.ServeFile(w, r, mainIndexPath)
			return
		}

		// Can't find the requested file, serve index.
		if len(files) == 0 {
			http.ServeFile(w, r, mainIndexPath)
			return
		}

		// Otherwise, serve the requested file
		http.ServeFile(w, r, filePath)
	}
}
