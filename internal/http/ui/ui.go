package ui

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const uiURL = "/ui"

//go:embed static
var staticFS embed.FS

// Register serves the catalog browser page under /ui/.
func Register(r chi.Router) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	fileServer := http.StripPrefix(uiURL, http.FileServerFS(sub))

	r.Get(uiURL, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, uiURL+"/", http.StatusMovedPermanently)
	})
	r.Get(uiURL+"/*", fileServer.ServeHTTP)
}
