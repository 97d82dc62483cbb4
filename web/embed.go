// Package web embeds the interview page and serves it.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed all:dist
var distFS embed.FS

// page serves the embedded files. Client routes without a file extension get
// index.html; a missing asset is a 404 so a broken build fails loudly instead
// of rendering the page in place of a script.
type page struct {
	files  fs.FS
	assets http.Handler
	index  []byte
}

// Handler returns an http.Handler for the embedded page.
func Handler() http.Handler {
	files, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("web: dist missing from embed: " + err.Error())
	}
	index, err := fs.ReadFile(files, "index.html")
	if err != nil {
		panic("web: index.html missing from embed: " + err.Error())
	}
	return &page{files: files, assets: http.FileServerFS(files), index: index}
}

func (p *page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" && name != "index.html" {
		if _, err := fs.Stat(p.files, name); err == nil {
			p.assets.ServeHTTP(w, r)
			return
		}
		if path.Ext(name) != "" {
			http.NotFound(w, r)
			return
		}
	}

	// Always revalidate so a restarted server never serves an old page.
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(p.index)
	}
}
