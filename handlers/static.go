package handlers

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

func (h handlers) registerStatic(static fs.FS) {
	h.handler.PathPrefix("/static/").Handler(http.StripPrefix("/static/",
		cacheStatic(http.FileServer(http.FS(static)))))
}

const staticMaxAge = 7 * 24 * time.Hour

var cacheSince = time.Now().UTC().Format(http.TimeFormat)

// cacheStatic lets browsers keep assets for a week and hides directory listings.
func cacheStatic(next http.Handler) http.Handler {
	cacheControl := fmt.Sprintf("public, max-age=%d", int(staticMaxAge.Seconds()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Last-Modified", cacheSince)
		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("Expires", time.Now().Add(staticMaxAge).UTC().Format(http.TimeFormat))
		next.ServeHTTP(w, r)
	})
}
