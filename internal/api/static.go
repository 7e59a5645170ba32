// Milkbar - Restaurant Loyalty and Reservation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/milkbar

package api

import (
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/milkbar/web"
)

// staticHandler serves the embedded frontend with SPA fallback.
type staticHandler struct {
	files   fs.FS
	fileSrv http.Handler
}

func newStaticHandler() *staticHandler {
	return &staticHandler{
		files:   web.Files,
		fileSrv: http.FileServer(http.FS(web.Files)),
	}
}

// cacheControl picks a Cache-Control value by file type. HTML and the
// manifest stay short-lived so UI updates reach kiosks quickly.
func cacheControl(path string) string {
	switch {
	case strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".css"):
		return "public, max-age=31536000, immutable"
	case strings.HasSuffix(path, ".png") || strings.HasSuffix(path, ".svg") || strings.HasSuffix(path, ".webp"):
		return "public, max-age=604800"
	default:
		return "public, max-age=300"
	}
}

// ServeHTTP serves a static file when one exists and index.html for
// every other path, so client-side routes survive a page reload.
// The service worker must never be cached by the HTTP layer or stale
// workers stick around past deploys.
func (s *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/index.html" {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
		return
	}

	switch path {
	case "/admin":
		path = "/admin.html"
	case "/app":
		path = "/app.html"
	case "/":
		path = "/index.html"
	}

	if path == "/sw.js" {
		w.Header().Set("Cache-Control", "no-cache")
	} else {
		w.Header().Set("Cache-Control", cacheControl(path))
	}

	name := strings.TrimPrefix(path, "/")
	if f, err := s.files.Open(name); err == nil {
		f.Close()
		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = path
		s.fileSrv.ServeHTTP(w, r2)
		return
	}

	s.serveIndex(w, r)
}

func (s *staticHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	data, err := fs.ReadFile(s.files, "index.html")
	if err != nil {
		http.Error(w, "frontend assets missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
