package ui

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes c with status 200.
func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	RenderStatus(w, r, http.StatusOK, c)
}

// RenderStatus renders c into memory before touching w, so a template error
// becomes a clean 500 instead of half a page. A second call on the same
// response only appends its body.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("render write aborted", "error", err, "path", r.URL.Path)
	}
}

// RenderOOB appends c wrapped in an hx-swap-oob element so HTMX places it at
// target regardless of the request's own hx-target.
func RenderOOB(w http.ResponseWriter, r *http.Request, c templ.Component, target string) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<div hx-swap-oob="%s">`, target)
	if err := c.Render(r.Context(), &buf); err != nil {
		slog.Error("render oob failed", "error", err, "path", r.URL.Path)
		return
	}
	buf.WriteString(`</div>`)

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("render oob write aborted", "error", err, "path", r.URL.Path)
	}
}

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
