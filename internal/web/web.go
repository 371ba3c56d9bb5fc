// Package web holds the browser-facing pages. The pages only render what the
// JSON API returns; they keep no state of their own.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type viewData struct {
	Token string
	Last4 string
}

func Index(w http.ResponseWriter) {
	render(w, http.StatusOK, "index.html", nil)
}

// View renders the OTP page for token. Only the last four digits of the
// phone number are shown before verification.
func View(w http.ResponseWriter, token, last4 string) {
	render(w, http.StatusOK, "view.html", viewData{Token: token, Last4: last4})
}

func Error(w http.ResponseWriter, status int, msg string) {
	render(w, status, "error.html", msg)
}

// Static serves style.css, script.js and receipt.html.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}

func render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render page", "page", name, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
