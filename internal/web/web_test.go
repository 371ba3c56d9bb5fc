package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewEscapesInput(t *testing.T) {
	rec := httptest.NewRecorder()
	View(rec, `tok"><script>`, "4567")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<strong>4567</strong>")
	assert.NotContains(t, body, `tok"><script>`)
}

func TestErrorPage(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusGone, "This link has expired.")

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Contains(t, rec.Body.String(), "This link has expired.")
}

func TestIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	Index(rec)
	assert.Contains(t, rec.Body.String(), `id="btnIssue"`)
	assert.Contains(t, rec.Body.String(), `href="/style.css"`)
}

func TestStatic(t *testing.T) {
	h := Static()
	for path, ctype := range map[string]string{
		"/style.css":    "text/css",
		"/script.js":    "javascript",
		"/receipt.html": "text/html",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Header().Get("Content-Type"), ctype, path)
	}
}
