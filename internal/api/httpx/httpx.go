package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
)

type APIError struct {
	Error        string `json:"error"`
	Code         string `json:"code,omitempty"`
	AttemptsLeft *int   `json:"attemptsLeft,omitempty"`
	Details      any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, msg string, details any) {
	WriteJSON(w, r, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// DecodeJSON reads a JSON body into v. An empty body leaves v untouched so
// handlers report missing fields rather than a decode failure.
func DecodeJSON(r *http.Request, v any) error {
	err := render.DecodeJSON(r.Body, v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
