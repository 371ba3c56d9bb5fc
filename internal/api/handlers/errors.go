package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/ereceipt-backend/internal/api/httpx"
	"github.com/baharkarakas/ereceipt-backend/internal/api/validate"
	"github.com/baharkarakas/ereceipt-backend/internal/middleware"
	"github.com/baharkarakas/ereceipt-backend/internal/services"
	"github.com/baharkarakas/ereceipt-backend/internal/web"
)

const (
	msgMissingFields = "Missing fields"
	msgMissingToken  = "Missing token"
	msgInvalidToken  = "Invalid token"
	msgBadBody       = "Invalid request body"
)

// writeAPIError maps service errors onto the JSON error body. missing is the
// message used for ErrValidation, which differs per endpoint.
func writeAPIError(w http.ResponseWriter, r *http.Request, err error, missing string) {
	var invalid *services.InvalidCodeError
	switch {
	case errors.As(err, &invalid):
		left := invalid.AttemptsLeft
		httpx.WriteJSON(w, r, http.StatusBadRequest, httpx.APIError{
			Error:        "Invalid code",
			Code:         "invalid_code",
			AttemptsLeft: &left,
		})
	case errors.Is(err, services.ErrValidation):
		var details any
		var errs validate.Errs
		if errors.As(err, &errs) {
			details = errs
			if !errs.OnlyMissing() {
				missing = "Invalid fields"
			}
		}
		httpx.WriteError(w, r, http.StatusBadRequest, "validation_error", missing, details)
	case errors.Is(err, services.ErrInvalidToken):
		httpx.WriteError(w, r, http.StatusBadRequest, "invalid_token", msgInvalidToken, nil)
	case errors.Is(err, services.ErrNotIssued):
		httpx.WriteError(w, r, http.StatusBadRequest, "otp_not_issued", "OTP not issued", nil)
	case errors.Is(err, services.ErrOtpExpired):
		httpx.WriteError(w, r, http.StatusBadRequest, "otp_expired", "OTP expired", nil)
	case errors.Is(err, services.ErrAttemptsExhausted):
		httpx.WriteError(w, r, http.StatusBadRequest, "attempts_exhausted", "Too many attempts", nil)
	case errors.Is(err, services.ErrExpired):
		httpx.WriteError(w, r, http.StatusBadRequest, "expired", "Link expired", nil)
	case errors.Is(err, services.ErrUsageExceeded):
		httpx.WriteError(w, r, http.StatusBadRequest, "usage_exceeded", "Usage limit exceeded", nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.WriteError(w, r, http.StatusNotFound, "not_found", "Not found", nil)
	default:
		slog.ErrorContext(r.Context(), "request failed", "err", err, "request_id", middleware.RequestIDFrom(r.Context()))
		httpx.WriteError(w, r, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

// writePageError is the browser-facing counterpart of writeAPIError.
func writePageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		web.Error(w, http.StatusBadRequest, msgMissingToken)
	case errors.Is(err, services.ErrInvalidToken):
		web.Error(w, http.StatusNotFound, "Invalid or unknown token")
	case errors.Is(err, services.ErrNotFound):
		web.Error(w, http.StatusNotFound, "Invalid or unknown link code.")
	case errors.Is(err, services.ErrExpired):
		web.Error(w, http.StatusGone, "This link has expired.")
	case errors.Is(err, services.ErrUsageExceeded):
		web.Error(w, http.StatusGone, "Maximum number of allowed views has been reached.")
	default:
		slog.ErrorContext(r.Context(), "page failed", "err", err, "request_id", middleware.RequestIDFrom(r.Context()))
		web.Error(w, http.StatusInternalServerError, "Something went wrong.")
	}
}
