package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/ereceipt-backend/internal/api/httpx"
	"github.com/baharkarakas/ereceipt-backend/internal/middleware"
	"github.com/baharkarakas/ereceipt-backend/internal/models"
	"github.com/baharkarakas/ereceipt-backend/internal/services"
	"github.com/baharkarakas/ereceipt-backend/internal/web"
)

type ReceiptHandler struct {
	Svc *services.ReceiptService
}

func NewReceiptHandler(svc *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{Svc: svc}
}

type issueReq struct {
	TxnID    string               `json:"txnId"`
	Msisdn   string               `json:"msisdn"`
	Amount   decimal.Decimal      `json:"amount"`
	Currency string               `json:"currency"`
	Items    []models.ReceiptItem `json:"items"`
}

// Issue handles POST /tcrm/issue from the agent page.
func (h *ReceiptHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "bad_request", msgBadBody, nil)
		return
	}
	res, err := h.Svc.Issue(r.Context(), services.IssueInput{
		TxnID:    req.TxnID,
		Msisdn:   req.Msisdn,
		Amount:   req.Amount,
		Currency: req.Currency,
		Items:    req.Items,
	})
	if err != nil {
		writeAPIError(w, r, err, msgMissingFields)
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, res)
}

// Get handles GET /api/receipt/{id}. A view session, when present, must be
// bound to the requested receipt.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if rid, ok := middleware.SessionReceipt(r.Context()); ok && rid != id {
		httpx.WriteError(w, r, http.StatusUnauthorized, "unauthorized", msgInvalidToken, nil)
		return
	}
	rc, err := h.Svc.Get(id)
	if err != nil {
		writeAPIError(w, r, err, msgMissingFields)
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, rc)
}

// Redirect handles GET /s/{code}.
func (h *ReceiptHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	long, err := h.Svc.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writePageError(w, r, err)
		return
	}
	http.Redirect(w, r, long, http.StatusFound)
}

// View handles GET /view?token=, the page the short link lands on.
func (h *ReceiptHandler) View(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	rc, err := h.Svc.ResolveView(token)
	if err != nil {
		writePageError(w, r, err)
		return
	}
	web.View(w, token, rc.MaskedMsisdn())
}
