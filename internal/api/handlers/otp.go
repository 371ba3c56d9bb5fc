package handlers

import (
	"net/http"

	"github.com/baharkarakas/ereceipt-backend/internal/api/httpx"
	"github.com/baharkarakas/ereceipt-backend/internal/services"
)

type OtpHandler struct {
	Svc *services.OtpService
}

func NewOtpHandler(svc *services.OtpService) *OtpHandler {
	return &OtpHandler{Svc: svc}
}

type otpSendReq struct {
	Token string `json:"token"`
}

type otpSendResp struct {
	OtpDemo string `json:"otpDemo"`
}

func (h *OtpHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req otpSendReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "bad_request", msgBadBody, nil)
		return
	}
	out, err := h.Svc.Send(r.Context(), req.Token)
	if err != nil {
		writeAPIError(w, r, err, msgMissingToken)
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, otpSendResp{OtpDemo: out})
}

type otpVerifyReq struct {
	Token string `json:"token"`
	Code  string `json:"code"`
}

func (h *OtpHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, http.StatusBadRequest, "bad_request", msgBadBody, nil)
		return
	}
	res, err := h.Svc.Verify(r.Context(), req.Token, req.Code)
	if err != nil {
		writeAPIError(w, r, err, msgMissingFields)
		return
	}
	httpx.WriteJSON(w, r, http.StatusOK, res)
}
