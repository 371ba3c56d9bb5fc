package handlers

import (
	"net/http"

	"github.com/baharkarakas/ereceipt-backend/internal/api/httpx"
)

func Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
