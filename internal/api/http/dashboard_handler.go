package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
)

type DashboardHandler struct {
	dashboard service.DashboardService
}

func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Register(r *mux.Router) {
	r.HandleFunc("/dashboard/summary", requirePermission(security.PermDashboardRead, h.Summary)).Methods("GET")
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
