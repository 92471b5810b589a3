package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
)

type MaintenanceHandler struct {
	maintenance service.MaintenanceService
}

func NewMaintenanceHandler(maintenance service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

func (h *MaintenanceHandler) Register(r *mux.Router) {
	r.HandleFunc("/maintenance", requirePermission(security.PermMaintenanceRead, h.List)).Methods("GET")
	r.HandleFunc("/maintenance", requirePermission(security.PermMaintenanceWrite, h.Create)).Methods("POST")
	r.HandleFunc("/maintenance/{id}", requirePermission(security.PermMaintenanceRead, h.Get)).Methods("GET")
	r.HandleFunc("/maintenance/{id}", requirePermission(security.PermMaintenanceWrite, h.Update)).Methods("PATCH")
	r.HandleFunc("/maintenance/{id}", requirePermission(security.PermMaintenanceWrite, h.Delete)).Methods("DELETE")
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.maintenance.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.maintenance.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var m domain.MaintenanceRecord
	if err := decode(r, &m); err != nil {
		writeError(w, err)
		return
	}
	if err := h.maintenance.Create(r.Context(), &m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.MaintenanceRecordPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	m, err := h.maintenance.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenance.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
