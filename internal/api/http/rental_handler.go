package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/workflow"
)

type RentalHandler struct {
	rentals      service.RentalService
	orchestrator *workflow.Orchestrator
}

func NewRentalHandler(rentals service.RentalService, orchestrator *workflow.Orchestrator) *RentalHandler {
	return &RentalHandler{rentals: rentals, orchestrator: orchestrator}
}

func (h *RentalHandler) Register(r *mux.Router) {
	r.HandleFunc("/rentals", requirePermission(security.PermRentalsRead, h.List)).Methods("GET")
	r.HandleFunc("/rentals/{id}", requirePermission(security.PermRentalsRead, h.Get)).Methods("GET")
	r.HandleFunc("/rentals/{id}", requirePermission(security.PermRentalsWrite, h.Update)).Methods("PATCH")
	r.HandleFunc("/rentals/{id}", requirePermission(security.PermRentalsWrite, h.Delete)).Methods("DELETE")
	r.HandleFunc("/rentals/{id}/checkin", requirePermission(security.PermRentalsWrite, h.CheckIn)).Methods("POST")
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		rentals, err := h.rentals.ListByStatus(r.Context(), domain.RentalStatus(status))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rentals)
		return
	}

	rentals, err := h.rentals.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rental, err := h.rentals.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.RentalPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentals.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.rentals.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkInRequest struct {
	ReturnMileage     int    `json:"return_mileage"`
	CheckinEmployeeID string `json:"checkin_employee_id"`
}

func (h *RentalHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.CheckinEmployeeID == "" {
		if claims := claimsFrom(r); claims != nil {
			req.CheckinEmployeeID = claims.UserID
		}
	}

	rental, err := h.orchestrator.CheckIn(r.Context(), mux.Vars(r)["id"], req.ReturnMileage, req.CheckinEmployeeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}
