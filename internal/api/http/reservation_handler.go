package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/workflow"
)

type ReservationHandler struct {
	reservations service.ReservationService
	orchestrator *workflow.Orchestrator
}

func NewReservationHandler(reservations service.ReservationService, orchestrator *workflow.Orchestrator) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, orchestrator: orchestrator}
}

func (h *ReservationHandler) Register(r *mux.Router) {
	r.HandleFunc("/reservations", requirePermission(security.PermReservationsRead, h.List)).Methods("GET")
	r.HandleFunc("/reservations", requirePermission(security.PermReservationsWrite, h.Create)).Methods("POST")
	r.HandleFunc("/reservations/workflow", requirePermission(security.PermReservationsWrite, h.Book)).Methods("POST")
	r.HandleFunc("/reservations/{id}", requirePermission(security.PermReservationsRead, h.Get)).Methods("GET")
	r.HandleFunc("/reservations/{id}", requirePermission(security.PermReservationsWrite, h.Update)).Methods("PATCH")
	r.HandleFunc("/reservations/{id}", requirePermission(security.PermReservationsWrite, h.Delete)).Methods("DELETE")
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.reservations.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var res domain.Reservation
	if err := decode(r, &res); err != nil {
		writeError(w, err)
		return
	}
	if err := h.reservations.Create(r.Context(), &res); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Book runs the orchestrated flow: reservation, vehicle hold, rental and
// invoice in one request.
func (h *ReservationHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req workflow.BookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.EmployeeID == "" {
		if claims := claimsFrom(r); claims != nil {
			req.EmployeeID = claims.UserID
		}
	}

	result, err := h.orchestrator.CreateReservation(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.ReservationPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.reservations.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.reservations.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
