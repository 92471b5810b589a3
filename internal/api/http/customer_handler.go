package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
)

type CustomerHandler struct {
	customers service.CustomerService
}

func NewCustomerHandler(customers service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Register(r *mux.Router) {
	r.HandleFunc("/customers", requirePermission(security.PermCustomersRead, h.List)).Methods("GET")
	r.HandleFunc("/customers", requirePermission(security.PermCustomersWrite, h.Create)).Methods("POST")
	r.HandleFunc("/customers/{id}", requirePermission(security.PermCustomersRead, h.Get)).Methods("GET")
	r.HandleFunc("/customers/{id}", requirePermission(security.PermCustomersWrite, h.Update)).Methods("PATCH")
	r.HandleFunc("/customers/{id}", requirePermission(security.PermCustomersWrite, h.Delete)).Methods("DELETE")
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := decode(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := h.customers.Create(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.CustomerPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	c, err := h.customers.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
