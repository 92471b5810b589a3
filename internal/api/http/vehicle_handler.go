package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
)

type VehicleHandler struct {
	vehicles   service.VehicleService
	categories service.VehicleCategoryService
}

func NewVehicleHandler(vehicles service.VehicleService, categories service.VehicleCategoryService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, categories: categories}
}

func (h *VehicleHandler) Register(r *mux.Router) {
	r.HandleFunc("/vehicles", requirePermission(security.PermVehiclesRead, h.List)).Methods("GET")
	r.HandleFunc("/vehicles", requirePermission(security.PermVehiclesWrite, h.Create)).Methods("POST")
	r.HandleFunc("/vehicles/{id}", requirePermission(security.PermVehiclesRead, h.Get)).Methods("GET")
	r.HandleFunc("/vehicles/{id}", requirePermission(security.PermVehiclesWrite, h.Update)).Methods("PATCH")
	r.HandleFunc("/vehicles/{id}", requirePermission(security.PermVehiclesWrite, h.Delete)).Methods("DELETE")

	r.HandleFunc("/vehicle-categories", requirePermission(security.PermVehiclesRead, h.ListCategories)).Methods("GET")
	r.HandleFunc("/vehicle-categories", requirePermission(security.PermVehiclesWrite, h.CreateCategory)).Methods("POST")
	r.HandleFunc("/vehicle-categories/{id}", requirePermission(security.PermVehiclesRead, h.GetCategory)).Methods("GET")
	r.HandleFunc("/vehicle-categories/{id}", requirePermission(security.PermVehiclesWrite, h.UpdateCategory)).Methods("PATCH")
	r.HandleFunc("/vehicle-categories/{id}", requirePermission(security.PermVehiclesWrite, h.DeleteCategory)).Methods("DELETE")
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		vehicles, err := h.vehicles.ListByStatus(r.Context(), domain.VehicleStatus(status))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, vehicles)
		return
	}

	vehicles, err := h.vehicles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicles.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := decode(r, &v); err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicles.Create(r.Context(), &v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.VehiclePatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	v, err := h.vehicles.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *VehicleHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.categories.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *VehicleHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.VehicleCategory
	if err := decode(r, &c); err != nil {
		writeError(w, err)
		return
	}
	if err := h.categories.Create(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *VehicleHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var patch domain.VehicleCategoryPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	c, err := h.categories.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *VehicleHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
