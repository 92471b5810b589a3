package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
)

// BillingHandler serves invoices and payments. They share one handler since
// payments always act against an invoice.
type BillingHandler struct {
	invoices service.InvoiceService
	payments service.PaymentService
}

func NewBillingHandler(invoices service.InvoiceService, payments service.PaymentService) *BillingHandler {
	return &BillingHandler{invoices: invoices, payments: payments}
}

func (h *BillingHandler) Register(r *mux.Router) {
	r.HandleFunc("/invoices", requirePermission(security.PermBillingRead, h.ListInvoices)).Methods("GET")
	r.HandleFunc("/invoices", requirePermission(security.PermBillingWrite, h.CreateInvoice)).Methods("POST")
	r.HandleFunc("/invoices/{id}", requirePermission(security.PermBillingRead, h.GetInvoice)).Methods("GET")
	r.HandleFunc("/invoices/{id}", requirePermission(security.PermBillingWrite, h.UpdateInvoice)).Methods("PATCH")
	r.HandleFunc("/invoices/{id}", requirePermission(security.PermBillingWrite, h.DeleteInvoice)).Methods("DELETE")

	r.HandleFunc("/payments", requirePermission(security.PermBillingRead, h.ListPayments)).Methods("GET")
	r.HandleFunc("/payments", requirePermission(security.PermBillingWrite, h.CreatePayment)).Methods("POST")
	r.HandleFunc("/payments/{id}", requirePermission(security.PermBillingRead, h.GetPayment)).Methods("GET")
	r.HandleFunc("/payments/{id}", requirePermission(security.PermBillingWrite, h.UpdatePayment)).Methods("PATCH")
	r.HandleFunc("/payments/{id}", requirePermission(security.PermBillingWrite, h.DeletePayment)).Methods("DELETE")
}

func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *BillingHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var inv domain.Invoice
	if err := decode(r, &inv); err != nil {
		writeError(w, err)
		return
	}
	if err := h.invoices.Create(r.Context(), &inv); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *BillingHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var patch domain.InvoicePatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	inv, err := h.invoices.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *BillingHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.invoices.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *BillingHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.payments.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BillingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var p domain.Payment
	if err := decode(r, &p); err != nil {
		writeError(w, err)
		return
	}
	if p.ProcessedBy == "" {
		if claims := claimsFrom(r); claims != nil {
			p.ProcessedBy = claims.UserID
		}
	}
	if err := h.payments.Create(r.Context(), &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *BillingHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var patch domain.PaymentPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.payments.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *BillingHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.payments.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
