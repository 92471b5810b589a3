package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/workflow"
)

// Services bundles everything the API serves.
type Services struct {
	Customers    service.CustomerService
	Categories   service.VehicleCategoryService
	Vehicles     service.VehicleService
	Reservations service.ReservationService
	Rentals      service.RentalService
	Invoices     service.InvoiceService
	Payments     service.PaymentService
	Maintenance  service.MaintenanceService
	Users        service.UserService
	Dashboard    service.DashboardService
	Orchestrator *workflow.Orchestrator
	Tokens       security.TokenManager
}

// NewRouter assembles the API. The token endpoint and health check sit in
// the open; everything under /api/v1 otherwise requires a bearer token.
func NewRouter(svcs Services) *mux.Router {
	root := mux.NewRouter()
	root.HandleFunc("/health", handleHealth).Methods("GET")

	api := root.PathPrefix("/api/v1").Subrouter()

	users := NewUserHandler(svcs.Users, svcs.Tokens)
	users.RegisterAuth(api)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(svcs.Tokens))

	NewCustomerHandler(svcs.Customers).Register(protected)
	NewVehicleHandler(svcs.Vehicles, svcs.Categories).Register(protected)
	NewReservationHandler(svcs.Reservations, svcs.Orchestrator).Register(protected)
	NewRentalHandler(svcs.Rentals, svcs.Orchestrator).Register(protected)
	NewBillingHandler(svcs.Invoices, svcs.Payments).Register(protected)
	NewMaintenanceHandler(svcs.Maintenance).Register(protected)
	NewDashboardHandler(svcs.Dashboard).Register(protected)
	users.Register(protected)

	return root
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
