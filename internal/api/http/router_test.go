package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/store/memory"
	"rentalops-backend/internal/workflow"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestRouter(t *testing.T) (http.Handler, service.UserService) {
	t.Helper()
	st := memory.New()
	email := service.NewEmailService(config.EmailConfig{})

	svcs := Services{
		Customers:    service.NewCustomerService(st),
		Categories:   service.NewVehicleCategoryService(st),
		Vehicles:     service.NewVehicleService(st),
		Reservations: service.NewReservationService(st),
		Rentals:      service.NewRentalService(st),
		Invoices:     service.NewInvoiceService(st),
		Payments:     service.NewPaymentService(st, email),
		Maintenance:  service.NewMaintenanceService(st),
		Users:        service.NewUserService(st),
		Dashboard:    service.NewDashboardService(st),
		Orchestrator: workflow.NewOrchestrator(st, email),
		Tokens:       security.NewTokenManager(testSecret, time.Hour),
	}
	return NewRouter(svcs), svcs.Users
}

func seedUser(t *testing.T, users service.UserService, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     fmt.Sprintf("%s@rentalops.test", role),
		Role:      role,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func issueToken(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/auth/token", bytes.NewReader(body))
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func doJSON(router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsOpen(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthTokenUnknownEmail(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, "POST", "/api/v1/auth/token", "",
		map[string]string{"email": "nobody@rentalops.test"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(router, "GET", "/api/v1/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, "GET", "/api/v1/customers", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	router, users := newTestRouter(t)
	u := seedUser(t, users, domain.UserRoleManager)

	expired := security.NewTokenManager(testSecret, -time.Minute)
	token, err := expired.GenerateAccessToken(u)
	require.NoError(t, err)

	rec := doJSON(router, "GET", "/api/v1/customers", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCustomerCRUDThroughAPI(t *testing.T) {
	router, users := newTestRouter(t)
	seedUser(t, users, domain.UserRoleAgent)
	token := issueToken(t, router, "agent@rentalops.test")

	rec := doJSON(router, "POST", "/api/v1/customers", token, map[string]any{
		"first_name": "John",
		"last_name":  "Smith",
		"email":      "john@example.com",
		"phone":      "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doJSON(router, "GET", "/api/v1/customers/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, "PATCH", "/api/v1/customers/"+created.ID, token,
		map[string]any{"phone": "555-0199"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "555-0199", updated.Phone)

	rec = doJSON(router, "DELETE", "/api/v1/customers/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(router, "GET", "/api/v1/customers/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationErrorsMapTo400(t *testing.T) {
	router, users := newTestRouter(t)
	seedUser(t, users, domain.UserRoleManager)
	token := issueToken(t, router, "manager@rentalops.test")

	// Missing required field.
	rec := doJSON(router, "POST", "/api/v1/customers", token, map[string]any{
		"email": "noname@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "first_name", resp.Field)

	// Malformed body.
	req := httptest.NewRequest("POST", "/api/v1/customers", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Authorization", "Bearer "+token)
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	require.Equal(t, http.StatusBadRequest, raw.Code)
	require.NoError(t, json.Unmarshal(raw.Body.Bytes(), &resp))
	assert.Equal(t, "body", resp.Field)
}

func TestPermissionDenied(t *testing.T) {
	router, users := newTestRouter(t)
	seedUser(t, users, domain.UserRoleTechnician)
	token := issueToken(t, router, "technician@rentalops.test")

	// Technicians can read the fleet but cannot touch billing.
	rec := doJSON(router, "GET", "/api/v1/vehicles", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, "GET", "/api/v1/invoices", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, "POST", "/api/v1/customers", token,
		map[string]any{"first_name": "Blocked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookingUnavailableVehicleRejected(t *testing.T) {
	router, users := newTestRouter(t)
	seedUser(t, users, domain.UserRoleManager)
	token := issueToken(t, router, "manager@rentalops.test")

	rec := doJSON(router, "POST", "/api/v1/customers", token,
		map[string]any{"first_name": "Maria", "last_name": "Garcia"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cust domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cust))

	rec = doJSON(router, "POST", "/api/v1/vehicles", token, map[string]any{
		"vin": "4T1BF1FK5CU000001", "make": "Toyota", "model": "Camry", "year": 2022,
		"category_id": "cat-1", "status": "rented", "mileage": 42000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var veh domain.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &veh))

	rec = doJSON(router, "POST", "/api/v1/reservations/workflow", token, map[string]any{
		"customer_id": cust.ID,
		"vehicle_id":  veh.ID,
		"pickup_date": "2025-06-01T10:00:00Z",
		"return_date": "2025-06-04T10:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, workflow.StepReserveVehicle, resp.Step)
}
