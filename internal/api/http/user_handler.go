package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/security"
	"rentalops-backend/internal/service"
)

type UserHandler struct {
	users  service.UserService
	tokens security.TokenManager
}

func NewUserHandler(users service.UserService, tokens security.TokenManager) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

func (h *UserHandler) Register(r *mux.Router) {
	r.HandleFunc("/users", requirePermission(security.PermUsersRead, h.List)).Methods("GET")
	r.HandleFunc("/users", requirePermission(security.PermUsersWrite, h.Create)).Methods("POST")
	r.HandleFunc("/users/{id}", requirePermission(security.PermUsersRead, h.Get)).Methods("GET")
}

// RegisterAuth mounts the token endpoint outside the auth middleware.
// Identity proofing is delegated to the identity provider in front of the
// console; this endpoint exchanges a known employee email for an access
// token carrying the role's permissions.
func (h *UserHandler) RegisterAuth(r *mux.Router) {
	r.HandleFunc("/auth/token", h.IssueToken).Methods("POST")
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if err := decode(r, &u); err != nil {
		writeError(w, err)
		return
	}
	if err := h.users.Create(r.Context(), &u); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

type tokenRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

func (h *UserHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" {
		writeError(w, domain.NewValidationError("email", "email is required"))
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(u)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, User: u})
}
