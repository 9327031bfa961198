package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/devlink-social/apiserver/internal/services"
	"github.com/devlink-social/apiserver/internal/store"
)

// AuthHandler provides login and current-user endpoints.
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewAuthHandler(userService)

	r.Post("/", handler.Login)
	r.With(authMiddleware).Get("/", handler.Me)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, "Please include a valid email", "Password is required")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	var problems []string
	if req.Email == "" {
		problems = append(problems, "Please include a valid email")
	}
	if req.Password == "" {
		problems = append(problems, "Password is required")
	}
	if len(problems) > 0 {
		writeValidationErrors(w, problems...)
		return
	}

	token, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownUser):
			writeValidationErrors(w, "Invalid credentials (user)")
		case errors.Is(err, services.ErrWrongPassword):
			writeValidationErrors(w, "Invalid credentials (password)")
		default:
			writeServerError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Me returns the authenticated user without the password hash.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
