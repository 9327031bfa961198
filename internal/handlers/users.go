package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/devlink-social/apiserver/internal/services"
	"github.com/devlink-social/apiserver/internal/storage"
)

const maxAvatarBytes = 8 << 20

// UserHandler provides registration and avatar endpoints.
type UserHandler struct {
	userService *services.UserService
	avatars     *storage.AvatarStore
}

// NewUserHandler constructs a UserHandler. avatars may be nil when no
// object storage backend is configured.
func NewUserHandler(userService *services.UserService, avatars *storage.AvatarStore) *UserHandler {
	return &UserHandler{userService: userService, avatars: avatars}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService, avatars *storage.AvatarStore, authMiddleware func(http.Handler) http.Handler) {
	handler := NewUserHandler(userService, avatars)

	r.Post("/", handler.Register)
	r.With(authMiddleware).Post("/avatar", handler.UploadAvatar)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user account and returns a JWT.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, "Name is required", "Please use a valid email", "Password must be at least 6 characters long")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	var problems []string
	if req.Name == "" {
		problems = append(problems, "Name is required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		problems = append(problems, "Please use a valid email")
	}
	if len(req.Password) < 6 {
		problems = append(problems, "Password must be at least 6 characters long")
	}
	if len(problems) > 0 {
		writeValidationErrors(w, problems...)
		return
	}

	_, token, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			writeValidationErrors(w, "User already exists")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// UploadAvatar stores a custom avatar image and updates the user record.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	if h.avatars == nil {
		writeMessage(w, http.StatusBadRequest, "Avatar uploads are not enabled")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		writeValidationErrors(w, "Avatar image is required")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeValidationErrors(w, "Avatar image is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, err := h.avatars.Save(r.Context(), userID, file, header.Size, contentType)
	if err != nil {
		writeServerError(w, err)
		return
	}

	if err := h.userService.SetAvatar(r.Context(), userID, url); err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatar": url})
}
