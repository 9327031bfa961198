package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReturnsToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users", "", RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[TokenResponse](t, rec)
	assert.NotEmpty(t, resp.Token)

	me := env.do(t, http.MethodGet, "/api/auth", resp.Token, nil)
	require.Equal(t, http.StatusOK, me.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users", "", RegisterRequest{
		Name:     "",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	messages := validationMessages(t, rec)
	assert.Contains(t, messages, "Name is required")
	assert.Contains(t, messages, "Please use a valid email")
	assert.Contains(t, messages, "Password must be at least 6 characters long")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/users", "", RegisterRequest{
		Name:     "Imposter",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, validationMessages(t, rec), "User already exists")
}

func TestRegisterAssignsGravatar(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users", "", RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := env.userRepo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, user.Avatar, "gravatar.com/avatar/")
}

func TestUploadAvatarRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users/avatar", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadAvatarWithoutBackend(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/users/avatar", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Avatar uploads are not enabled", decodeBody[MessageResponse](t, rec).Msg)
}
