package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink-social/apiserver/types"
)

func createProfile(t *testing.T, env *testEnv, token string) types.Profile {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/profile", token, ProfileRequest{
		Status: "Developer",
		Skills: "Go, SQL",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody[types.Profile](t, rec)
}

func TestUpsertProfileCreatesAndUpdates(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.register(t, "Ada", "ada@example.com")

	profile := createProfile(t, env, token)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)

	rec := env.do(t, http.MethodPost, "/api/profile", token, ProfileRequest{
		Status:   "Senior Developer",
		Skills:   "Go",
		Location: "London",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeBody[types.Profile](t, rec)
	assert.Equal(t, profile.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, "London", updated.Location)
}

func TestUpsertProfileValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodPost, "/api/profile", token, ProfileRequest{Skills: " , ,"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	messages := validationMessages(t, rec)
	assert.Contains(t, messages, "Status is required")
	assert.Contains(t, messages, "Skills is required")
}

func TestGetProfileByUser(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.register(t, "Ada", "ada@example.com")
	createProfile(t, env, token)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/profile/user/%d", userID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, decodeBody[types.Profile](t, rec).UserID)

	missing := env.do(t, http.MethodGet, "/api/profile/user/999", "", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "No profile for this user", decodeBody[MessageResponse](t, missing).Msg)
}

func TestMyProfileWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodGet, "/api/profile/me", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No profile for this user", decodeBody[MessageResponse](t, rec).Msg)
}

func TestListProfiles(t *testing.T) {
	env := newTestEnv(t)
	_, tokenA := env.register(t, "Ada", "ada@example.com")
	_, tokenB := env.register(t, "Lin", "lin@example.com")
	createProfile(t, env, tokenA)
	createProfile(t, env, tokenB)

	rec := env.do(t, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]types.Profile](t, rec), 2)
}

func TestExperienceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")
	createProfile(t, env, token)

	rec := env.do(t, http.MethodPut, "/api/profile/experience", token, ExperienceRequest{
		Title:   "Engineer",
		Company: "Initech",
		From:    "2020-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	entries := decodeBody[[]types.Experience](t, rec)
	require.Len(t, entries, 1)
	require.NotEmpty(t, entries[0].ID)

	rec = env.do(t, http.MethodPut, "/api/profile/experience", token, ExperienceRequest{
		Title:   "Senior Engineer",
		Company: "Initech",
		From:    "2022-01-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	entries = decodeBody[[]types.Experience](t, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, "Senior Engineer", entries[0].Title) // newest first

	rec = env.do(t, http.MethodDelete, "/api/profile/experience/"+entries[1].ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries = decodeBody[[]types.Experience](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "Senior Engineer", entries[0].Title)
}

func TestExperienceValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")
	createProfile(t, env, token)

	rec := env.do(t, http.MethodPut, "/api/profile/experience", token, ExperienceRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	messages := validationMessages(t, rec)
	assert.Contains(t, messages, "Title is required")
	assert.Contains(t, messages, "Company is required")
	assert.Contains(t, messages, "From date is required")
}

func TestRemoveExperienceUnknownEntry(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")
	createProfile(t, env, token)

	rec := env.do(t, http.MethodDelete, "/api/profile/experience/no-such-entry", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Entry does not exist", decodeBody[MessageResponse](t, rec).Msg)
}

func TestExperienceWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodPut, "/api/profile/experience", token, ExperienceRequest{
		Title:   "Engineer",
		Company: "Initech",
		From:    "2020-01-01",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No profile for this user", decodeBody[MessageResponse](t, rec).Msg)
}

func TestEducationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")
	createProfile(t, env, token)

	rec := env.do(t, http.MethodPut, "/api/profile/education", token, EducationRequest{
		School:       "MIT",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         "2014-09-01",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	entries := decodeBody[[]types.Education](t, rec)
	require.Len(t, entries, 1)

	rec = env.do(t, http.MethodDelete, "/api/profile/education/"+entries[0].ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]types.Education](t, rec))
}

func TestEducationValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "Ada", "ada@example.com")
	createProfile(t, env, token)

	rec := env.do(t, http.MethodPut, "/api/profile/education", token, EducationRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	messages := validationMessages(t, rec)
	assert.Contains(t, messages, "School is required")
	assert.Contains(t, messages, "Degree is required")
	assert.Contains(t, messages, "Field of study is required")
	assert.Contains(t, messages, "From date is required")
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.register(t, "Ada", "ada@example.com")
	createProfile(t, env, token)

	rec := env.do(t, http.MethodPost, "/api/posts", token, PostRequest{Text: "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted", decodeBody[MessageResponse](t, rec).Msg)

	_, err := env.userRepo.GetByID(context.Background(), userID)
	assert.Error(t, err)
	_, err = env.profileRepo.GetByUserID(context.Background(), userID)
	assert.Error(t, err)
	posts, err := env.postRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGithubRepos(t *testing.T) {
	stub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"name": "hello-world"}})
	}))
	defer stub.Close()

	env := newTestEnvWithGithub(t, stub.URL)

	rec := env.do(t, http.MethodGet, "/api/profile/github/octocat", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	missing := env.do(t, http.MethodGet, "/api/profile/github/ghost", "", nil)
	require.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "No github profile found", decodeBody[MessageResponse](t, missing).Msg)
}
