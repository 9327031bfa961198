package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/devlink-social/apiserver/internal/github"
	"github.com/devlink-social/apiserver/internal/services"
	"github.com/devlink-social/apiserver/internal/store"
	"github.com/devlink-social/apiserver/types"
)

// ProfileHandler provides HTTP handlers for developer profiles.
type ProfileHandler struct {
	profileService *services.ProfileService
	cascadeService *services.CascadeService
	githubClient   *github.Client
}

// NewProfileHandler constructs a handler with the provided dependencies.
func NewProfileHandler(profileService *services.ProfileService, cascadeService *services.CascadeService, githubClient *github.Client) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		cascadeService: cascadeService,
		githubClient:   githubClient,
	}
}

// ProfileRouter registers profile routes on the given router.
func ProfileRouter(
	r chi.Router,
	profileService *services.ProfileService,
	cascadeService *services.CascadeService,
	githubClient *github.Client,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewProfileHandler(profileService, cascadeService, githubClient)

	r.Get("/", handler.ListProfiles)
	r.Get("/user/{userID}", handler.GetProfileByUser)
	r.Get("/github/{username}", handler.GithubRepos)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/me", handler.MyProfile)
		r.Post("/", handler.UpsertProfile)
		r.Delete("/", handler.DeleteAccount)
		r.Put("/experience", handler.AddExperience)
		r.Delete("/experience/{entryID}", handler.RemoveExperience)
		r.Put("/education", handler.AddEducation)
		r.Delete("/education/{entryID}", handler.RemoveEducation)
	})
}

func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) GetProfileByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIntParam(r, "userID")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "No profile for this user")
		return
	}

	profile, err := h.profileService.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "No profile for this user")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// GithubRepos proxies the five most recent public repos for a username.
func (h *ProfileHandler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	repos, err := h.githubClient.ListRecentRepos(r.Context(), username)
	if err != nil {
		if errors.Is(err, github.ErrProfileNotFound) {
			writeMessage(w, http.StatusNotFound, "No github profile found")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, repos)
}

func (h *ProfileHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	profile, err := h.profileService.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "No profile for this user")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type ProfileRequest struct {
	Status         string `json:"status"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// UpsertProfile creates or replaces the scalar fields of the caller's
// profile. Skills arrive as a comma separated string.
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, "Status is required", "Skills is required")
		return
	}

	req.Status = strings.TrimSpace(req.Status)
	skills := splitSkills(req.Skills)
	var problems []string
	if req.Status == "" {
		problems = append(problems, "Status is required")
	}
	if len(skills) == 0 {
		problems = append(problems, "Skills is required")
	}
	if len(problems) > 0 {
		writeValidationErrors(w, problems...)
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), types.Profile{
		UserID:         userID,
		Status:         req.Status,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         skills,
		Social: types.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	})
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// DeleteAccount removes the caller's posts, profile, and user record.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	if err := h.cascadeService.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		writeServerError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "User deleted")
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, "Title is required", "Company is required", "From date is required")
		return
	}

	var problems []string
	if strings.TrimSpace(req.Title) == "" {
		problems = append(problems, "Title is required")
	}
	if strings.TrimSpace(req.Company) == "" {
		problems = append(problems, "Company is required")
	}
	if strings.TrimSpace(req.From) == "" {
		problems = append(problems, "From date is required")
	}
	if len(problems) > 0 {
		writeValidationErrors(w, problems...)
		return
	}

	entries, err := h.profileService.AddExperience(r.Context(), userID, types.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		h.writeEntryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	entries, err := h.profileService.RemoveExperience(r.Context(), userID, chi.URLParam(r, "entryID"))
	if err != nil {
		h.writeEntryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, "School is required", "Degree is required", "Field of study is required", "From date is required")
		return
	}

	var problems []string
	if strings.TrimSpace(req.School) == "" {
		problems = append(problems, "School is required")
	}
	if strings.TrimSpace(req.Degree) == "" {
		problems = append(problems, "Degree is required")
	}
	if strings.TrimSpace(req.FieldOfStudy) == "" {
		problems = append(problems, "Field of study is required")
	}
	if strings.TrimSpace(req.From) == "" {
		problems = append(problems, "From date is required")
	}
	if len(problems) > 0 {
		writeValidationErrors(w, problems...)
		return
	}

	entries, err := h.profileService.AddEducation(r.Context(), userID, types.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		h.writeEntryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	entries, err := h.profileService.RemoveEducation(r.Context(), userID, chi.URLParam(r, "entryID"))
	if err != nil {
		h.writeEntryError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// writeEntryError maps sub-collection mutation failures. A missing
// parent profile and a missing entry both surface as 404, with
// distinct messages.
func (h *ProfileHandler) writeEntryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "No profile for this user")
	case errors.Is(err, services.ErrEntryNotFound):
		writeMessage(w, http.StatusNotFound, "Entry does not exist")
	default:
		writeServerError(w, err)
	}
}

func splitSkills(raw string) []string {
	var skills []string
	for _, skill := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
