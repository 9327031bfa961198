package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type contextKey string

const contextSubjectKey contextKey = "sub"

func userIDFromContext(ctx context.Context) (int, error) {
	subject, ok := ctx.Value(contextSubjectKey).(int)
	if !ok || subject < 1 {
		return 0, errors.New("missing subject")
	}
	return subject, nil
}

func withUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, contextSubjectKey, userID)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// MessageResponse is the body for operational errors and confirmations.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ValidationError is one entry in a validation failure response.
type ValidationError struct {
	Msg string `json:"msg"`
}

// ValidationResponse is the body for input validation failures.
type ValidationResponse struct {
	Errors []ValidationError `json:"errors"`
}

// TokenResponse is the body returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Msg: message})
}

func writeValidationErrors(w http.ResponseWriter, messages ...string) {
	resp := ValidationResponse{Errors: make([]ValidationError, 0, len(messages))}
	for _, message := range messages {
		resp.Errors = append(resp.Errors, ValidationError{Msg: message})
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeServerError(w http.ResponseWriter, err error) {
	logrus.WithError(err).Error("request failed")
	http.Error(w, "Server Error", http.StatusInternalServerError)
}

func parseIntParam(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value < 1 {
		return 0, errors.New("invalid " + name)
	}
	return value, nil
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
