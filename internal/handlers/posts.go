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

// PostHandler provides HTTP handlers for posts. Every route requires
// authentication.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler constructs a handler with the provided service.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRouter registers post routes on the given router.
func PostRouter(r chi.Router, postService *services.PostService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPostHandler(postService)

	r.Use(authMiddleware)
	r.Post("/", handler.CreatePost)
	r.Get("/", handler.ListPosts)
	r.Get("/{postID}", handler.GetPost)
	r.Delete("/{postID}", handler.DeletePost)
	r.Put("/like/{postID}", handler.LikePost)
	r.Put("/unlike/{postID}", handler.UnlikePost)
	r.Post("/comment/{postID}", handler.AddComment)
	r.Delete("/comment/{postID}/{commentID}", handler.RemoveComment)
}

type PostRequest struct {
	Text string `json:"text"`
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, "Text is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeValidationErrors(w, "Text is required")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req.Text)
	if err != nil {
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseIntParam(r, "postID")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.postService.Get(r.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	postID, err := parseIntParam(r, "postID")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.postService.Delete(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusUnauthorized, "User not authorized")
		default:
			writeServerError(w, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Post removed")
}

func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	postID, err := parseIntParam(r, "postID")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	likes, err := h.postService.Like(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrAlreadyLiked):
			writeMessage(w, http.StatusBadRequest, "Post already liked by this user")
		default:
			writeServerError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	postID, err := parseIntParam(r, "postID")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	likes, err := h.postService.Unlike(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrNotLiked):
			writeMessage(w, http.StatusBadRequest, "Post has not yet been liked by this user")
		default:
			writeServerError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, likes)
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	postID, err := parseIntParam(r, "postID")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, "Text is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeValidationErrors(w, "Text is required")
		return
	}

	comments, err := h.postService.AddComment(r.Context(), userID, postID, req.Text)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Post not found")
			return
		}
		writeServerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token is not valid")
		return
	}

	postID, err := parseIntParam(r, "postID")
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return
	}

	comments, err := h.postService.RemoveComment(r.Context(), userID, postID, chi.URLParam(r, "commentID"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrEntryNotFound):
			writeMessage(w, http.StatusNotFound, "Comment does not exist")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusUnauthorized, "User not authorized")
		default:
			writeServerError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, comments)
}
