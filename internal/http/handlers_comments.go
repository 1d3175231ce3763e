package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cookpro/cookpro/internal/comments"
)

const (
	defaultTopTodayLimit  = 3
	defaultGlobalTopLimit = 10
)

// HandleCreateComment stores a new comment on a recipe
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid comment request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "recipe and text are required", "VALIDATION_FAILED")
		return
	}

	c, err := h.comments.Create(r.Context(), req.Recipe, req.Name, req.Text, req.Image)
	if err != nil {
		if errors.Is(err, comments.ErrEmptyText) {
			writeError(w, http.StatusUnprocessableEntity, "comment text is empty", "EMPTY_TEXT")
			return
		}
		h.logger.Error().Err(err).Str("recipe", req.Recipe).Msg("failed to store comment")
		writeError(w, http.StatusInternalServerError, "failed to store comment", "STORE_ERROR")
		return
	}

	h.logger.Info().
		Str("recipe", c.Recipe).
		Str("comment_id", c.ID).
		Msg("comment posted")

	writeJSON(w, http.StatusCreated, c)
}

// HandleLikeComment increments a comment's like counter
func (h *Handler) HandleLikeComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.comments.Like(r.Context(), id)
	if err != nil {
		if errors.Is(err, comments.ErrNotFound) {
			writeError(w, http.StatusNotFound, "comment not found", "COMMENT_NOT_FOUND")
			return
		}
		h.logger.Error().Err(err).Str("comment_id", id).Msg("failed to like comment")
		writeError(w, http.StatusInternalServerError, "failed to like comment", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// HandleListComments returns all comments for a recipe, newest first
func (h *Handler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	list, err := h.comments.ListForRecipe(r.Context(), slug)
	if err != nil {
		h.logger.Error().Err(err).Str("recipe", slug).Msg("failed to list comments")
		writeError(w, http.StatusInternalServerError, "failed to list comments", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, CommentsResponse{Comments: list, Count: len(list)})
}

// HandleTopToday returns a recipe's most-liked comments from today
func (h *Handler) HandleTopToday(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	limit := limitParam(r, defaultTopTodayLimit)

	top, err := h.comments.TopToday(r.Context(), slug, limit)
	if err != nil {
		h.logger.Error().Err(err).Str("recipe", slug).Msg("failed to rank comments")
		writeError(w, http.StatusInternalServerError, "failed to rank comments", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, CommentsResponse{Comments: top, Count: len(top)})
}

// HandleGlobalTopToday returns today's most-liked comments across all recipes
func (h *Handler) HandleGlobalTopToday(w http.ResponseWriter, r *http.Request) {
	limit := limitParam(r, defaultGlobalTopLimit)

	top, err := h.comments.GlobalTopToday(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to rank comments")
		writeError(w, http.StatusInternalServerError, "failed to rank comments", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, CommentsResponse{Comments: top, Count: len(top)})
}

// limitParam reads a positive ?limit= query parameter, falling back otherwise
func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
