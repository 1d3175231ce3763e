package httpapi

import (
	"encoding/json"
	"net/http"
)

// HandleGetTopCommentsPref returns the persisted top-comments panel visibility
func (h *Handler) HandleGetTopCommentsPref(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PrefsResponse{
		Hidden: h.comments.TopPanelHidden(r.Context()),
	})
}

// HandleSetTopCommentsPref persists the top-comments panel visibility
func (h *Handler) HandleSetTopCommentsPref(w http.ResponseWriter, r *http.Request) {
	var req PrefsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	if err := h.comments.SetTopPanelHidden(r.Context(), req.Hidden); err != nil {
		h.logger.Error().Err(err).Msg("failed to persist preference")
		writeError(w, http.StatusInternalServerError, "failed to persist preference", "STORE_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, PrefsResponse{Hidden: req.Hidden})
}
