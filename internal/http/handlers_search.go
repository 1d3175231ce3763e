package httpapi

import (
	"encoding/json"
	"net/http"
)

// HandleSearch runs a recipe query. An empty query is the idle state, not an
// error: the response carries idle=true and the caller shows its prompt.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid search request")
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}

	res := h.engine.Query(req.Query)

	h.logger.Info().
		Str("query", req.Query).
		Bool("idle", res.Idle).
		Int("results", len(res.Recipes)).
		Int("more", len(res.More)).
		Msg("search completed")

	writeJSON(w, http.StatusOK, SearchResponse{
		Idle:    res.Idle,
		Results: toSummaries(res.Recipes),
		More:    toSummaries(res.More),
		Count:   len(res.Recipes) + len(res.More),
		Query:   req.Query,
	})
}
