package httpapi

import "net/http"

// HandleHealth returns API health status and catalog size
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:      "healthy",
		RecipeCount: h.catalog.Len(),
	}

	h.logger.Debug().Int("recipe_count", h.catalog.Len()).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
