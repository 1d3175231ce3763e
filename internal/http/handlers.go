package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cookpro/cookpro/internal/catalog"
	"github.com/cookpro/cookpro/internal/comments"
	"github.com/cookpro/cookpro/internal/search"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	catalog  *catalog.Catalog
	engine   *search.Engine
	comments *comments.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(c *catalog.Catalog, engine *search.Engine, store *comments.Store, logger zerolog.Logger) *Handler {
	return &Handler{
		catalog:  c,
		engine:   engine,
		comments: store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
