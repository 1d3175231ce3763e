package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cookpro/cookpro/internal/catalog"
)

// HandleGetRecipe returns the full detail view for one recipe by slug
func (h *Handler) HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	recipe, ok := h.catalog.BySlug(slug)
	if !ok {
		writeError(w, http.StatusNotFound, "recipe not found", "RECIPE_NOT_FOUND")
		return
	}

	writeJSON(w, http.StatusOK, RecipeResponse{
		Slug:        recipe.Slug(),
		Name:        recipe.Name,
		Image:       recipe.Image,
		Time:        recipe.Time,
		Ingredients: recipe.Ingredients,
		Description: recipe.Description,
		Benefits:    recipe.Benefits,
		Steps:       recipe.Steps,
		YouTube:     recipe.YouTube,
		VideoID:     catalog.VideoID(recipe.YouTube),
	})
}
