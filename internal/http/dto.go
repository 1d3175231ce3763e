// Package httpapi provides HTTP handlers and data transfer objects for the CookPro API.
package httpapi

import (
	"github.com/cookpro/cookpro/internal/catalog"
	"github.com/cookpro/cookpro/internal/comments"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	RecipeCount int    `json:"recipe_count"`
}

// SearchRequest represents a recipe search request
type SearchRequest struct {
	Query string `json:"query"`
}

// RecipeSummary is the card-level view of a recipe in search results
type RecipeSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// SearchResponse represents search results. Idle means the query was empty
// and the caller should render its prompt; More holds the results revealed
// by a single "see more" action.
type SearchResponse struct {
	Idle    bool            `json:"idle"`
	Results []RecipeSummary `json:"results"`
	More    []RecipeSummary `json:"more,omitempty"`
	Count   int             `json:"count"`
	Query   string          `json:"query"`
}

// RecipeResponse is the full detail view of a recipe
type RecipeResponse struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Time        string   `json:"time"`
	Ingredients []string `json:"ingredients"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
	Steps       []string `json:"steps"`
	YouTube     string   `json:"youtube"`
	VideoID     string   `json:"video_id,omitempty"`
}

// CreateCommentRequest represents a comment submission
type CreateCommentRequest struct {
	Recipe string `json:"recipe" validate:"required"`
	Name   string `json:"name"`
	Text   string `json:"text" validate:"required"`
	Image  string `json:"image,omitempty"`
}

// CommentsResponse represents a comment listing
type CommentsResponse struct {
	Comments []comments.Comment `json:"comments"`
	Count    int                `json:"count"`
}

// PrefsResponse represents the top-comments panel preference
type PrefsResponse struct {
	Hidden bool `json:"hidden"`
}

// PrefsRequest updates the top-comments panel preference
type PrefsRequest struct {
	Hidden bool `json:"hidden"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func toSummaries(recipes []catalog.Recipe) []RecipeSummary {
	out := make([]RecipeSummary, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeSummary{
			Slug:        r.Slug(),
			Name:        r.Name,
			Image:       r.Image,
			Time:        r.Time,
			Description: r.Description,
		}
	}
	return out
}
