// Package catalog provides the recipe catalog: loading the bundled recipe
// data, deriving the canonical slug for each recipe, and building the
// per-recipe search index used by the search engine.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Recipe is a single catalog entry. Field names follow the bundled data file.
// SearchIndex is derived at load time and never stored.
type Recipe struct {
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Time        string   `json:"time"`
	Likes       int      `json:"likes,omitempty"`
	Ingredients []string `json:"ingredients"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
	Steps       []string `json:"steps"`
	YouTube     string   `json:"youtube"`
	SearchIndex string   `json:"-"`
}

// Slug returns the canonical identifier for the recipe.
func (r Recipe) Slug() string {
	return Slug(r.Name)
}

// Slug derives a recipe identifier from a display name: lowercased, with
// whitespace runs collapsed to single hyphens.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Normalize lowercases s and strips punctuation, keeping only letters,
// digits, underscores and whitespace. Both the search index and incoming
// queries go through this so they compare on equal terms.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Catalog is the read-only recipe set with slug lookup.
type Catalog struct {
	recipes []Recipe
	bySlug  map[string]int
}

// Load decodes a JSON recipe array and builds every search index.
func Load(r io.Reader) (*Catalog, error) {
	var recipes []Recipe
	if err := json.NewDecoder(r).Decode(&recipes); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		recipes: recipes,
		bySlug:  make(map[string]int, len(recipes)),
	}
	for i := range c.recipes {
		c.recipes[i].SearchIndex = buildSearchIndex(c.recipes[i])
		c.bySlug[c.recipes[i].Slug()] = i
	}
	return c, nil
}

// LoadFile loads a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// buildSearchIndex joins the recipe name and ingredients into the normalized
// blob all matching runs against.
func buildSearchIndex(r Recipe) string {
	parts := make([]string, 0, len(r.Ingredients)+1)
	parts = append(parts, r.Name)
	parts = append(parts, r.Ingredients...)
	return Normalize(strings.Join(parts, " "))
}

// Recipes returns the catalog in load order.
func (c *Catalog) Recipes() []Recipe {
	return c.recipes
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// BySlug looks a recipe up by its canonical identifier.
func (c *Catalog) BySlug(slug string) (Recipe, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}
