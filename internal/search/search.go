// Package search implements the recipe search engine: a fuzzy primary pass
// over precomputed search indexes, per-word widening when results are thin,
// and a substring fallback when the fuzzy subsystem is unavailable.
package search

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cookpro/cookpro/internal/catalog"
)

const (
	// visibleLimit caps how many results are immediately visible; the rest
	// go to Result.More and are revealed in one action.
	visibleLimit = 10
	// widenThreshold is the primary-pass result count below which the
	// per-word widening pass runs.
	widenThreshold = 3
	// minFragmentLen is the shortest query token worth matching.
	minFragmentLen = 2
)

// Result is the outcome of a query. Idle means the query was empty after
// normalization and the caller should show its prompt instead of results.
type Result struct {
	Idle    bool
	Recipes []catalog.Recipe
	More    []catalog.Recipe
}

// Engine answers recipe queries. It is read-only after construction and safe
// for concurrent use.
type Engine struct {
	recipes []catalog.Recipe
	bySlug  map[string]catalog.Recipe
	matcher Matcher
	logger  zerolog.Logger
}

// New builds an engine over the catalog. When the fuzzy subsystem cannot be
// built the engine still works, degraded to substring matching.
func New(c *catalog.Catalog, logger zerolog.Logger) *Engine {
	e := newEngine(c.Recipes(), nil, logger)

	m, err := newBleveMatcher(c.Recipes())
	if err != nil {
		logger.Warn().Err(err).Msg("fuzzy matcher unavailable, using substring matching")
		return e
	}
	e.matcher = m
	return e
}

func newEngine(recipes []catalog.Recipe, m Matcher, logger zerolog.Logger) *Engine {
	bySlug := make(map[string]catalog.Recipe, len(recipes))
	for _, r := range recipes {
		bySlug[r.Slug()] = r
	}
	return &Engine{recipes: recipes, bySlug: bySlug, matcher: m, logger: logger}
}

// Close releases the matcher, if any.
func (e *Engine) Close() error {
	if e.matcher != nil {
		return e.matcher.Close()
	}
	return nil
}

// Query runs the full search pipeline for a raw user query and returns a
// ranked, deduplicated result set split into the visible page and the
// reveal-on-demand remainder.
func (e *Engine) Query(raw string) Result {
	q := catalog.Normalize(raw)
	if q == "" {
		return Result{Idle: true}
	}

	hits := e.match(q)

	if len(hits) < widenThreshold {
		if widened := e.widen(q); len(widened) > 0 {
			hits = widened
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score < hits[j].Score })

	seen := make(map[string]bool, len(hits))
	ranked := make([]catalog.Recipe, 0, len(hits))
	for _, h := range hits {
		if seen[h.Slug] {
			continue
		}
		r, ok := e.bySlug[h.Slug]
		if !ok {
			continue
		}
		seen[h.Slug] = true
		ranked = append(ranked, r)
	}

	if len(ranked) > visibleLimit {
		return Result{Recipes: ranked[:visibleLimit], More: ranked[visibleLimit:]}
	}
	return Result{Recipes: ranked}
}

// match is the primary pass: fuzzy when the subsystem is up, substring
// otherwise. A fuzzy failure degrades to substring for this query only.
func (e *Engine) match(q string) []Hit {
	if e.matcher != nil {
		hits, err := e.matcher.Match(q)
		if err == nil {
			return hits
		}
		e.logger.Warn().Err(err).Str("query", q).Msg("fuzzy match failed, falling back to substring")
	}
	return e.substringMatch(q)
}

// widen reruns the match word by word and unions the results, keeping the
// best score seen per recipe. Per-word failures are ignored.
func (e *Engine) widen(q string) []Hit {
	words := strings.Fields(q)
	if len(words) < 1 {
		return nil
	}

	best := make(map[string]float64)
	var order []string
	for _, word := range words {
		var hits []Hit
		if e.matcher != nil {
			var err error
			hits, err = e.matcher.Match(word)
			if err != nil {
				continue
			}
		} else {
			hits = e.substringMatch(word)
		}
		for _, h := range hits {
			score, ok := best[h.Slug]
			if !ok {
				order = append(order, h.Slug)
				best[h.Slug] = h.Score
			} else if h.Score < score {
				best[h.Slug] = h.Score
			}
		}
	}

	out := make([]Hit, 0, len(order))
	for _, slug := range order {
		out = append(out, Hit{Slug: slug, Score: best[slug]})
	}
	return out
}

// substringMatch is the degraded strategy: case-insensitive containment
// against each search index, score 0 on hit.
func (e *Engine) substringMatch(q string) []Hit {
	var hits []Hit
	for _, r := range e.recipes {
		if strings.Contains(r.SearchIndex, q) {
			hits = append(hits, Hit{Slug: r.Slug(), Score: 0})
		}
	}
	return hits
}
