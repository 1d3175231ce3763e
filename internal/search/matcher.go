package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/cookpro/cookpro/internal/catalog"
)

// Hit is a scored match from the fuzzy subsystem. Lower scores are better.
type Hit struct {
	Slug  string
	Score float64
}

// Matcher is the pluggable fuzzy-match subsystem. A nil Matcher on the
// engine means the subsystem is unavailable and substring matching applies.
type Matcher interface {
	Match(query string) ([]Hit, error)
	Close() error
}

// bleveMatcher backs the fuzzy pass with an in-memory bleve index over each
// recipe's search-index blob, keyed by slug.
type bleveMatcher struct {
	idx  bleve.Index
	size int
}

const searchIndexField = "search_index"

func newBleveMatcher(recipes []catalog.Recipe) (*bleveMatcher, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	for _, r := range recipes {
		doc := map[string]string{searchIndexField: r.SearchIndex}
		if err := idx.Index(r.Slug(), doc); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("failed to index %q: %w", r.Slug(), err)
		}
	}

	return &bleveMatcher{idx: idx, size: len(recipes)}, nil
}

// Match runs a fuzzy search for the normalized query. Every query token must
// match some index term within its edit-distance budget; tokens shorter than
// the minimum fragment length are ignored.
func (m *bleveMatcher) Match(q string) ([]Hit, error) {
	terms := matchTerms(q)
	if len(terms) == 0 {
		return nil, nil
	}

	conjuncts := make([]query.Query, 0, len(terms))
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetField(searchIndexField)
		fq.SetFuzziness(fuzziness(term))
		conjuncts = append(conjuncts, fq)
	}

	var full query.Query = conjuncts[0]
	if len(conjuncts) > 1 {
		full = bleve.NewConjunctionQuery(conjuncts...)
	}

	req := bleve.NewSearchRequest(full)
	req.Size = m.size

	res, err := m.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		// Bleve relevance grows with match quality; fold it onto the
		// ascending lower-is-better scale the engine sorts by.
		hits = append(hits, Hit{Slug: h.ID, Score: 1 / (1 + h.Score)})
	}
	return hits, nil
}

func (m *bleveMatcher) Close() error {
	return m.idx.Close()
}

// matchTerms splits a normalized query into tokens at least minFragmentLen
// runes long.
func matchTerms(q string) []string {
	fields := strings.Fields(q)
	terms := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minFragmentLen {
			terms = append(terms, f)
		}
	}
	return terms
}

// fuzziness bounds the edit distance allowed for a token: short tokens must
// match exactly, longer tokens tolerate one or two edits.
func fuzziness(term string) int {
	switch n := utf8.RuneCountInString(term); {
	case n < 3:
		return 0
	case n < 6:
		return 1
	default:
		return 2
	}
}
