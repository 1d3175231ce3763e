// Package comments implements the per-recipe comment store: creation, likes,
// newest-first listings and the same-day "top" ranking views, persisted
// through the key-value boundary.
package comments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cookpro/cookpro/internal/kv"
)

const (
	commentsKey  = "cookpro_comments"
	topHiddenKey = "cookpro_top_comments_hidden"

	// AnonymousAuthor is the display name used when none is given.
	AnonymousAuthor = "Anonymous"
)

var (
	// ErrEmptyText rejects comments whose text is blank after trimming.
	ErrEmptyText = errors.New("comment text is empty")
	// ErrNotFound reports a like against an unknown comment identifier.
	ErrNotFound = errors.New("comment not found")
)

// Comment is a single user comment on a recipe. Recipe holds the owning
// recipe slug; it is not validated against the catalog, so comments may
// reference recipes the catalog no longer carries.
type Comment struct {
	ID        string    `json:"id"`
	Recipe    string    `json:"recipe"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store owns all comment records. Every operation re-reads the persisted
// mapping, mutates it under one coarse mutex and writes it back, so reads
// always reflect the latest write and malformed bytes only cost one reset.
type Store struct {
	kv     kv.Store
	mu     sync.Mutex
	now    func() time.Time
	logger zerolog.Logger
}

// NewStore creates a comment store over the given key-value backend.
func NewStore(kvs kv.Store, logger zerolog.Logger) *Store {
	return &Store{kv: kvs, now: time.Now, logger: logger}
}

// Create validates and stores a new comment at the front of its recipe's
// sequence and returns it with identifier, likes and timestamp assigned.
func (s *Store) Create(ctx context.Context, recipeID, author, text, image string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrEmptyText
	}
	if strings.TrimSpace(author) == "" {
		author = AnonymousAuthor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return Comment{}, err
	}

	c := Comment{
		ID:        uuid.NewString(),
		Recipe:    recipeID,
		Name:      author,
		Text:      text,
		Image:     image,
		Likes:     0,
		CreatedAt: s.now(),
	}

	// Prepend so storage order stays newest-first without a later sort.
	store[recipeID] = append([]Comment{c}, store[recipeID]...)

	if err := s.save(ctx, store); err != nil {
		return Comment{}, err
	}

	s.logger.Info().Str("recipe", recipeID).Str("comment_id", c.ID).Msg("comment created")
	return c, nil
}

// Like increments the like counter of the identified comment by exactly one
// and persists the update in place.
func (s *Store) Like(ctx context.Context, commentID string) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return Comment{}, err
	}

	for recipeID, list := range store {
		for i := range list {
			if list[i].ID != commentID {
				continue
			}
			list[i].Likes++
			store[recipeID] = list
			if err := s.save(ctx, store); err != nil {
				return Comment{}, err
			}
			return list[i], nil
		}
	}
	return Comment{}, ErrNotFound
}

// ListForRecipe returns a recipe's comments newest first. Unknown recipes
// yield an empty list, not an error.
func (s *Store) ListForRecipe(ctx context.Context, recipeID string) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	list := append([]Comment(nil), store[recipeID]...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// TopToday returns up to limit of the recipe's comments created today,
// ranked by likes. "Today" is evaluated against the local calendar day at
// call time, so yesterday's hits silently age out at midnight.
func (s *Store) TopToday(ctx context.Context, recipeID string, limit int) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	top := rankByLikes(filterToday(store[recipeID], s.dayStart()))
	return truncate(top, limit), nil
}

// GlobalTopToday returns up to limit of today's comments across every
// recipe, ranked by likes. Each comment carries its recipe slug. The view is
// recomputed from scratch on every call.
func (s *Store) GlobalTopToday(ctx context.Context, limit int) ([]Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// Walk recipes in slug order so ties rank the same on every call.
	slugs := make([]string, 0, len(store))
	for slug := range store {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	dayStart := s.dayStart()
	var all []Comment
	for _, slug := range slugs {
		all = append(all, filterToday(store[slug], dayStart)...)
	}

	return truncate(rankByLikes(all), limit), nil
}

// dayStart returns local midnight of the current day.
func (s *Store) dayStart() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func filterToday(list []Comment, dayStart time.Time) []Comment {
	var out []Comment
	for _, c := range list {
		if !c.CreatedAt.Before(dayStart) {
			out = append(out, c)
		}
	}
	return out
}

func rankByLikes(list []Comment) []Comment {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Likes > list[j].Likes })
	return list
}

func truncate(list []Comment, limit int) []Comment {
	if limit > 0 && len(list) > limit {
		return list[:limit]
	}
	return list
}

// load reads the persisted mapping. An absent key is an empty store;
// malformed bytes reset to an empty store rather than failing the call.
func (s *Store) load(ctx context.Context) (map[string][]Comment, error) {
	data, ok, err := s.kv.Get(ctx, commentsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read comment store: %w", err)
	}
	if !ok {
		return make(map[string][]Comment), nil
	}

	var store map[string][]Comment
	if err := json.Unmarshal(data, &store); err != nil {
		s.logger.Warn().Err(err).Msg("comment store corrupt, resetting to empty")
		return make(map[string][]Comment), nil
	}
	if store == nil {
		store = make(map[string][]Comment)
	}
	return store, nil
}

func (s *Store) save(ctx context.Context, store map[string][]Comment) error {
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to encode comment store: %w", err)
	}
	if err := s.kv.Set(ctx, commentsKey, data); err != nil {
		return fmt.Errorf("failed to write comment store: %w", err)
	}
	return nil
}

// TopPanelHidden reports the persisted "hide global top comments" preference.
// Absent or unreadable values mean visible.
func (s *Store) TopPanelHidden(ctx context.Context) bool {
	data, ok, err := s.kv.Get(ctx, topHiddenKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read top-comments preference")
		return false
	}
	return ok && string(data) == "1"
}

// SetTopPanelHidden persists the "hide global top comments" preference.
func (s *Store) SetTopPanelHidden(ctx context.Context, hidden bool) error {
	value := "0"
	if hidden {
		value = "1"
	}
	if err := s.kv.Set(ctx, topHiddenKey, []byte(value)); err != nil {
		return fmt.Errorf("failed to write top-comments preference: %w", err)
	}
	return nil
}
