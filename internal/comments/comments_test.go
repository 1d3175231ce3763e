package comments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cookpro/cookpro/internal/kv"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)}
	store := NewStore(kv.NewMemory(), zerolog.Nop())
	store.now = clock.now
	return store, clock
}

func TestCreateValidatesText(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := store.Create(ctx, "mango-smoothie", "Ana", text, ""); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Create with text %q: expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestCreateDefaultsAuthor(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, err := store.Create(ctx, "mango-smoothie", "  ", "lovely recipe", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Name != AnonymousAuthor {
		t.Errorf("expected anonymous author, got %q", c.Name)
	}
}

func TestCreateListRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	created, err := store.Create(ctx, "mango-smoothie", "Ana", "  so good  ", "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == "" {
		t.Error("expected a generated identifier")
	}
	if created.Likes != 0 {
		t.Errorf("expected 0 likes, got %d", created.Likes)
	}
	if !created.CreatedAt.Equal(clock.t) {
		t.Errorf("expected creation time %v, got %v", clock.t, created.CreatedAt)
	}

	list, err := store.ListForRecipe(ctx, "mango-smoothie")
	if err != nil {
		t.Fatalf("ListForRecipe failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly the created comment, got %d", len(list))
	}

	got := list[0]
	if got.ID != created.ID || got.Recipe != "mango-smoothie" || got.Name != "Ana" ||
		got.Text != "so good" || got.Image != "data:image/png;base64,AAAA" {
		t.Errorf("fields not preserved: %+v", got)
	}
}

func TestListForRecipeNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	first, _ := store.Create(ctx, "mango-smoothie", "Ana", "first", "")
	clock.advance(time.Minute)
	second, _ := store.Create(ctx, "mango-smoothie", "Ben", "second", "")

	list, err := store.ListForRecipe(ctx, "mango-smoothie")
	if err != nil {
		t.Fatalf("ListForRecipe failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("expected newest comment first")
	}
}

func TestListForRecipeUnknownIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	list, err := store.ListForRecipe(context.Background(), "no-such-recipe")
	if err != nil {
		t.Fatalf("ListForRecipe failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d comments", len(list))
	}
}

func TestLikeIncrementsByOne(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	c, _ := store.Create(ctx, "mango-smoothie", "Ana", "nice", "")

	for n := 1; n <= 5; n++ {
		updated, err := store.Like(ctx, c.ID)
		if err != nil {
			t.Fatalf("Like failed: %v", err)
		}
		if updated.Likes != n {
			t.Errorf("after %d likes expected %d, got %d", n, n, updated.Likes)
		}
	}
}

func TestLikeUnknownComment(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Like(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTopTodayRanking(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	ids := make([]string, 4)
	for i := 0; i < 4; i++ {
		c, err := store.Create(ctx, "mango-smoothie", "Ana", "comment", "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids[i] = c.ID
		clock.advance(time.Minute)
	}

	// Two likes on the third comment.
	if _, err := store.Like(ctx, ids[2]); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if _, err := store.Like(ctx, ids[2]); err != nil {
		t.Fatalf("Like failed: %v", err)
	}

	top, err := store.TopToday(ctx, "mango-smoothie", 3)
	if err != nil {
		t.Fatalf("TopToday failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(top))
	}

	// Liked comment first, then the rest in storage order (newest first).
	if top[0].ID != ids[2] {
		t.Errorf("expected liked comment first, got %s", top[0].ID)
	}
	if top[1].ID != ids[3] || top[2].ID != ids[1] {
		t.Errorf("expected remaining comments in original relative order, got %s, %s", top[1].ID, top[2].ID)
	}
}

func TestTopTodayExcludesYesterday(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	// 23:59 the day before the view is computed.
	clock.t = time.Date(2024, 6, 14, 23, 59, 0, 0, time.Local)
	if _, err := store.Create(ctx, "mango-smoothie", "Ana", "late night", ""); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	clock.t = time.Date(2024, 6, 15, 0, 1, 0, 0, time.Local)
	fresh, _ := store.Create(ctx, "mango-smoothie", "Ben", "early bird", "")

	top, err := store.TopToday(ctx, "mango-smoothie", 3)
	if err != nil {
		t.Fatalf("TopToday failed: %v", err)
	}
	if len(top) != 1 || top[0].ID != fresh.ID {
		t.Errorf("expected only today's comment, got %d results", len(top))
	}

	for _, c := range top {
		y1, m1, d1 := c.CreatedAt.Date()
		y2, m2, d2 := clock.t.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			t.Errorf("comment %s not from today", c.ID)
		}
	}
}

func TestTopTodayAgesOutAtMidnight(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	c, _ := store.Create(ctx, "mango-smoothie", "Ana", "today only", "")
	_, _ = store.Like(ctx, c.ID)

	top, _ := store.TopToday(ctx, "mango-smoothie", 3)
	if len(top) != 1 {
		t.Fatalf("expected comment visible on creation day, got %d", len(top))
	}

	// Same stored state, next calendar day.
	clock.advance(24 * time.Hour)
	top, _ = store.TopToday(ctx, "mango-smoothie", 3)
	if len(top) != 0 {
		t.Errorf("expected comment to age out after midnight, got %d", len(top))
	}
}

func TestGlobalTopToday(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	a, _ := store.Create(ctx, "mango-smoothie", "Ana", "mango!", "")
	clock.advance(time.Minute)
	b, _ := store.Create(ctx, "banana-shake", "Ben", "banana!", "")
	clock.advance(time.Minute)
	_, _ = store.Create(ctx, "omelette", "Cam", "eggs!", "")

	_, _ = store.Like(ctx, b.ID)
	_, _ = store.Like(ctx, b.ID)
	_, _ = store.Like(ctx, a.ID)

	top, err := store.GlobalTopToday(ctx, 2)
	if err != nil {
		t.Fatalf("GlobalTopToday failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(top))
	}
	if top[0].ID != b.ID || top[0].Recipe != "banana-shake" {
		t.Errorf("expected most-liked comment with its recipe slug first, got %+v", top[0])
	}
	if top[1].ID != a.ID {
		t.Errorf("expected second most-liked comment next, got %+v", top[1])
	}
}

func TestGlobalTopTodayReflectsLikesImmediately(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	a, _ := store.Create(ctx, "mango-smoothie", "Ana", "a", "")
	b, _ := store.Create(ctx, "banana-shake", "Ben", "b", "")

	_, _ = store.Like(ctx, b.ID)
	top, _ := store.GlobalTopToday(ctx, 10)
	if top[0].ID != b.ID {
		t.Fatalf("expected b first after like, got %s", top[0].ID)
	}

	_, _ = store.Like(ctx, a.ID)
	_, _ = store.Like(ctx, a.ID)
	top, _ = store.GlobalTopToday(ctx, 10)
	if top[0].ID != a.ID {
		t.Errorf("expected a first after more likes, got %s", top[0].ID)
	}
}

func TestCorruptStoreResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	store := NewStore(backend, zerolog.Nop())

	if err := backend.Set(ctx, "cookpro_comments", []byte(`{"mango": [truncated`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	list, err := store.ListForRecipe(ctx, "mango")
	if err != nil {
		t.Fatalf("expected corruption to be recovered, got %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list from corrupt store, got %d", len(list))
	}

	// The store must remain usable after the reset.
	if _, err := store.Create(ctx, "mango", "Ana", "still works", ""); err != nil {
		t.Fatalf("Create after corruption failed: %v", err)
	}
	list, _ = store.ListForRecipe(ctx, "mango")
	if len(list) != 1 {
		t.Errorf("expected 1 comment after recovery, got %d", len(list))
	}
}

func TestTopPanelPreference(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if store.TopPanelHidden(ctx) {
		t.Error("expected panel visible by default")
	}

	if err := store.SetTopPanelHidden(ctx, true); err != nil {
		t.Fatalf("SetTopPanelHidden failed: %v", err)
	}
	if !store.TopPanelHidden(ctx) {
		t.Error("expected panel hidden after toggle")
	}

	if err := store.SetTopPanelHidden(ctx, false); err != nil {
		t.Fatalf("SetTopPanelHidden failed: %v", err)
	}
	if store.TopPanelHidden(ctx) {
		t.Error("expected panel visible after second toggle")
	}
}
