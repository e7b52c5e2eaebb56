package remote

import (
	"context"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/kk-code-lab/hnterm/internal/logging"
)

// Store owns the ranking and the item cache for the life of the process.
//
// Both are immutable snapshots behind atomic pointers. Readers load a
// snapshot without blocking; writers clone the current snapshot, apply
// their change and install it with compare-and-swap. Nothing is ever
// mutated in place, so a reader never sees a half-applied update.
type Store struct {
	src   Source
	ids   atomic.Pointer[[]int]
	items atomic.Pointer[map[int]Item]
}

// NewStore creates an empty store backed by src.
func NewStore(src Source) *Store {
	s := &Store{src: src}
	emptyIDs := []int{}
	emptyItems := map[int]Item{}
	s.ids.Store(&emptyIDs)
	s.items.Store(&emptyItems)
	return s
}

// Identifiers returns the current ranking snapshot. Callers must not modify it.
func (s *Store) Identifiers() []int {
	return *s.ids.Load()
}

// Cached returns the memoized item for id, if any.
func (s *Store) Cached(id int) (Item, bool) {
	it, ok := (*s.items.Load())[id]
	return it, ok
}

// CachedCount reports how many items are memoized.
func (s *Store) CachedCount() int {
	return len(*s.items.Load())
}

// EnsureIdentifiersLoaded fetches the ranking when none is installed yet.
// Concurrent callers may each fetch; the first swap to land wins and the
// others find the list populated and keep it.
func (s *Store) EnsureIdentifiersLoaded(ctx context.Context) error {
	if len(s.Identifiers()) > 0 {
		return nil
	}

	fetched, err := s.src.TopStories(ctx)
	if err != nil {
		return err
	}

	for {
		cur := s.ids.Load()
		if len(*cur) > 0 {
			return nil
		}
		next := slices.Clone(*cur)
		next = append(next, fetched...)
		if s.ids.CompareAndSwap(cur, &next) {
			logging.Debug("ranking installed", "ids", len(next))
			return nil
		}
	}
}

// GetItem returns the cached item for id, fetching and memoizing it on a miss.
// Two concurrent misses for the same id both fetch; both inserts land and
// both callers get an equivalent value.
func (s *Store) GetItem(ctx context.Context, id int) (Item, error) {
	if it, ok := s.Cached(id); ok {
		return it, nil
	}

	it, err := s.src.Item(ctx, id)
	if err != nil {
		return Item{}, err
	}

	s.insert(id, it)
	return it, nil
}

func (s *Store) insert(id int, it Item) {
	for {
		cur := s.items.Load()
		next := maps.Clone(*cur)
		if next == nil {
			next = make(map[int]Item, 1)
		}
		next[id] = it
		if s.items.CompareAndSwap(cur, &next) {
			return
		}
	}
}
