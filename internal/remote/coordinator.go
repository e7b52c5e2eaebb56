package remote

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kk-code-lab/hnterm/internal/logging"
)

// DefaultMaxConcurrency bounds parallel item fetches for one page.
const DefaultMaxConcurrency = 16

// Coordinator turns a page request into concurrent item fetches over a Store.
type Coordinator struct {
	store *Store
	limit int
}

// NewCoordinator creates a coordinator. limit <= 0 uses DefaultMaxConcurrency.
func NewCoordinator(store *Store, limit int) *Coordinator {
	if limit <= 0 {
		limit = DefaultMaxConcurrency
	}
	return &Coordinator{store: store, limit: limit}
}

// Store returns the backing store.
func (c *Coordinator) Store() *Store {
	return c.store
}

// FetchRange returns the items for ranking positions [from, to).
//
// to is clamped to the ranking length; from past the end is a *RangeError.
// Items that fail to fetch are dropped, the rest keep ranking order.
func (c *Coordinator) FetchRange(ctx context.Context, from, to int) ([]Item, error) {
	if err := c.store.EnsureIdentifiersLoaded(ctx); err != nil {
		return nil, err
	}

	ids := c.store.Identifiers()
	to = min(to, len(ids))
	if from < 0 || from >= len(ids) {
		return nil, &RangeError{From: from, Len: len(ids)}
	}
	if to <= from {
		return []Item{}, nil
	}

	window := ids[from:to]
	slots := make([]*Item, len(window))

	var g errgroup.Group
	g.SetLimit(c.limit)
	for i, id := range window {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			it, err := c.store.GetItem(ctx, id)
			if err != nil {
				logging.Debug("dropping item", "id", id, "err", err)
				return nil // never fail the group, one bad item must not sink the page
			}
			slots[i] = &it
			return nil
		})
	}
	_ = g.Wait()

	items := make([]Item, 0, len(window))
	for _, it := range slots {
		if it != nil {
			items = append(items, *it)
		}
	}
	return items, nil
}
