package remote

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRangePreservesOrderAndDropsFailures(t *testing.T) {
	src := &fakeSource{ids: []int{1, 2, 3}, fail: map[int]bool{2: true}}
	c := NewCoordinator(NewStore(src), 4)

	items, err := c.FetchRange(context.Background(), 0, 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].ID)
	require.Equal(t, 3, items[1].ID)
}

func TestFetchRangeKeepsRankingOrderUnderConcurrency(t *testing.T) {
	ids := []int{90, 10, 50, 70, 30, 20, 80, 60, 40}
	src := &fakeSource{ids: ids, delay: time.Millisecond}
	c := NewCoordinator(NewStore(src), 3)

	items, err := c.FetchRange(context.Background(), 0, len(ids))
	require.NoError(t, err)

	got := make([]int, len(items))
	for i, it := range items {
		got[i] = it.ID
	}
	require.Equal(t, ids, got)
}

func TestFetchRangeClampsEnd(t *testing.T) {
	src := &fakeSource{ids: []int{1, 2, 3}}
	c := NewCoordinator(NewStore(src), 0)

	items, err := c.FetchRange(context.Background(), 1, 50)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 2, items[0].ID)
	require.Equal(t, 3, items[1].ID)
}

func TestFetchRangeStartBeyondRankingIsRangeError(t *testing.T) {
	src := &fakeSource{ids: []int{1, 2, 3}}
	c := NewCoordinator(NewStore(src), 0)

	for _, from := range []int{3, 10, -1} {
		_, err := c.FetchRange(context.Background(), from, from+5)
		var rerr *RangeError
		require.ErrorAs(t, err, &rerr, "from=%d", from)
		require.Equal(t, 3, rerr.Len)
	}
}

func TestFetchRangeEmptyWindow(t *testing.T) {
	src := &fakeSource{ids: []int{1, 2, 3}}
	c := NewCoordinator(NewStore(src), 0)

	items, err := c.FetchRange(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Zero(t, src.itemCalls.Load())
}

func TestFetchRangeRankingFailureAbortsRequest(t *testing.T) {
	src := &fakeSource{idsErr: &RemoteError{Op: opTopStories, Err: errors.New("dns")}}
	c := NewCoordinator(NewStore(src), 0)

	items, err := c.FetchRange(context.Background(), 0, 10)
	require.Nil(t, items)
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	require.Equal(t, opTopStories, re.Op)
}

func TestFetchRangeUsesCacheForOverlappingPages(t *testing.T) {
	src := &fakeSource{ids: []int{1, 2, 3, 4, 5, 6}}
	c := NewCoordinator(NewStore(src), 0)

	_, err := c.FetchRange(context.Background(), 0, 4)
	require.NoError(t, err)
	require.EqualValues(t, 4, src.itemCalls.Load())

	items, err := c.FetchRange(context.Background(), 0, 6)
	require.NoError(t, err)
	require.Len(t, items, 6)
	require.EqualValues(t, 6, src.itemCalls.Load(), "only the two new ids should hit the network")
}

func TestFetchRangeOverlappingConcurrentRequestsConverge(t *testing.T) {
	ids := make([]int, 40)
	for i := range ids {
		ids[i] = i + 100
	}
	src := &fakeSource{ids: ids, delay: time.Millisecond, fail: map[int]bool{105: true}}
	store := NewStore(src)
	c := NewCoordinator(store, 8)

	ranges := [][2]int{{0, 20}, {10, 30}, {0, 40}, {15, 25}, {5, 35}, {0, 10}}
	results := make([][]Item, len(ranges))

	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := c.FetchRange(context.Background(), r[0], r[1])
			assert.NoError(t, err)
			results[i] = items
		}()
	}
	wg.Wait()

	for i, r := range ranges {
		prev := -1
		for _, it := range results[i] {
			require.NotEqual(t, 105, it.ID)
			require.Greater(t, it.ID, prev, "range %v out of order", r)
			prev = it.ID
			cached, ok := store.Cached(it.ID)
			require.True(t, ok)
			require.Equal(t, it, cached)
		}
	}
	require.Equal(t, 39, store.CachedCount())
	require.Equal(t, ids, store.Identifiers())
}

func TestFetchRangeCancelledContextReturnsPartial(t *testing.T) {
	src := &fakeSource{ids: []int{1, 2, 3}}
	store := NewStore(src)
	require.NoError(t, store.EnsureIdentifiersLoaded(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := NewCoordinator(store, 1).FetchRange(ctx, 0, 3)
	require.NoError(t, err)
	require.Empty(t, items)
}
