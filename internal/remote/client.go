// Package remote talks to the Hacker News Firebase API and keeps the
// process-wide ranking and item cache.
//
// Client performs the HTTP calls, Store memoizes results behind
// copy-on-write snapshots, and Coordinator fans a page request out
// over the store.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Hacker News API root.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// maxBodyBytes caps a single response body; item payloads are a few KB.
const maxBodyBytes = 8 << 20

// Source is what the store needs from the network.
type Source interface {
	TopStories(ctx context.Context) ([]int, error)
	Item(ctx context.Context, id int) (Item, error)
}

// Client is a thin HTTP wrapper for the news API.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// ClientOptions configures NewClient. Zero values pick defaults.
type ClientOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RateLimit is the sustained request rate per second; 0 disables pacing.
	RateLimit float64
}

// NewClient creates an API client.
func NewClient(opts ClientOptions) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "hnterm"
	}

	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = max(1, int(opts.RateLimit))
	}

	return &Client{
		baseURL:   base,
		userAgent: ua,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, burst),
	}
}

// TopStories fetches the current ranking of top-level story ids.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	data, err := c.get(ctx, "/topstories.json")
	if err != nil {
		return nil, &RemoteError{Op: opTopStories, Err: err}
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, &RemoteError{Op: opTopStories, Err: fmt.Errorf("decoding ids: %w", err)}
	}
	return ids, nil
}

// Item fetches a single item by id.
func (c *Client) Item(ctx context.Context, id int) (Item, error) {
	data, err := c.get(ctx, "/item/"+strconv.Itoa(id)+".json")
	if err != nil {
		return Item{}, &RemoteError{Op: opItem, ID: id, Err: err}
	}

	it, err := decodeItem(data)
	if err != nil {
		return Item{}, &RemoteError{Op: opItem, ID: id, Err: err}
	}
	return it, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s returned %d", path, resp.StatusCode)
	}
	return data, nil
}
