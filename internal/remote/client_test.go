package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientTopStories(t *testing.T) {
	srv := newTestAPI(t, map[string]string{
		"/v0/topstories.json": `[8863, 121003, 2921983]`,
	})
	c := NewClient(ClientOptions{BaseURL: srv.URL + "/v0/"})

	ids, err := c.TopStories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{8863, 121003, 2921983}, ids)
}

func TestClientItemDecodesFullPayload(t *testing.T) {
	srv := newTestAPI(t, map[string]string{
		"/item/8863.json": `{"by":"dhouston","descendants":71,"id":8863,"kids":[8952,9224],
			"score":111,"time":1175714200,"title":"My YC app: Dropbox","type":"story",
			"url":"http://www.getdropbox.com/u/2/screencast.html"}`,
	})
	c := NewClient(ClientOptions{BaseURL: srv.URL})

	it, err := c.Item(context.Background(), 8863)
	require.NoError(t, err)
	require.Equal(t, Item{
		ID:          8863,
		Title:       "My YC app: Dropbox",
		URL:         "http://www.getdropbox.com/u/2/screencast.html",
		Author:      "dhouston",
		Score:       111,
		Descendants: 71,
		CreatedAt:   time.Unix(1175714200, 0).UTC(),
		Kids:        []int{8952, 9224},
		Kind:        "story",
	}, it)
	require.True(t, it.HasURL())
}

func TestClientItemAppliesDefaults(t *testing.T) {
	srv := newTestAPI(t, map[string]string{
		"/item/121003.json": `{"id":121003,"time":1203647620,"title":"Ask HN: The Arc Effect","type":"story","text":"<i>or</i> HN"}`,
	})
	c := NewClient(ClientOptions{BaseURL: srv.URL})

	it, err := c.Item(context.Background(), 121003)
	require.NoError(t, err)
	require.Empty(t, it.Author)
	require.Zero(t, it.Score)
	require.Zero(t, it.Descendants)
	require.NotNil(t, it.Kids)
	require.Empty(t, it.Kids)
	require.False(t, it.HasURL())
	require.Equal(t, "<i>or</i> HN", it.Text)
}

func TestClientItemFailures(t *testing.T) {
	srv := newTestAPI(t, map[string]string{
		"/item/1.json": `null`,
		"/item/2.json": `{"id":2,"title":"no time","type":"story"}`,
		"/item/3.json": `{"id":3,"time":1,"type":"story"}`,
		"/item/4.json": `{"id":"four"}`,
	})
	c := NewClient(ClientOptions{BaseURL: srv.URL})

	tests := []struct {
		name     string
		id       int
		notFound bool
	}{
		{name: "null body", id: 1, notFound: true},
		{name: "missing time", id: 2},
		{name: "missing title", id: 3},
		{name: "wrong id type", id: 4},
		{name: "http 404", id: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Item(context.Background(), tt.id)
			var re *RemoteError
			require.ErrorAs(t, err, &re)
			require.Equal(t, opItem, re.Op)
			require.Equal(t, tt.id, re.ID)
			if tt.notFound {
				require.ErrorIs(t, err, ErrItemNotFound)
			}
		})
	}
}

func TestClientTopStoriesDecodeError(t *testing.T) {
	srv := newTestAPI(t, map[string]string{
		"/topstories.json": `{"not":"a list"}`,
	})
	c := NewClient(ClientOptions{BaseURL: srv.URL})

	_, err := c.TopStories(context.Background())
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	require.Equal(t, opTopStories, re.Op)
	require.Contains(t, err.Error(), "remote topstories")
}

func TestClientSendsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{BaseURL: srv.URL, UserAgent: "hnterm-test"})
	_, err := c.TopStories(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hnterm-test", got)
}

func TestClientRespectsCancelledContext(t *testing.T) {
	srv := newTestAPI(t, map[string]string{"/topstories.json": `[1]`})
	c := NewClient(ClientOptions{BaseURL: srv.URL, RateLimit: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.TopStories(ctx)
	require.Error(t, err)
}

func TestClientPacesRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// One request every two seconds, no burst beyond the first.
	c := NewClient(ClientOptions{BaseURL: srv.URL, RateLimit: 0.5})
	_, err := c.TopStories(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err = c.TopStories(ctx)
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second, "limiter should fail fast when the deadline is too close")
	require.Equal(t, int32(1), hits.Load())
}

func TestRemoteErrorMessages(t *testing.T) {
	err := &RemoteError{Op: opItem, ID: 9, Err: ErrItemNotFound}
	require.Equal(t, "remote item 9: item not found", err.Error())

	rerr := &RangeError{From: 60, Len: 50}
	require.Equal(t, "range start 60 beyond ranking of 50 items", rerr.Error())
}
