package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-token")
	c.BaseURL = srv.URL
	return c
}

func TestFetchOpenPRsSearchPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		fmt.Fprint(w, `{"login": "dmytro"}`)
	})
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("q"), "author:dmytro")
		fmt.Fprint(w, `{
			"total_count": 5,
			"items": [
				{"title": "GSP-1024 fix retry loop", "html_url": "https://github.com/o/r/pull/1"},
				{"title": "Add caching", "html_url": "https://github.com/o/r/pull/2"}
			]
		}`)
	})

	c := newTestClient(t, mux)
	res := c.FetchOpenPRs(context.Background())

	assert.Equal(t, StatusConnected, res.Status)
	require.True(t, res.CountKnown)
	assert.Equal(t, 5, res.Count)
	require.Len(t, res.PRs, 2)
	assert.Equal(t, "GSP-1024 fix retry loop", res.PRs[0].Title)
	assert.False(t, res.FetchedAt.IsZero())
}

func TestFetchOpenPRsBadTokenReportsDisconnected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Bad credentials"}`, http.StatusUnauthorized)
	})

	c := newTestClient(t, mux)
	res := c.FetchOpenPRs(context.Background())

	assert.Equal(t, StatusDisconnected, res.Status)
	assert.False(t, res.CountKnown, "a failed user lookup leaves the count unknown")
	assert.Empty(t, res.PRs)
}

func TestFetchOpenPRsSearchFailureStaysConnected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login": "dmytro"}`)
	})
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	c := newTestClient(t, mux)
	res := c.FetchOpenPRs(context.Background())

	assert.Equal(t, StatusConnected, res.Status, "the token worked, only search broke")
	assert.False(t, res.CountKnown)
}

func TestFetchOpenPRsRepoFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login": "dmytro"}`)
	})
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count": 0, "items": []}`)
	})
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"full_name": "acme/widgets"}, {"full_name": "dmytropaduchak/chrono"}]`)
	})
	mux.HandleFunc("/repos/acme/widgets/pulls", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"title": "Old one", "html_url": "https://github.com/acme/widgets/pull/1",
			 "updated_at": "2026-08-20T10:00:00Z", "user": {"login": "dmytro"}},
			{"title": "Someone else's", "html_url": "https://github.com/acme/widgets/pull/2",
			 "updated_at": "2026-08-23T10:00:00Z", "user": {"login": "other"}}
		]`)
	})
	mux.HandleFunc("/repos/dmytropaduchak/chrono/pulls", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"title": "Fresh one", "html_url": "https://github.com/dmytropaduchak/chrono/pull/9",
			 "updated_at": "2026-08-24T09:00:00Z", "user": {"login": "dmytro"}}
		]`)
	})

	c := newTestClient(t, mux)
	res := c.FetchOpenPRs(context.Background())

	assert.Equal(t, StatusConnected, res.Status)
	require.Len(t, res.PRs, 2, "only the user's own pull requests count")
	assert.Equal(t, "Fresh one", res.PRs[0].Title, "newest updated_at first")
	assert.Equal(t, "Old one", res.PRs[1].Title)
	assert.Equal(t, 2, res.Count, "the count is lifted to what the fallback found")
	assert.True(t, res.CountKnown)
}

func TestRepoFilterLimitsFallbackWalk(t *testing.T) {
	var walked []string
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login": "dmytro"}`)
	})
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count": 0, "items": []}`)
	})
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"full_name": "acme/widgets"}, {"full_name": "dmytropaduchak/chrono"}]`)
	})
	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		walked = append(walked, r.URL.Path)
		fmt.Fprint(w, `[]`)
	})

	c := newTestClient(t, mux)
	c.SetRepoFilter([]string{"dmytropaduchak/*"})
	c.FetchOpenPRs(context.Background())

	assert.Equal(t, []string{"/repos/dmytropaduchak/chrono/pulls"}, walked)
}

func TestOverlayApplyKeepsLastKnownOnFailure(t *testing.T) {
	var o Overlay
	assert.Equal(t, "?", o.CountLabel(), "never fetched means unknown")

	o.Apply(Result{Status: StatusDisconnected, FetchedAt: time.Now()})
	assert.Equal(t, StatusDisconnected, o.Status)
	assert.Equal(t, "?", o.CountLabel(), "a failure cannot invent a count")

	o.Apply(Result{
		Status: StatusConnected, Count: 3, CountKnown: true,
		PRs:       []PullRequest{{Title: "one", URL: "u"}},
		FetchedAt: time.Now(),
	})
	assert.Equal(t, "3", o.CountLabel(), "recovery updates without a restart")
	assert.Len(t, o.PRs, 1)

	o.InFlight = true
	o.Apply(Result{Status: StatusDisconnected, FetchedAt: time.Now()})
	assert.False(t, o.InFlight, "applying a result always ends the in-flight state")
	assert.Equal(t, "3", o.CountLabel(), "the stale count survives the outage")
	assert.Len(t, o.PRs, 1, "so does the stale list")
}

func TestFindIssueKey(t *testing.T) {
	tests := []struct {
		line  string
		key   string
		found bool
	}{
		{"GSP-1024 fix retry loop", "GSP-1024", true},
		{"fix retry loop (GSP-1024)", "GSP-1024", true},
		{"trailing key AB-7", "AB-7", true},
		{"no key here", "", false},
		{"a-1 too short", "", false},
		{"ABC-12x not digits", "", false},
		{"abc-123 lowercase", "", false},
		{"ABC-12-3 split once only", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, found := FindIssueKey(tt.line)
		if found != tt.found {
			t.Errorf("FindIssueKey(%q) found = %v, want %v", tt.line, found, tt.found)
			continue
		}
		if found && got.Key != tt.key {
			t.Errorf("FindIssueKey(%q) = %q, want %q", tt.line, got.Key, tt.key)
		}
		if found && tt.line[got.Start:got.End] != tt.key {
			t.Errorf("FindIssueKey(%q) offsets [%d:%d] = %q, want %q",
				tt.line, got.Start, got.End, tt.line[got.Start:got.End], tt.key)
		}
	}
}

func TestBrowseURL(t *testing.T) {
	assert.Equal(t, "https://x.atlassian.net/browse/GSP-7", BrowseURL("https://x.atlassian.net", "GSP-7"))
	assert.Equal(t, "https://x.atlassian.net/browse/GSP-7", BrowseURL("https://x.atlassian.net/", "GSP-7"))
}
