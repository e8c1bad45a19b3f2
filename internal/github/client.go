// Package github fetches the user's open pull requests for the clock's
// overlay. Fetches run on their own goroutine; results travel back to
// the event loop over a channel, and only the event loop touches the
// overlay state.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/zyedidia/glob"
)

const (
	defaultBaseURL = "https://api.github.com"
	userAgent      = "chrono-clock"

	// requestTimeout bounds each API call. The overlay is decoration;
	// a slow network should never hold a result hostage for long.
	requestTimeout = 4 * time.Second

	// maxOverlayPRs is how many pull requests the overlay lists.
	maxOverlayPRs = 3

	// maxFallbackRepos bounds the repo walk when search comes back
	// empty.
	maxFallbackRepos = 20
)

// PullRequest is one row of the overlay list.
type PullRequest struct {
	Title string
	URL   string
}

// Status is the overlay's view of the GitHub connection.
type Status int

const (
	StatusUnknown Status = iota
	StatusConnected
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Result is one fetch outcome. CountKnown is false when the user
// lookup failed or the search step errored, in which case Count and
// PRs carry nothing meaningful.
type Result struct {
	Status     Status
	Count      int
	CountKnown bool
	PRs        []PullRequest
	FetchedAt  time.Time
}

// Client queries the GitHub REST API with a fixed token.
type Client struct {
	// BaseURL points at the API root and exists so tests can aim the
	// client at a local server.
	BaseURL string

	token   string
	client  *http.Client
	filters []*glob.Glob
}

// NewClient returns a client for the given token.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// SetRepoFilter restricts the fallback repo walk to repos whose
// full_name matches one of the glob patterns. Unparseable patterns are
// logged and skipped; an empty filter admits everything.
func (c *Client) SetRepoFilter(patterns []string) {
	c.filters = nil
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			log.Printf("chrono github: bad repo_filter pattern %q: %v", p, err)
			continue
		}
		c.filters = append(c.filters, g)
	}
}

func (c *Client) repoAllowed(fullName string) bool {
	if len(c.filters) == 0 {
		return true
	}
	for _, g := range c.filters {
		if g.MatchString(fullName) {
			return true
		}
	}
	return false
}

type userResponse struct {
	Login string `json:"login"`
}

type searchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Title   string `json:"title"`
		HTMLURL string `json:"html_url"`
	} `json:"items"`
}

type repoResponse struct {
	FullName string `json:"full_name"`
}

type pullResponse struct {
	Title     string `json:"title"`
	HTMLURL   string `json:"html_url"`
	UpdatedAt string `json:"updated_at"`
	User      struct {
		Login string `json:"login"`
	} `json:"user"`
}

// FetchOpenPRs resolves the token's user, then asks the search API for
// their newest open pull requests. When search returns nothing it
// falls back to walking the user's most recently touched repos, which
// catches organizations where issue search is restricted. Failures
// degrade instead of erroring: a bad token reports disconnected, a
// failed search reports connected with the count unknown.
func (c *Client) FetchOpenPRs(ctx context.Context) Result {
	res := Result{Status: StatusDisconnected, FetchedAt: time.Now()}

	var user userResponse
	if err := c.get(ctx, c.BaseURL+"/user", &user); err != nil {
		log.Printf("chrono github: user lookup failed: %v", err)
		return res
	}
	if user.Login == "" {
		log.Printf("chrono github: user lookup returned no login")
		return res
	}
	res.Status = StatusConnected

	var search searchResponse
	searchURL := fmt.Sprintf(
		"%s/search/issues?q=is:pr+is:open+author:%s&per_page=%d&sort=updated&order=desc",
		c.BaseURL, user.Login, maxOverlayPRs,
	)
	if err := c.get(ctx, searchURL, &search); err != nil {
		log.Printf("chrono github: pull request search failed: %v", err)
		return res
	}
	res.Count = search.TotalCount
	res.CountKnown = true

	prs := make([]PullRequest, 0, maxOverlayPRs)
	for _, item := range search.Items {
		if item.Title == "" || item.HTMLURL == "" {
			continue
		}
		prs = append(prs, PullRequest{Title: item.Title, URL: item.HTMLURL})
		if len(prs) == maxOverlayPRs {
			break
		}
	}

	if len(prs) == 0 {
		prs = c.collectRepoPRs(ctx, user.Login)
		if len(prs) > res.Count {
			res.Count = len(prs)
		}
	}
	res.PRs = prs
	return res
}

// collectRepoPRs walks the user's recently updated repos and gathers
// open pull requests they authored, newest first. Best effort only;
// repos that error are skipped.
func (c *Client) collectRepoPRs(ctx context.Context, login string) []PullRequest {
	var repos []repoResponse
	reposURL := c.BaseURL + "/user/repos?affiliation=owner,collaborator,organization_member&per_page=50&sort=updated"
	if err := c.get(ctx, reposURL, &repos); err != nil {
		log.Printf("chrono github: repo listing failed: %v", err)
		return nil
	}
	if len(repos) > maxFallbackRepos {
		repos = repos[:maxFallbackRepos]
	}

	type dated struct {
		updated string
		pr      PullRequest
	}
	var matches []dated
	for _, repo := range repos {
		if repo.FullName == "" || !c.repoAllowed(repo.FullName) {
			continue
		}
		var pulls []pullResponse
		pullsURL := fmt.Sprintf("%s/repos/%s/pulls?state=open&per_page=10&sort=updated&direction=desc", c.BaseURL, repo.FullName)
		if err := c.get(ctx, pullsURL, &pulls); err != nil {
			continue
		}
		for _, p := range pulls {
			if p.User.Login != login || p.Title == "" || p.HTMLURL == "" {
				continue
			}
			matches = append(matches, dated{updated: p.UpdatedAt, pr: PullRequest{Title: p.Title, URL: p.HTMLURL}})
		}
	}

	// ISO 8601 timestamps sort lexically, newest first after reversal.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].updated > matches[j].updated
	})

	prs := make([]PullRequest, 0, maxOverlayPRs)
	for _, m := range matches {
		prs = append(prs, m.pr)
		if len(prs) == maxOverlayPRs {
			break
		}
	}
	return prs
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GitHub API error: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
