package github

import (
	"strconv"
	"time"
)

// Overlay is the pull request state the renderer reads. It is owned by
// the event loop goroutine: fetch goroutines never touch it, they send
// Results over a channel and the loop calls Apply.
type Overlay struct {
	Status     Status
	Count      int
	CountKnown bool
	PRs        []PullRequest
	FetchedAt  time.Time
	InFlight   bool
}

// Apply folds a fetch result into the overlay. Failures update the
// connection status but never erase the last known count or list, so
// a network blip shows as "disconnected" alongside stale-but-useful
// data, and the count stays unknown only until the first success.
func (o *Overlay) Apply(res Result) {
	o.InFlight = false
	o.FetchedAt = res.FetchedAt
	o.Status = res.Status
	if res.CountKnown {
		o.Count = res.Count
		o.CountKnown = true
		o.PRs = res.PRs
	}
}

// CountLabel renders the open PR count for the caption, "?" while it
// has never been known.
func (o *Overlay) CountLabel() string {
	if !o.CountKnown {
		return "?"
	}
	return strconv.Itoa(o.Count)
}
