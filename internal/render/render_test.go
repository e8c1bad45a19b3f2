package render

import (
	"strings"
	"testing"
	"time"

	"github.com/dmytropaduchak/chrono/internal/board"
	"github.com/dmytropaduchak/chrono/internal/github"
	"github.com/dmytropaduchak/chrono/internal/theme"
	"github.com/micro-editor/tcell/v2"
	"github.com/stretchr/testify/assert"
)

// newTestScreen creates an initialized SimulationScreen of the given size
func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	sim := tcell.NewSimulationScreen("")
	if err := sim.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	sim.SetSize(w, h)
	return sim
}

// screenLine collects the primary runes of one screen row into a string
func screenLine(sim tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := sim.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func newTestFrame() Frame {
	return Frame{
		Board:    board.NewBuffer(board.DefaultWidth, board.DefaultHeight),
		Caption:  "Sun 24 Aug 2026",
		Clock:    "14:07:23",
		Selected: -1,
		Now:      time.Now(),
	}
}

func TestDrawBoardCenteredTwoColumnsPerCell(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	th := theme.New(theme.DefaultBackground, theme.Palette[0])
	r := New(th)

	f := newTestFrame()
	f.Board.Set(0, 0, board.CellLit)
	f.Board.Set(2, 7, board.CellLit)
	r.Draw(sim, f)

	// 40 cells at 2 columns each on a 100 column screen start at x=10.
	// Board plus gap and caption is 19 rows, so the block starts at y=5.
	ch, _, st, _ := sim.GetContent(10, 5)
	assert.Equal(t, CellRune, ch, "lit cell should be drawn as a square")
	assert.Equal(t, th.LitAt(0, 0), st, "lit cell should use the jittered lit style")

	// Row and column must not swap on the way to the screen: the cell at
	// row 2 column 7 lands at x=10+7*2, y=5+2
	ch, _, st, _ = sim.GetContent(24, 7)
	assert.Equal(t, CellRune, ch)
	assert.Equal(t, th.LitAt(7, 2), st)
	ch, _, st, _ = sim.GetContent(14, 12)
	assert.Equal(t, CellRune, ch)
	assert.Equal(t, th.Unlit(), st, "the transposed position stays unlit")

	// Unlit cells still show the dark heatmap square
	ch, _, st, _ = sim.GetContent(12, 5)
	assert.Equal(t, CellRune, ch, "unlit cell should still be drawn")
	assert.Equal(t, th.Unlit(), st, "unlit cell should use the unlit shade")

	// The gutter column between cells stays background
	ch, _, st, _ = sim.GetContent(11, 5)
	assert.Equal(t, ' ', ch, "gutter between cells should be blank")
	assert.Equal(t, th.Fill(), st)
}

func TestNarrowScreenFallsBackToOneColumnPerCell(t *testing.T) {
	sim := newTestScreen(t, 50, 30)
	defer sim.Fini()

	th := theme.New(theme.DefaultBackground, theme.Palette[0])
	r := New(th)

	f := newTestFrame()
	f.Board.Set(0, 0, board.CellLit)
	f.Board.Set(0, 1, board.CellDim)
	r.Draw(sim, f)

	// 40 cells no longer fit at 2 columns, so each cell is 1 column and
	// the board starts at x=5
	ch, _, st, _ := sim.GetContent(5, 5)
	assert.Equal(t, CellRune, ch)
	assert.Equal(t, th.LitAt(0, 0), st)

	// Adjacent cell immediately follows, no gutter
	ch, _, st, _ = sim.GetContent(6, 5)
	assert.Equal(t, CellRune, ch)
	assert.Equal(t, th.Dim(), st)
}

func TestCaptionCenteredBelowBoard(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))
	r.Draw(sim, newTestFrame())

	// Caption row sits one blank row under the board
	line := screenLine(sim, 5+board.DefaultHeight+1, 100)
	assert.Contains(t, line, "Sun 24 Aug 2026 · 14:07:23")

	// Without the overlay there is no PR segment
	assert.NotContains(t, line, "PRs:")
}

func TestCaptionShowsOverlayState(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.ShowOverlay = true
	f.Overlay = github.Overlay{
		Status:     github.StatusConnected,
		Count:      3,
		CountKnown: true,
		FetchedAt:  time.Now().Add(-2 * time.Minute),
	}
	r.Draw(sim, f)

	line := screenLine(sim, 5+board.DefaultHeight+1, 100)
	assert.Contains(t, line, "● PRs: 3")
	assert.Contains(t, line, "2 minutes ago")
}

func TestCaptionShowsUnknownCount(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.ShowOverlay = true
	r.Draw(sim, f)

	line := screenLine(sim, 5+board.DefaultHeight+1, 100)
	assert.Contains(t, line, "PRs: ?", "count should show ? before the first successful fetch")
}

func TestCaptionShowsSpinnerWhileFetching(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.ShowOverlay = true
	f.Overlay.InFlight = true
	r.Draw(sim, f)

	line := screenLine(sim, 5+board.DefaultHeight+1, 100)
	assert.True(t, strings.ContainsAny(line, string(spinnerFrames)),
		"caption should contain a spinner frame while a fetch is in flight")
}

func TestCaptionShowsUpdateHint(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.UpdateTag = "v0.2.0"
	r.Draw(sim, f)

	line := screenLine(sim, 5+board.DefaultHeight+1, 100)
	assert.Contains(t, line, "update v0.2.0 available")
}

func TestPRListRowsAndHitRegions(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.ShowOverlay = true
	f.Selected = 0
	f.JiraBaseURL = "https://jira.example.com"
	f.Overlay = github.Overlay{
		Status:     github.StatusConnected,
		Count:      2,
		CountKnown: true,
		PRs: []github.PullRequest{
			{Title: "ABC-123 fix the widget", URL: "https://github.com/o/r/pull/1"},
			{Title: "Plain refactor", URL: "https://github.com/o/r/pull/2"},
		},
	}
	r.Draw(sim, f)

	// Two PR rows shift the centered block up: total height 22 on a 30
	// row screen puts the board at y=4 and the list at y=24
	row0 := screenLine(sim, 24, 100)
	row1 := screenLine(sim, 25, 100)
	assert.Contains(t, row0, "> ABC-123 fix the widget", "selected row carries the marker")
	assert.Contains(t, row1, "Plain refactor")
	assert.NotContains(t, row1, ">", "unselected row has no marker")

	// Rows are left-aligned with the board edge at x=10
	assert.Equal(t, 0, r.PRRowAt(10, 24))
	assert.Equal(t, 1, r.PRRowAt(50, 25))
	assert.Equal(t, -1, r.PRRowAt(10, 26), "below the list is not a row")
	assert.Equal(t, -1, r.PRRowAt(5, 24), "left of the list is not a row")

	// Clicking the issue key opens the tracker, clicking elsewhere in the
	// row opens the pull request
	url, ok := r.URLAt(13, 24)
	assert.True(t, ok)
	assert.Equal(t, "https://jira.example.com/browse/ABC-123", url)

	url, ok = r.URLAt(30, 24)
	assert.True(t, ok)
	assert.Equal(t, "https://github.com/o/r/pull/1", url)

	url, ok = r.URLAt(30, 25)
	assert.True(t, ok)
	assert.Equal(t, "https://github.com/o/r/pull/2", url)

	_, ok = r.URLAt(0, 0)
	assert.False(t, ok, "board area is not clickable")
}

func TestPRListHiddenWithoutOverlay(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.ShowOverlay = false
	f.Overlay.PRs = []github.PullRequest{{Title: "Hidden", URL: "u"}}
	r.Draw(sim, f)

	for y := 0; y < 30; y++ {
		assert.NotContains(t, screenLine(sim, y, 100), "Hidden")
	}
	_, ok := r.URLAt(10, 24)
	assert.False(t, ok)
}

func TestLongTitleTruncatedToBoardWidth(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.ShowOverlay = true
	f.Overlay.CountKnown = true
	f.Overlay.Count = 1
	f.Overlay.PRs = []github.PullRequest{
		{Title: strings.Repeat("long title ", 12), URL: "u"},
	}
	r.Draw(sim, f)

	// One PR row: total height 21, board top y=4, list row y=24
	line := screenLine(sim, 24, 100)
	assert.Contains(t, line, "…", "overlong title should be truncated with an ellipsis")

	// Nothing may spill past the board's right edge at x=90
	assert.Equal(t, strings.Repeat(" ", 10), string([]rune(line)[90:]), "text must not extend past the board edge")
}

func TestStaleHitRegionsReplacedOnRedraw(t *testing.T) {
	sim := newTestScreen(t, 100, 30)
	defer sim.Fini()

	r := New(theme.New(theme.DefaultBackground, theme.Palette[0]))

	f := newTestFrame()
	f.ShowOverlay = true
	f.Overlay.CountKnown = true
	f.Overlay.Count = 1
	f.Overlay.PRs = []github.PullRequest{{Title: "One", URL: "u1"}}
	r.Draw(sim, f)

	_, ok := r.URLAt(10, 24)
	assert.True(t, ok)

	// Redraw with the list gone clears the old regions
	f.Overlay.PRs = nil
	f.Overlay.Count = 0
	r.Draw(sim, f)

	_, ok = r.URLAt(10, 24)
	assert.False(t, ok, "hit regions from the previous frame must not survive")
	assert.Equal(t, -1, r.PRRowAt(10, 24))
}
