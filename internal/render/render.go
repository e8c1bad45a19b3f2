// Package render draws a composed board and its caption to a tcell screen.
// The renderer redraws the whole frame each time; tcell diffs on Show, so
// there is no incremental damage tracking here.
package render

import (
	"fmt"
	"time"

	"github.com/dmytropaduchak/chrono/internal/board"
	"github.com/dmytropaduchak/chrono/internal/github"
	"github.com/dmytropaduchak/chrono/internal/theme"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/micro-editor/tcell/v2"
)

// Layout constants
const (
	CellRune   = '■'
	MaxPRRows  = 3
	captionGap = 1 // blank rows between board and caption
	listGap    = 1 // blank rows between caption and PR list
)

// Spinner animation frames (braille dots)
var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Region is a rectangular screen area used for click detection
type Region struct {
	X, Y, Width, Height int
}

// Contains reports whether the screen position falls inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Hit is a clickable region mapped to the URL it opens
type Hit struct {
	Region Region
	URL    string
}

// Frame carries everything needed to draw one frame
type Frame struct {
	Board       *board.Buffer
	Caption     string // "Sun 24 Aug 2026"
	Clock       string // full time with seconds, "14:07:23"
	ShowOverlay bool   // false when no GitHub token is configured
	Overlay     github.Overlay
	Selected    int    // selected PR row, -1 for none
	JiraBaseURL string // empty disables issue key links
	UpdateTag   string // non-empty shows the update hint
	Now         time.Time
}

// Renderer draws frames and records hit regions for mouse handling
type Renderer struct {
	theme *theme.Theme

	screenW int
	screenH int
	cellW   int // terminal columns per board cell, 2 or 1

	rowHits []Hit
	keyHits []Hit
	rowYs   []int // screen row of each visible PR row
	listX   int
	listW   int
}

// New creates a renderer drawing with the given theme. The theme pointer is
// retained, so accent changes show up on the next Draw.
func New(th *theme.Theme) *Renderer {
	return &Renderer{theme: th}
}

// Draw renders a full frame. Hit regions from the previous frame are replaced.
func (r *Renderer) Draw(screen tcell.Screen, f Frame) {
	r.screenW, r.screenH = screen.Size()
	r.rowHits = r.rowHits[:0]
	r.keyHits = r.keyHits[:0]
	r.rowYs = r.rowYs[:0]

	r.clearScreen(screen)

	// Two columns per cell keeps the squares roughly square. Narrow
	// terminals fall back to one column per cell.
	r.cellW = 2
	if f.Board.Width*2 > r.screenW {
		r.cellW = 1
	}

	boardW := f.Board.Width * r.cellW
	boardX := (r.screenW - boardW) / 2
	if boardX < 0 {
		boardX = 0
	}

	rows := 0
	if f.ShowOverlay && len(f.Overlay.PRs) > 0 {
		rows = len(f.Overlay.PRs)
		if rows > MaxPRRows {
			rows = MaxPRRows
		}
	}

	totalH := f.Board.Height + captionGap + 1
	if rows > 0 {
		totalH += listGap + rows
	}
	top := (r.screenH - totalH) / 2
	if top < 0 {
		top = 0
	}

	r.drawBoard(screen, f.Board, boardX, top)

	captionY := top + f.Board.Height + captionGap
	r.drawCaption(screen, f, captionY)

	if rows > 0 {
		r.drawPRList(screen, f, boardX, captionY+listGap+1, boardW, rows)
	}
}

// clearScreen fills the screen with the background color
func (r *Renderer) clearScreen(screen tcell.Screen) {
	fill := r.theme.Fill()
	for y := 0; y < r.screenH; y++ {
		for x := 0; x < r.screenW; x++ {
			screen.SetContent(x, y, ' ', nil, fill)
		}
	}
}

// drawBoard renders the full cell grid. Every cell is drawn, unlit ones in
// the dark shade, so the heatmap backdrop is always visible.
func (r *Renderer) drawBoard(screen tcell.Screen, buf *board.Buffer, x0, y0 int) {
	fill := r.theme.Fill()
	for row := 0; row < buf.Height; row++ {
		y := y0 + row
		if y >= r.screenH {
			break
		}
		for col := 0; col < buf.Width; col++ {
			x := x0 + col*r.cellW
			if x >= r.screenW {
				break
			}
			screen.SetContent(x, y, CellRune, nil, r.cellStyle(buf.At(row, col), col, row))
			if r.cellW == 2 && x+1 < r.screenW {
				screen.SetContent(x+1, y, ' ', nil, fill)
			}
		}
	}
}

// cellStyle maps a cell state to its themed style
func (r *Renderer) cellStyle(s board.CellState, col, row int) tcell.Style {
	switch s {
	case board.CellLit:
		return r.theme.LitAt(col, row)
	case board.CellDim:
		return r.theme.Dim()
	case board.CellPulseHigh:
		return r.theme.Pulse(2)
	case board.CellPulseMid:
		return r.theme.Pulse(1)
	case board.CellPulseLow:
		return r.theme.Pulse(0)
	case board.CellNoise:
		return r.theme.Noise()
	default:
		return r.theme.Unlit()
	}
}

// segment is a run of caption text drawn in one style
type segment struct {
	text  string
	style tcell.Style
}

// drawCaption renders the centered status line below the board
func (r *Renderer) drawCaption(screen tcell.Screen, f Frame, y int) {
	segs := []segment{
		{f.Caption, r.theme.TextDim()},
		{" · ", r.theme.TextDim()},
		{f.Clock, r.theme.Text()},
	}

	if f.ShowOverlay {
		// Connected shows the dot in the accent color, anything else in
		// plain white
		dotStyle := r.theme.Text()
		if f.Overlay.Status == github.StatusConnected {
			dotStyle = r.theme.AccentText()
		}
		segs = append(segs,
			segment{"   ", r.theme.TextDim()},
			segment{"●", dotStyle},
			segment{" PRs: " + f.Overlay.CountLabel(), r.theme.Text()},
		)
		if !f.Overlay.FetchedAt.IsZero() {
			segs = append(segs, segment{" · " + humanize.Time(f.Overlay.FetchedAt), r.theme.TextDim()})
		}
		if f.Overlay.InFlight {
			idx := int(f.Now.UnixMilli()/80) % len(spinnerFrames)
			if idx < 0 {
				idx += len(spinnerFrames)
			}
			segs = append(segs, segment{" " + string(spinnerFrames[idx]), r.theme.AccentText()})
		}
	}

	if f.UpdateTag != "" {
		segs = append(segs, segment{fmt.Sprintf("   update %s available", f.UpdateTag), r.theme.AccentText()})
	}

	width := 0
	for _, s := range segs {
		width += runewidth.StringWidth(s.text)
	}

	x := (r.screenW - width) / 2
	if x < 0 {
		x = 0
	}
	for _, s := range segs {
		x = r.drawText(screen, x, y, s.text, s.style)
	}
}

// drawPRList renders up to MaxPRRows pull request titles, left-aligned with
// the board. Each row and any issue key in it become clickable regions.
func (r *Renderer) drawPRList(screen tcell.Screen, f Frame, x0, y0, maxWidth, rows int) {
	r.listX = x0
	r.listW = maxWidth

	for i := 0; i < rows; i++ {
		pr := f.Overlay.PRs[i]
		y := y0 + i
		if y >= r.screenH {
			break
		}
		r.rowYs = append(r.rowYs, y)

		prefix := "  "
		if i == f.Selected {
			prefix = "> "
		}
		x := r.drawText(screen, x0, y, prefix, r.theme.AccentText())

		title := runewidth.Truncate(pr.Title, maxWidth-len(prefix), "…")
		if key, ok := github.FindIssueKey(title); ok {
			x = r.drawText(screen, x, y, title[:key.Start], r.theme.Text())
			keyX := x
			x = r.drawText(screen, x, y, title[key.Start:key.End], r.theme.AccentText())
			r.drawText(screen, x, y, title[key.End:], r.theme.Text())
			if f.JiraBaseURL != "" {
				r.keyHits = append(r.keyHits, Hit{
					Region: Region{X: keyX, Y: y, Width: x - keyX, Height: 1},
					URL:    github.BrowseURL(f.JiraBaseURL, key.Key),
				})
			}
		} else {
			r.drawText(screen, x, y, title, r.theme.Text())
		}

		r.rowHits = append(r.rowHits, Hit{
			Region: Region{X: x0, Y: y, Width: maxWidth, Height: 1},
			URL:    pr.URL,
		})
	}
}

// drawText draws a string and returns the x position after its last rune
func (r *Renderer) drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) int {
	if y < 0 || y >= r.screenH {
		return x
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > r.screenW {
			break
		}
		if x >= 0 {
			screen.SetContent(x, y, ch, nil, style)
		}
		x += w
	}
	return x
}

// URLAt returns the URL under the given screen position. Issue key regions
// sit inside their row region and win the overlap.
func (r *Renderer) URLAt(x, y int) (string, bool) {
	for _, h := range r.keyHits {
		if h.Region.Contains(x, y) {
			return h.URL, true
		}
	}
	for _, h := range r.rowHits {
		if h.Region.Contains(x, y) {
			return h.URL, true
		}
	}
	return "", false
}

// PRRowAt returns the PR list index at the given screen position, or -1
func (r *Renderer) PRRowAt(x, y int) int {
	if x < r.listX || x >= r.listX+r.listW {
		return -1
	}
	for i, rowY := range r.rowYs {
		if y == rowY {
			return i
		}
	}
	return -1
}
