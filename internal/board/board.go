// Package board holds the clock's cell grid: a fixed-size buffer of
// heatmap cells plus the layout pass that stamps pixel glyphs, pulse
// speckles and background noise into it. The board knows nothing about
// colors or screens; rendering happens elsewhere.
package board

// Default grid size. 40 columns fits the full hh:mm:ss line with its
// one-column glyph gaps; 17 rows fits both bands with margins.
const (
	DefaultWidth  = 40
	DefaultHeight = 17
)

// CellState is the visual class of one grid cell, in ascending
// priority. Set only ever upgrades a cell, so draw order can never
// erase brighter content with dimmer content.
type CellState uint8

const (
	CellOff CellState = iota
	CellNoise
	CellPulseLow
	CellPulseMid
	CellPulseHigh
	CellDim
	CellLit
)

// Buffer is a row-major grid of cell states. Dimensions are fixed at
// construction; a frame starts with Reset and stamps content on top.
type Buffer struct {
	Width  int
	Height int

	cells []CellState
}

// NewBuffer returns an empty buffer. Non-positive dimensions collapse
// to a single cell so callers can't construct an unusable board.
func NewBuffer(width, height int) *Buffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Buffer{
		Width:  width,
		Height: height,
		cells:  make([]CellState, width*height),
	}
}

// Reset clears every cell back to CellOff.
func (b *Buffer) Reset() {
	for i := range b.cells {
		b.cells[i] = CellOff
	}
}

// InBounds reports whether (row, col) lies on the grid.
func (b *Buffer) InBounds(row, col int) bool {
	return row >= 0 && row < b.Height && col >= 0 && col < b.Width
}

// At returns the state at (row, col). Out-of-range positions read as
// CellOff.
func (b *Buffer) At(row, col int) CellState {
	if !b.InBounds(row, col) {
		return CellOff
	}
	return b.cells[row*b.Width+col]
}

// Set upgrades the cell at (row, col) to s. Writes outside the grid
// and writes of a lower-priority state are dropped.
func (b *Buffer) Set(row, col int, s CellState) {
	if !b.InBounds(row, col) {
		return
	}
	idx := row*b.Width + col
	if s > b.cells[idx] {
		b.cells[idx] = s
	}
}

// Count returns how many cells currently hold s.
func (b *Buffer) Count(s CellState) int {
	n := 0
	for _, c := range b.cells {
		if c == s {
			n++
		}
	}
	return n
}
