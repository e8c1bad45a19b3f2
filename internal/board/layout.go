package board

import "github.com/dmytropaduchak/chrono/internal/glyph"

// spacing is the gap between neighboring glyphs, in grid columns.
// Combined with trimmed glyph widths it keeps adjacent characters from
// ever sharing a column.
const spacing = 1

// Rect is a row/column aligned region of the grid, used to keep
// speckles out of the areas text was stamped into.
type Rect struct {
	Row, Col int
	H, W     int
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.H <= 0 || r.W <= 0
}

// Contains reports whether (row, col) lies inside the rect.
func (r Rect) Contains(row, col int) bool {
	return !r.Empty() &&
		row >= r.Row && row < r.Row+r.H &&
		col >= r.Col && col < r.Col+r.W
}

// Measure returns the width of text in grid columns: trimmed glyph
// widths joined by the inter-glyph gap. Spaces and unknown runes
// advance by the space width.
func Measure(text string) int {
	width, count := 0, 0
	for _, ch := range text {
		width += glyph.Width(glyph.Pattern(ch)) + spacing
		count++
	}
	if count > 0 {
		width -= spacing
	}
	return width
}

// CenterCol returns the starting column that centers text on a grid of
// the given width. Text wider than the grid starts at column zero.
func CenterCol(width int, text string) int {
	col := (width - Measure(text)) / 2
	if col < 0 {
		col = 0
	}
	return col
}

// DrawText stamps text into buf starting at (row, col), glyphs drawn
// in state. Glyphs are placed whole, left to right; the first glyph
// that would cross the right edge is dropped along with everything
// after it, so an over-long string renders as a clean prefix instead
// of failing. The returned rect covers what was actually drawn and is
// empty when nothing was.
func DrawText(buf *Buffer, text string, row, col int, state CellState) Rect {
	cursor := col
	if cursor < 0 {
		cursor = 0
	}
	minCol, maxCol := buf.Width, -1
	for _, ch := range text {
		bm := glyph.Pattern(ch)
		gmin, gmax, ok := glyph.Bounds(bm)
		if !ok {
			if cursor+glyph.SpaceCols > buf.Width {
				break
			}
			cursor += glyph.SpaceCols + spacing
			continue
		}
		width := gmax - gmin + 1
		if cursor+width > buf.Width {
			break
		}
		for r := 0; r < glyph.Rows; r++ {
			for c := gmin; c <= gmax; c++ {
				if glyph.Set(bm, r, c) {
					buf.Set(row+r, cursor+(c-gmin), state)
				}
			}
		}
		if cursor < minCol {
			minCol = cursor
		}
		if cursor+width-1 > maxCol {
			maxCol = cursor + width - 1
		}
		cursor += width + spacing
	}
	if maxCol < 0 {
		return Rect{}
	}
	return Rect{Row: row, Col: minCol, H: glyph.Rows, W: maxCol - minCol + 1}
}
