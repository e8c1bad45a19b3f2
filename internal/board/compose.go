package board

import (
	"math/rand"

	"github.com/dmytropaduchak/chrono/internal/glyph"
)

const (
	// bandGap is the number of blank rows between the time and date
	// bands.
	bandGap = 1

	// markerGap is the number of columns between the time line and the
	// AM/PM marker.
	markerGap = 2

	// speckleCount is how many pulse cells each minute scatters.
	speckleCount = 9
)

// Input is everything one frame of the board depends on.
type Input struct {
	Time string
	AMPM string
	Date string

	// Seed drives the speckle scatter, typically the current minute so
	// the pattern shifts once a minute.
	Seed int

	// NoiseDensity is the per-cell probability of background noise.
	// Zero disables noise entirely.
	NoiseDensity float64

	// Rng drives the noise sprinkle. Nil disables noise.
	Rng *rand.Rand
}

// Bands returns the top rows of the time and date bands for a grid of
// the given height. Both bands are glyph.Rows tall and never overlap.
func Bands(height int) (timeTop, dateTop int) {
	content := 2*glyph.Rows + bandGap
	top := 0
	if height > content {
		top = (height - content) / 2
	}
	return top, top + glyph.Rows + bandGap
}

// Compose builds one full frame: reset, time band with optional AM/PM
// marker, date band, minute speckles, then noise. Everything stays
// inside the buffer; over-wide lines clip per DrawText.
func Compose(buf *Buffer, in Input) {
	buf.Reset()
	timeTop, dateTop := Bands(buf.Height)

	blocked := make([]Rect, 0, 3)
	block := func(r Rect) {
		if !r.Empty() {
			blocked = append(blocked, r)
		}
	}

	timeWidth := Measure(in.Time)
	if in.AMPM != "" {
		combined := timeWidth + markerGap + Measure(in.AMPM)
		if combined <= buf.Width {
			col := (buf.Width - combined) / 2
			block(DrawText(buf, in.Time, timeTop, col, CellLit))
			block(DrawText(buf, in.AMPM, timeTop, col+timeWidth+markerGap, CellDim))
		} else {
			// The marker is the trailing element, so it is the first
			// thing to go on a narrow grid.
			block(DrawText(buf, in.Time, timeTop, CenterCol(buf.Width, in.Time), CellLit))
		}
	} else {
		block(DrawText(buf, in.Time, timeTop, CenterCol(buf.Width, in.Time), CellLit))
	}

	block(DrawText(buf, in.Date, dateTop, CenterCol(buf.Width, in.Date), CellLit))

	Speckle(buf, in.Seed, blocked)
	Sprinkle(buf, in.NoiseDensity, in.Rng)
}

// Speckle scatters up to speckleCount pulse cells over the grid,
// deterministically from seed. Picks land on even-parity positions in
// three brightness tiers; picks inside a blocked rect are discarded,
// not relocated, so the scatter thins out rather than crowding the
// text.
func Speckle(buf *Buffer, seed int, blocked []Rect) {
	total := buf.Width * buf.Height
	if total <= 0 {
		return
	}

	type pos struct{ row, col int }
	picks := make([]pos, 0, speckleCount)
	taken := func(row, col int) bool {
		for _, p := range picks {
			if p.row == row && p.col == col {
				return true
			}
		}
		return false
	}

	for i := 0; i < speckleCount; i++ {
		idx := (seed*997 + i*379) % total
		if idx < 0 {
			idx += total
		}
		for probe := 0; probe < total; probe++ {
			row := idx / buf.Width
			col := idx % buf.Width
			if (row+col)&1 == 0 && !taken(row, col) {
				picks = append(picks, pos{row, col})
				break
			}
			idx = (idx + 1) % total
		}
	}

	for i, p := range picks {
		inside := false
		for _, r := range blocked {
			if r.Contains(p.row, p.col) {
				inside = true
				break
			}
		}
		if inside {
			continue
		}
		tier := CellPulseLow
		switch {
		case i >= 6:
			tier = CellPulseHigh
		case i >= 3:
			tier = CellPulseMid
		}
		buf.Set(p.row, p.col, tier)
	}
}

// Sprinkle marks still-empty cells as noise, each independently with
// probability density. A nil rng or non-positive density yields no
// noise at all.
func Sprinkle(buf *Buffer, density float64, rng *rand.Rand) {
	if density <= 0 || rng == nil {
		return
	}
	if density > 1 {
		density = 1
	}
	for row := 0; row < buf.Height; row++ {
		for col := 0; col < buf.Width; col++ {
			if buf.At(row, col) != CellOff {
				continue
			}
			if rng.Float64() < density {
				buf.Set(row, col, CellNoise)
			}
		}
	}
}
