// Package theme owns every color the clock draws with: the dark
// heatmap backdrop, the cycling accent palette, and the premixed
// shades for noise, speckles and the meridiem indicator.
package theme

import "github.com/micro-editor/tcell/v2"

// Accent is one selectable foreground color.
type Accent struct {
	Name string
	Hex  string
}

// Palette is the built-in accent cycle. The first four are the GitHub
// contribution greens, followed by blues, amber, coral, orchid and rose.
var Palette = []Accent{
	{Name: "pine", Hex: "#176b33"},
	{Name: "grass", Hex: "#30a14f"},
	{Name: "leaf", Hex: "#40c463"},
	{Name: "mint", Hex: "#9ce8a8"},
	{Name: "ocean", Hex: "#2e87e0"},
	{Name: "sky", Hex: "#70abf5"},
	{Name: "amber", Hex: "#f5ad3d"},
	{Name: "coral", Hex: "#f28c66"},
	{Name: "orchid", Hex: "#c78ff2"},
	{Name: "rose", Hex: "#e073bd"},
}

// Backdrop colors of the board.
const (
	DefaultBackground = "#0f1214"
	unlitHex          = "#1f2126"
	textHex           = "#ffffff"
)

// Opacity constants, premixed against the background by blendHex.
// litBase with litJitter gives lit cells the uneven, hand-placed look
// of a real contribution graph.
const (
	litBase    = 0.82
	litJitter  = 0.4
	litFloor   = 0.2
	dimAlpha   = 0.75
	noiseAlpha = 0.16
)

// Pulse speckle brightness tiers, low to high.
var pulseAlphas = [3]float64{0.45, 0.72, 1.0}

// Cycle steps through a list of accents, wrapping at the end.
type Cycle struct {
	accents []Accent
	idx     int
}

// NewCycle builds a cycle over accents, starting at the accent named
// start. An empty or unknown name starts at the first entry; found is
// false in that case so the caller can log it.
func NewCycle(accents []Accent, start string) (*Cycle, bool) {
	c := &Cycle{accents: accents}
	if len(c.accents) == 0 {
		c.accents = Palette
	}
	if start == "" {
		return c, true
	}
	for i, a := range c.accents {
		if a.Name == start {
			c.idx = i
			return c, true
		}
	}
	return c, false
}

// Current returns the active accent.
func (c *Cycle) Current() Accent {
	return c.accents[c.idx]
}

// Next advances to the following accent, wrapping past the last one,
// and returns it.
func (c *Cycle) Next() Accent {
	c.idx = (c.idx + 1) % len(c.accents)
	return c.accents[c.idx]
}

// Len returns the number of accents in the cycle.
func (c *Cycle) Len() int {
	return len(c.accents)
}

// Theme converts the current accent and backdrop into tcell styles.
// All styles share the backdrop as their background so the board reads
// as one surface.
type Theme struct {
	backgroundHex string
	accent        Accent

	background tcell.Color
	fill       tcell.Style
	unlit      tcell.Style
	dim        tcell.Style
	noise      tcell.Style
	pulse      [3]tcell.Style
	text       tcell.Style
	textDim    tcell.Style
	accentText tcell.Style
}

// New builds a theme over the given background hex (empty means the
// default backdrop) with the given accent.
func New(backgroundHex string, accent Accent) *Theme {
	t := &Theme{}
	if backgroundHex == "" {
		backgroundHex = DefaultBackground
	}
	t.backgroundHex = backgroundHex
	t.SetAccent(accent)
	return t
}

// SetAccent switches the accent and rebuilds the derived styles.
func (t *Theme) SetAccent(accent Accent) {
	t.accent = accent
	t.background = TerminalColor(t.backgroundHex)
	base := tcell.StyleDefault.Background(t.background)

	t.fill = base.Foreground(t.background)
	t.unlit = base.Foreground(TerminalColor(blendHex(t.backgroundHex, unlitHex, 1.0)))
	t.dim = base.Foreground(TerminalColor(blendHex(t.backgroundHex, accent.Hex, dimAlpha)))
	t.noise = base.Foreground(TerminalColor(blendHex(t.backgroundHex, accent.Hex, noiseAlpha)))
	for i, alpha := range pulseAlphas {
		t.pulse[i] = base.Foreground(TerminalColor(blendHex(t.backgroundHex, accent.Hex, alpha)))
	}
	t.text = base.Foreground(TerminalColor(blendHex(t.backgroundHex, textHex, 0.92)))
	t.textDim = base.Foreground(TerminalColor(blendHex(t.backgroundHex, textHex, 0.55)))
	t.accentText = base.Foreground(TerminalColor(accent.Hex))
}

// Accent returns the accent the theme was last built with.
func (t *Theme) Accent() Accent {
	return t.accent
}

// Background returns the backdrop color.
func (t *Theme) Background() tcell.Color {
	return t.background
}

// Fill is the style for empty backdrop cells.
func (t *Theme) Fill() tcell.Style {
	return t.fill
}

// Unlit is the style for the heatmap's empty squares.
func (t *Theme) Unlit() tcell.Style {
	return t.unlit
}

// litHex jitters the lit brightness per position so neighboring cells
// differ slightly, like a real contribution graph.
func (t *Theme) litHex(col, row int) string {
	hash := float64((col*29+row*91)&255) / 255.0
	alpha := litBase + (hash-0.5)*2.0*litJitter
	if alpha < litFloor {
		alpha = litFloor
	} else if alpha > 1.0 {
		alpha = 1.0
	}
	return blendHex(t.backgroundHex, t.accent.Hex, alpha)
}

// LitAt returns the style for a lit cell at board position (col, row).
func (t *Theme) LitAt(col, row int) tcell.Style {
	return tcell.StyleDefault.Background(t.background).Foreground(TerminalColor(t.litHex(col, row)))
}

// Dim is the style for secondary glyphs such as the AM/PM marker.
func (t *Theme) Dim() tcell.Style {
	return t.dim
}

// Noise is the style for the faint background sparkle.
func (t *Theme) Noise() tcell.Style {
	return t.noise
}

// Pulse returns the style for a speckle tier between 0 (faint) and 2
// (full accent).
func (t *Theme) Pulse(tier int) tcell.Style {
	if tier < 0 {
		tier = 0
	} else if tier >= len(t.pulse) {
		tier = len(t.pulse) - 1
	}
	return t.pulse[tier]
}

// Text is the style for the caption and pull request titles.
func (t *Theme) Text() tcell.Style {
	return t.text
}

// TextDim is the style for de-emphasized caption fragments.
func (t *Theme) TextDim() tcell.Style {
	return t.textDim
}

// AccentText is the style for highlighted text such as issue keys and
// the connected status dot.
func (t *Theme) AccentText() tcell.Style {
	return t.accentText
}
