package theme

// Shades is the premixed palette as #rrggbb strings, for renderers
// that aren't terminals, such as the PNG snapshot tool.
type Shades struct {
	Background string
	Unlit      string
	Dim        string
	Noise      string
	Pulse      [3]string
	Text       string
	TextDim    string
	Accent     string
}

// Shades returns the current accent's premixed colors. The blend
// factors mirror SetAccent.
func (t *Theme) Shades() Shades {
	s := Shades{
		Background: t.backgroundHex,
		Unlit:      blendHex(t.backgroundHex, unlitHex, 1.0),
		Dim:        blendHex(t.backgroundHex, t.accent.Hex, dimAlpha),
		Noise:      blendHex(t.backgroundHex, t.accent.Hex, noiseAlpha),
		Text:       blendHex(t.backgroundHex, textHex, 0.92),
		TextDim:    blendHex(t.backgroundHex, textHex, 0.55),
		Accent:     t.accent.Hex,
	}
	for i, alpha := range pulseAlphas {
		s.Pulse[i] = blendHex(t.backgroundHex, t.accent.Hex, alpha)
	}
	return s
}

// LitHexAt is the lit cell color at (col, row) as a hex string, with
// the same per-position jitter as LitAt.
func (t *Theme) LitHexAt(col, row int) string {
	return t.litHex(col, row)
}
