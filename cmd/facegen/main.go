// facegen renders one frame of the chrono board to a PNG, for docs and
// for eyeballing palettes without a terminal.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dmytropaduchak/chrono/internal/board"
	"github.com/dmytropaduchak/chrono/internal/clockface"
	"github.com/dmytropaduchak/chrono/internal/theme"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func main() {
	output := flag.String("o", "chrono-board.png", "Output PNG file")
	at := flag.String("at", "", "Time to render, 15:04:05 or RFC3339 (default: now)")
	accentName := flag.String("accent", theme.Palette[0].Name, "Accent name")
	hours := flag.String("hours", "24h", "Hour format: 24h or 12h")
	layout := flag.String("layout", "hh:mm:ss", "Time line layout: hh:mm:ss, hh:mm or mm:ss")
	width := flag.Int("width", 40, "Board width in cells")
	height := flag.Int("height", 17, "Board height in cells")
	noise := flag.Float64("noise", 0.04, "Background noise density")
	seed := flag.Int64("seed", 1, "Noise seed, for reproducible output")
	cellSize := flag.Int("cell", 14, "Cell size in pixels")
	gap := flag.Int("gap", 3, "Gap between cells in pixels")
	padding := flag.Int("padding", 24, "Padding around the board")
	withCaption := flag.Bool("caption", true, "Include the caption line")
	flag.Parse()

	now, err := parseAt(*at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -at: %v\n", err)
		os.Exit(1)
	}

	accent, ok := findAccent(*accentName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown accent %q\n", *accentName)
		fmt.Fprintf(os.Stderr, "Available: %s\n", accentNames())
		os.Exit(1)
	}

	face := clockface.New()
	if h, ok := clockface.ParseHourFormat(*hours); ok {
		face.Hours = h
	}
	if l, ok := clockface.ParseTimeFormat(*layout); ok {
		face.Layout = l
	}

	buf := board.NewBuffer(*width, *height)
	board.Compose(buf, board.Input{
		Time:         face.Time(now),
		AMPM:         face.AMPM(now),
		Date:         face.Date(now),
		Seed:         now.Minute(),
		NoiseDensity: *noise,
		Rng:          rand.New(rand.NewSource(*seed)),
	})

	th := theme.New("", accent)
	img := render(buf, th, face, now, *cellSize, *gap, *padding, *withCaption)

	outFile, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}

	b := img.Bounds()
	fmt.Printf("Generated %s (%dx%d)\n", *output, b.Dx(), b.Dy())
}

// parseAt accepts a bare clock time or a full timestamp. A bare time is
// anchored to today so the date band shows something real.
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("15:04:05", s); err == nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
	}
	return time.Parse(time.RFC3339, s)
}

func findAccent(name string) (theme.Accent, bool) {
	for _, a := range theme.Palette {
		if a.Name == name {
			return a, true
		}
	}
	return theme.Accent{}, false
}

func accentNames() string {
	names := make([]string, len(theme.Palette))
	for i, a := range theme.Palette {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func render(buf *board.Buffer, th *theme.Theme, face *clockface.Face, now time.Time, cell, gap, padding int, withCaption bool) *image.RGBA {
	shades := th.Shades()

	boardW := buf.Width*cell + (buf.Width-1)*gap
	boardH := buf.Height*cell + (buf.Height-1)*gap

	imgW := boardW + padding*2
	imgH := boardH + padding*2
	captionTop := 0
	if withCaption {
		captionTop = padding + boardH + cell
		imgH = captionTop + basicfont.Face7x13.Height + padding
	}

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	draw.Draw(img, img.Bounds(), &image.Uniform{rgba(shades.Background)}, image.Point{}, draw.Src)

	for row := 0; row < buf.Height; row++ {
		for col := 0; col < buf.Width; col++ {
			var hex string
			switch buf.At(row, col) {
			case board.CellLit:
				hex = th.LitHexAt(col, row)
			case board.CellDim:
				hex = shades.Dim
			case board.CellNoise:
				hex = shades.Noise
			case board.CellPulseLow:
				hex = shades.Pulse[0]
			case board.CellPulseMid:
				hex = shades.Pulse[1]
			case board.CellPulseHigh:
				hex = shades.Pulse[2]
			default:
				hex = shades.Unlit
			}
			x := padding + col*(cell+gap)
			y := padding + row*(cell+gap)
			draw.Draw(img, image.Rect(x, y, x+cell, y+cell), &image.Uniform{rgba(hex)}, image.Point{}, draw.Src)
		}
	}

	if withCaption {
		// Face7x13 only covers ASCII, so no middle dot here
		caption := face.Caption(now) + "  " + face.FullTime(now)
		drawCaption(img, caption, imgW, captionTop, rgba(shades.TextDim))
	}

	return img
}

func drawCaption(img *image.RGBA, text string, imgW, top int, col color.RGBA) {
	f := basicfont.Face7x13
	w := font.MeasureString(f, text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: f,
		Dot:  fixed.P((imgW-w)/2, top+f.Ascent),
	}
	d.DrawString(text)
}

func rgba(hex string) color.RGBA {
	r, g, b, ok := theme.RGB(hex)
	if !ok {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
