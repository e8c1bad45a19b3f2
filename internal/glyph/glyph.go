// Package glyph holds the fixed 5x7 pixel font the clock is drawn with.
// The set is deliberately small: digits, the uppercase letters used by
// month names and meridiem markers, a colon, and space.
package glyph

// Dimensions of every bitmap in the table.
const (
	Rows = 7
	Cols = 5

	// SpaceCols is the advance of a blank glyph. Narrower than a drawn
	// glyph so gaps read as word breaks, not missing characters.
	SpaceCols = 3
)

// Bitmap is one glyph as Rows strings of exactly Cols runes, '#' for a
// set pixel and '.' for a clear one.
type Bitmap [Rows]string

var blank = Bitmap{
	".....",
	".....",
	".....",
	".....",
	".....",
	".....",
	".....",
}

// Pixel Operator-inspired glyph shapes.
var patterns = map[rune]Bitmap{
	'0': {".###.", "#...#", "#..##", "#.#.#", "##..#", "#...#", ".###."},
	'1': {"..#..", ".##..", "..#..", "..#..", "..#..", "..#..", "#####"},
	'2': {".###.", "#...#", "....#", "...#.", "..#..", ".#...", "#####"},
	'3': {".###.", "#...#", "....#", "..##.", "....#", "#...#", ".###."},
	'4': {"...#.", "..##.", ".#.#.", "#..#.", "#####", "...#.", "...#."},
	'5': {"#####", "#....", "####.", "....#", "....#", "#...#", ".###."},
	'6': {".###.", "#...#", "#....", "####.", "#...#", "#...#", ".###."},
	'7': {"#####", "....#", "...#.", "..#..", ".#...", ".#...", ".#..."},
	'8': {".###.", "#...#", "#...#", ".###.", "#...#", "#...#", ".###."},
	'9': {".###.", "#...#", "#...#", ".####", "....#", "#...#", ".###."},
	':': {".....", ".#...", ".#...", ".....", ".#...", ".#...", "....."},
	'A': {".###.", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	'B': {"####.", "#...#", "#...#", "####.", "#...#", "#...#", "####."},
	'C': {".###.", "#...#", "#....", "#....", "#....", "#...#", ".###."},
	'D': {"####.", "#...#", "#...#", "#...#", "#...#", "#...#", "####."},
	'E': {"#####", "#....", "#....", "####.", "#....", "#....", "#####"},
	'F': {"#####", "#....", "#....", "####.", "#....", "#....", "#...."},
	'G': {".###.", "#...#", "#....", "#.###", "#...#", "#...#", ".###."},
	'H': {"#...#", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	'I': {"#####", "..#..", "..#..", "..#..", "..#..", "..#..", "#####"},
	'J': {"..###", "...#.", "...#.", "...#.", "...#.", "#..#.", ".##.."},
	'K': {"#...#", "#..#.", "#.#..", "##...", "#.#..", "#..#.", "#...#"},
	'L': {"#....", "#....", "#....", "#....", "#....", "#....", "#####"},
	'M': {"#...#", "##.##", "#.#.#", "#...#", "#...#", "#...#", "#...#"},
	'N': {"#...#", "##..#", "#.#.#", "#..##", "#...#", "#...#", "#...#"},
	'O': {".###.", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	'P': {"####.", "#...#", "#...#", "####.", "#....", "#....", "#...."},
	'Q': {".###.", "#...#", "#...#", "#...#", "#.#.#", "#..#.", ".##.#"},
	'R': {"####.", "#...#", "#...#", "####.", "#.#..", "#..#.", "#...#"},
	'S': {".###.", "#....", "#....", ".###.", "....#", "....#", "###.."},
	'T': {"#####", "..#..", "..#..", "..#..", "..#..", "..#..", "..#.."},
	'U': {"#...#", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	'V': {"#...#", "#...#", "#...#", "#...#", "#...#", ".#.#.", "..#.."},
	'W': {"#...#", "#...#", "#...#", "#.#.#", "#.#.#", "##.##", "#...#"},
	'X': {"#...#", ".#.#.", "..#..", "..#..", "..#..", ".#.#.", "#...#"},
	'Y': {"#...#", "#...#", ".#.#.", "..#..", "..#..", "..#..", "..#.."},
	'Z': {"#####", "....#", "...#.", "..#..", ".#...", "#....", "#####"},
	' ': blank,
}

// Pattern returns the bitmap for ch. Runes outside the supported set
// come back blank so callers can render any string without checking.
func Pattern(ch rune) Bitmap {
	if bm, ok := patterns[ch]; ok {
		return bm
	}
	return blank
}

// Supported reports whether ch has a drawn bitmap. Space counts as
// supported even though its bitmap is empty.
func Supported(ch rune) bool {
	_, ok := patterns[ch]
	return ok
}

// Bounds returns the leftmost and rightmost used column of bm. ok is
// false when no pixel is set, which is how space and unknown runes
// present.
func Bounds(bm Bitmap) (min, max int, ok bool) {
	min = Cols
	max = -1
	for _, row := range bm {
		for col := 0; col < len(row) && col < Cols; col++ {
			if row[col] == '#' {
				if col < min {
					min = col
				}
				if col > max {
					max = col
				}
			}
		}
	}
	if max < 0 {
		return 0, 0, false
	}
	return min, max, true
}

// Width returns the trimmed width of bm in columns. Empty bitmaps
// report SpaceCols so the cursor still advances across spaces.
func Width(bm Bitmap) int {
	min, max, ok := Bounds(bm)
	if !ok {
		return SpaceCols
	}
	return max - min + 1
}

// Set reports whether the pixel at (row, col) is drawn. Out-of-range
// coordinates are simply clear.
func Set(bm Bitmap, row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= len(bm[row]) {
		return false
	}
	return bm[row][col] == '#'
}
