package theme

import (
	"image/color"

	"github.com/pkg/errors"
)

// ErrNoPaletteMatch is returned for a colour the display hardware cannot show.
var ErrNoPaletteMatch = errors.New("colour is not in the palette")

// Palette is the fixed colour table of the VGA peripheral. A colour's index
// in the table is what goes over the wire.
type Palette []color.RGBA

var DefaultPalette = Palette{
	{0, 0, 0, 255},       // black
	{255, 255, 255, 255}, // white
	{255, 0, 0, 255},     // red
	{0, 255, 0, 255},     // green
	{0, 0, 255, 255},     // blue
	{20, 211, 69, 255},   // light green
	{17, 161, 50, 255},   // middle green
	{16, 162, 55, 255},   // dark green
	{211, 54, 47, 255},   // light red
	{154, 42, 38, 255},   // middle red
	{155, 41, 41, 255},   // dark red
	{254, 243, 53, 255},  // light yellow
	{197, 189, 26, 255},  // middle yellow
	{207, 189, 61, 255},  // dark yellow
	{83, 117, 224, 255},  // light blue
	{59, 89, 175, 255},   // middle blue
	{64, 89, 171, 255},   // dark blue
	{218, 86, 43, 255},   // light orange
	{139, 53, 24, 255},   // middle orange
	{143, 55, 25, 255},   // dark orange
}

// Index finds the exact RGB match. Alpha is ignored.
func (p Palette) Index(r, g, b uint8) (uint8, error) {
	for i, c := range p {
		if c.R == r && c.G == g && c.B == b {
			return uint8(i), nil
		}
	}
	return 0, errors.Wrapf(ErrNoPaletteMatch, "rgb(%d, %d, %d)", r, g, b)
}

// Nearest returns the closest entry by squared distance, first wins on ties.
func (p Palette) Nearest(r, g, b uint8) uint8 {
	best, bestDist := 0, -1
	for i, c := range p {
		dr := int(c.R) - int(r)
		dg := int(c.G) - int(g)
		db := int(c.B) - int(b)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// Pixel word layout: colour index in bits 0..5, column in 6..13, row in
// 14..22.
const (
	indexMask = 0x3F
	colMask   = 0xFF
	rowMask   = 0x1FF
	colShift  = 6
	rowShift  = 14
)

func PackPixel(index uint8, row, col int) uint32 {
	return uint32(index)&indexMask |
		(uint32(col)&colMask)<<colShift |
		(uint32(row)&rowMask)<<rowShift
}

func UnpackPixel(word uint32) (index uint8, row, col int) {
	return uint8(word & indexMask), int(word >> rowShift & rowMask), int(word >> colShift & colMask)
}
