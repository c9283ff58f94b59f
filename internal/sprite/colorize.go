package sprite

import "image/color"

// Gray levels of a note template and how far from them a pixel may be.
const (
	WhiteLevel      = 255
	LightGrayLevel  = 180
	MiddleGrayLevel = 125
	DarkGrayLevel   = 70
	BandRange       = 5
)

// Bands are the colours that replace each gray level of a template.
type Bands struct {
	White      color.RGBA
	LightGray  color.RGBA
	MiddleGray color.RGBA
	DarkGray   color.RGBA
}

func inBand(avg, level int) bool {
	return level-BandRange <= avg && avg <= level+BandRange
}

// Band returns the replacement for c, false when c is in no band.
func (b Bands) Band(c color.RGBA) (color.RGBA, bool) {
	avg := Average(c)
	switch {
	case inBand(avg, WhiteLevel):
		return b.White, true
	case inBand(avg, DarkGrayLevel):
		return b.DarkGray, true
	case inBand(avg, MiddleGrayLevel):
		return b.MiddleGray, true
	case inBand(avg, LightGrayLevel):
		return b.LightGray, true
	}
	return color.RGBA{}, false
}

// Colorize recolours s in place. Pixels whose average is not in a band are
// left alone. It returns s.
func Colorize(s *Sprite, b Bands) *Sprite {
	for x, y := range Pixels(s) {
		if c, ok := b.Band(s.At(x, y)); ok {
			s.Set(x, y, c)
		}
	}
	return s
}
