package sprite

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

var ErrBadDiameter = errors.New("template diameter must be positive")

// ring radii as a fraction of the outer radius, outermost first
var rings = []struct {
	scale float64
	level uint8
}{
	{1.00, DarkGrayLevel},
	{0.86, MiddleGrayLevel},
	{0.72, LightGrayLevel},
	{0.56, WhiteLevel},
	{0.30, MiddleGrayLevel},
}

// Template draws a gray note made of concentric rings for use when no sprite
// file is given. Anti aliased edges are snapped to the nearest gray level or
// made fully transparent, so Colorize sees clean bands.
func Template(diameter int) (*Sprite, error) {
	if diameter <= 0 {
		return nil, errors.Wrapf(ErrBadDiameter, "%d", diameter)
	}
	dc := gg.NewContext(diameter, diameter)
	c := float64(diameter) / 2
	for _, r := range rings {
		dc.DrawCircle(c, c, c*r.scale)
		dc.SetRGB255(int(r.level), int(r.level), int(r.level))
		dc.Fill()
	}

	s := FromImage(dc.Image())
	for x, y := range Pixels(s) {
		px := s.At(x, y)
		if !Visible(px) {
			s.Set(x, y, color.RGBA{})
			continue
		}
		l := nearestLevel(Average(px))
		s.Set(x, y, color.RGBA{R: l, G: l, B: l, A: 255})
	}
	return s, nil
}

func nearestLevel(avg int) uint8 {
	best, bestDist := uint8(0), 1<<30
	for _, l := range []int{DarkGrayLevel, MiddleGrayLevel, LightGrayLevel, WhiteLevel} {
		d := avg - l
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = uint8(l), d
		}
	}
	return best
}
