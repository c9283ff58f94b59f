package sprite

import (
	"image/color"

	"git.lost.host/meutraa/strum/internal/frame"
)

// Draw blits s centred on (x, y). Pixels below VisibleAlpha and pixels that
// fall outside dst are skipped.
func Draw(dst *frame.Frame, s *Sprite, x, y int) {
	left, top := x-s.Width/2, y-s.Height/2
	for sy := 0; sy < s.Height; sy++ {
		dy := top + sy
		if dy < 0 || dy >= dst.Height {
			continue
		}
		row := s.Pix[sy*s.Stride:]
		for sx := 0; sx < s.Width; sx++ {
			px := row[sx*4 : sx*4+4]
			if px[3] < VisibleAlpha {
				continue
			}
			dst.Set(left+sx, dy, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
		}
	}
}
