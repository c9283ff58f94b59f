package render

import (
	"math"

	"git.lost.host/meutraa/strum/internal/frame"
	"git.lost.host/meutraa/strum/internal/game"
	"git.lost.host/meutraa/strum/internal/sprite"
	"git.lost.host/meutraa/strum/internal/theme"
)

type DefaultRenderer struct {
	Theme   theme.Theme
	Song    *game.Song
	HitLine int
}

func (r *DefaultRenderer) Compose(dst *frame.Frame, state game.ControllerState, pos game.ScrollPosition) {
	dst.Fill(r.Theme.Background())

	rowHeight := r.Song.RowHeight
	visible := int(math.Ceil(float64(dst.Height) / rowHeight))
	for k := 0; k <= visible; k++ {
		row, ok := r.Song.Row(pos.Row + k)
		if !ok {
			break
		}
		y := int(math.Round(pos.Offset - rowHeight*float64(k)))
		if y < -int(rowHeight) {
			break
		}
		for _, lane := range game.Lanes() {
			if row.Has(lane) {
				sprite.Draw(dst, r.Theme.Note(lane), r.Theme.LaneX(lane), y)
			}
		}
	}

	for _, lane := range game.Lanes() {
		sprite.Draw(dst, r.Theme.Indicator(lane, state.Pressed(lane)), r.Theme.LaneX(lane), r.HitLine)
	}
}
