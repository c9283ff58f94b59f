package theme

import (
	"image/color"

	"git.lost.host/meutraa/strum/internal/game"
	"git.lost.host/meutraa/strum/internal/sprite"
)

type Theme interface {
	Background() color.RGBA
	LaneX(lane game.Lane) int
	Note(lane game.Lane) *sprite.Sprite
	Indicator(lane game.Lane, held bool) *sprite.Sprite
}
