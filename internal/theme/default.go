package theme

import (
	"image/color"

	"git.lost.host/meutraa/strum/internal/game"
	"git.lost.host/meutraa/strum/internal/sprite"
)

// DefaultTheme colours one gray template five ways. Indicators use the same
// template with the white band cut out while released and filled in with the
// lane's dark colour while held.
type DefaultTheme struct {
	notes    [game.NumLanes]*sprite.Sprite
	released [game.NumLanes]*sprite.Sprite
	held     [game.NumLanes]*sprite.Sprite
}

func NewDefaultTheme(template *sprite.Sprite) *DefaultTheme {
	t := &DefaultTheme{}
	for _, lane := range game.Lanes() {
		bands := laneBands[lane]
		t.notes[lane] = sprite.Colorize(sprite.Copy(template), bands)

		bands.White.A = 0
		t.released[lane] = sprite.Colorize(sprite.Copy(template), bands)

		bands.White = bands.DarkGray
		t.held[lane] = sprite.Colorize(sprite.Copy(template), bands)
	}
	return t
}

func (t *DefaultTheme) Background() color.RGBA {
	return Black
}

func (t *DefaultTheme) LaneX(lane game.Lane) int {
	return laneX[lane]
}

func (t *DefaultTheme) Note(lane game.Lane) *sprite.Sprite {
	return t.notes[lane]
}

func (t *DefaultTheme) Indicator(lane game.Lane, held bool) *sprite.Sprite {
	if held {
		return t.held[lane]
	}
	return t.released[lane]
}

// TemplateDiameter fits one note per 30 pixel lane with a pixel either side.
const TemplateDiameter = 28

var (
	Black = color.RGBA{0, 0, 0, 255}
	White = color.RGBA{255, 255, 255, 255}

	// columns centred across the 150 pixel screen, 30 pixels apart
	laneX = [game.NumLanes]int{15, 45, 75, 105, 135}

	laneBands = [game.NumLanes]sprite.Bands{
		game.Green: {
			White:      White,
			LightGray:  color.RGBA{20, 211, 69, 255},
			MiddleGray: color.RGBA{17, 161, 50, 255},
			DarkGray:   color.RGBA{16, 162, 55, 255},
		},
		game.Red: {
			White:      White,
			LightGray:  color.RGBA{211, 54, 47, 255},
			MiddleGray: color.RGBA{154, 42, 38, 255},
			DarkGray:   color.RGBA{155, 41, 41, 255},
		},
		game.Yellow: {
			White:      White,
			LightGray:  color.RGBA{254, 243, 53, 255},
			MiddleGray: color.RGBA{197, 189, 26, 255},
			DarkGray:   color.RGBA{207, 189, 61, 255},
		},
		game.Blue: {
			White:      White,
			LightGray:  color.RGBA{83, 117, 224, 255},
			MiddleGray: color.RGBA{59, 89, 175, 255},
			DarkGray:   color.RGBA{64, 89, 171, 255},
		},
		game.Orange: {
			White:      White,
			LightGray:  color.RGBA{218, 86, 43, 255},
			MiddleGray: color.RGBA{139, 53, 24, 255},
			DarkGray:   color.RGBA{143, 55, 25, 255},
		},
	}
)

// LaneBands returns the colours a lane's notes are painted with.
func LaneBands(lane game.Lane) sprite.Bands {
	return laneBands[lane]
}
