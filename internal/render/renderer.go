package render

import (
	"git.lost.host/meutraa/strum/internal/frame"
	"git.lost.host/meutraa/strum/internal/game"
)

type Renderer interface {
	// Compose draws one complete frame into dst. It reads nothing shared, the
	// caller passes in its controller snapshot and scroll position.
	Compose(dst *frame.Frame, state game.ControllerState, pos game.ScrollPosition)
}
