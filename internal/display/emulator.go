package display

import (
	"context"
	"log/slog"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/strum/internal/frame"
	"git.lost.host/meutraa/strum/internal/game"
	"git.lost.host/meutraa/strum/internal/input"
)

// Emulator shows frames in a desktop window the size of the VGA screen. When
// Shared is set it also reads the guitar from the window's keyboard.
type Emulator struct {
	Title  string
	Scale  int
	Shared *game.SharedController
	Logger *slog.Logger

	pub    *frame.Publisher
	lanes  [game.NumLanes]ebiten.Key
	local  *frame.Frame
	pixels []byte
	ctx    context.Context
	quit   bool
}

// NewEmulator binds lane keys, green first. Only letters and digits can be
// used.
func NewEmulator(pub *frame.Publisher, keys []rune) (*Emulator, error) {
	if len(keys) != game.NumLanes {
		return nil, errors.Errorf("need %d lane keys, got %d", game.NumLanes, len(keys))
	}
	e := &Emulator{
		Title: "strum",
		Scale: 1,
		pub:   pub,
		ctx:   context.Background(),
	}
	w, h := pub.Size()
	e.local = frame.New(w, h)
	e.pixels = make([]byte, w*h*4)
	for i, r := range keys {
		k, ok := ebitenKey(r)
		if !ok {
			return nil, errors.Errorf("key %q cannot be bound in the window", r)
		}
		e.lanes[i] = k
	}
	return e, nil
}

var windowKeys = map[rune]ebiten.Key{
	'a': ebiten.KeyA, 'b': ebiten.KeyB, 'c': ebiten.KeyC, 'd': ebiten.KeyD,
	'e': ebiten.KeyE, 'f': ebiten.KeyF, 'g': ebiten.KeyG, 'h': ebiten.KeyH,
	'i': ebiten.KeyI, 'j': ebiten.KeyJ, 'k': ebiten.KeyK, 'l': ebiten.KeyL,
	'm': ebiten.KeyM, 'n': ebiten.KeyN, 'o': ebiten.KeyO, 'p': ebiten.KeyP,
	'q': ebiten.KeyQ, 'r': ebiten.KeyR, 's': ebiten.KeyS, 't': ebiten.KeyT,
	'u': ebiten.KeyU, 'v': ebiten.KeyV, 'w': ebiten.KeyW, 'x': ebiten.KeyX,
	'y': ebiten.KeyY, 'z': ebiten.KeyZ,
	'0': ebiten.KeyDigit0, '1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2,
	'3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4, '5': ebiten.KeyDigit5,
	'6': ebiten.KeyDigit6, '7': ebiten.KeyDigit7, '8': ebiten.KeyDigit8,
	'9': ebiten.KeyDigit9,
}

func ebitenKey(r rune) (ebiten.Key, bool) {
	k, ok := windowKeys[unicode.ToLower(r)]
	return k, ok
}

func (e *Emulator) Update() error {
	if nil != e.ctx.Err() {
		return ebiten.Termination
	}
	return e.poll(ebiten.IsKeyPressed)
}

// poll reads the window keys. Escape quits whichever source feeds the game.
func (e *Emulator) poll(pressed func(ebiten.Key) bool) error {
	if pressed(ebiten.KeyEscape) {
		e.quit = true
		return ebiten.Termination
	}
	if nil == e.Shared {
		return nil
	}
	var state game.ControllerState
	for i, k := range e.lanes {
		state.Lanes[i] = pressed(k)
	}
	state.Strum = pressed(ebiten.KeySpace) || pressed(ebiten.KeyEnter)
	e.Shared.Set(state)
	return nil
}

func (e *Emulator) Draw(screen *ebiten.Image) {
	if _, err := e.pub.CopyTo(e.local); nil != err {
		return
	}
	e.local.RGBA(e.pixels)
	screen.WritePixels(e.pixels)
}

func (e *Emulator) Layout(_, _ int) (int, int) {
	return e.local.Width, e.local.Height
}

// Run must be called from the main goroutine. Closing the window returns nil,
// escape returns input.ErrQuit.
func (e *Emulator) Run(ctx context.Context) error {
	e.ctx = ctx
	scale := max(e.Scale, 1)
	ebiten.SetWindowTitle(e.Title)
	ebiten.SetWindowSize(e.local.Width*scale, e.local.Height*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if nil != err {
		return errors.Wrap(err, "emulator window")
	}
	if e.quit {
		return input.ErrQuit
	}
	if nil != e.Logger {
		e.Logger.Info("emulator window closed")
	}
	return nil
}

func (e *Emulator) Close() error {
	return nil
}
