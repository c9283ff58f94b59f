package input

import (
	"time"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/strum/internal/game"
)

// DefaultHold covers the delay before a terminal starts repeating a held key.
const DefaultHold = 400 * time.Millisecond

// Keyboard plays the guitar from a terminal. Terminals only report presses,
// so a lane counts as held until Hold has passed since its last press or
// repeat. Space and enter strum for a single poll.
type Keyboard struct {
	Hold time.Duration

	events <-chan keyboard.KeyEvent
	keys   []rune
	now    func() time.Time
	close  func() error

	pressed [game.NumLanes]time.Time
}

// OpenKeyboard puts the terminal in raw mode. keys names the lane keys from
// green to orange.
func OpenKeyboard(keys []rune) (*Keyboard, error) {
	if len(keys) != game.NumLanes {
		return nil, errors.Errorf("need %d lane keys, got %d", game.NumLanes, len(keys))
	}
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	return newKeyboard(events, keys, time.Now, keyboard.Close), nil
}

func newKeyboard(events <-chan keyboard.KeyEvent, keys []rune, now func() time.Time, close func() error) *Keyboard {
	return &Keyboard{
		Hold:   DefaultHold,
		events: events,
		keys:   keys,
		now:    now,
		close:  close,
	}
}

func (k *Keyboard) lane(r rune) int {
	for i, c := range k.keys {
		if c == r {
			return i
		}
	}
	return -1
}

func (k *Keyboard) Poll() (game.ControllerState, error) {
	var state game.ControllerState
	now := k.now()

	for done := false; !done; {
		select {
		case ev, ok := <-k.events:
			if !ok {
				return state, ErrQuit
			}
			if nil != ev.Err {
				return state, errors.Wrap(ev.Err, "keyboard")
			}
			switch ev.Key {
			case keyboard.KeyEsc, keyboard.KeyCtrlC:
				return state, ErrQuit
			case keyboard.KeySpace, keyboard.KeyEnter:
				state.Strum = true
				continue
			}
			if i := k.lane(ev.Rune); i >= 0 {
				k.pressed[i] = now
			}
		default:
			done = true
		}
	}

	for i, at := range k.pressed {
		state.Lanes[i] = !at.IsZero() && now.Sub(at) <= k.Hold
	}
	return state, nil
}

func (k *Keyboard) Close() error {
	return k.close()
}
