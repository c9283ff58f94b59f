package input

import (
	"encoding/binary"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"git.lost.host/meutraa/strum/internal/game"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey = 0x01

	keyEsc   = 1
	key1     = 2
	keyEnter = 28
	keySpace = 57

	valueRelease = 0
	valuePress   = 1
)

type keyEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// Evdev reads key events straight from /dev/input, which unlike a terminal
// reports releases, so lanes are held exactly as long as their keys. Keys 1
// to 5 are the lanes, space and enter strum, escape quits.
type Evdev struct {
	file   io.ReadCloser
	events chan keyEvent
	done   chan struct{}
	once   sync.Once

	mu  sync.Mutex
	err error

	lanes game.NoteRow
	strum bool
}

func OpenEvdev(path string) (*Evdev, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.Wrap(err, "open input device")
	}
	return newEvdev(f), nil
}

func newEvdev(r io.ReadCloser) *Evdev {
	e := &Evdev{
		file:   r,
		events: make(chan keyEvent, 128),
		done:   make(chan struct{}),
	}
	go e.read()
	return e
}

func (e *Evdev) read() {
	defer close(e.events)
	var ev keyEvent
	for {
		if err := binary.Read(e.file, binary.LittleEndian, &ev); nil != err {
			select {
			case <-e.done:
			default:
				e.mu.Lock()
				e.err = errors.Wrap(err, "unable to read input event")
				e.mu.Unlock()
			}
			return
		}
		if ev.Type != evKey {
			continue
		}
		select {
		case e.events <- ev:
		case <-e.done:
			return
		}
	}
}

func (e *Evdev) Poll() (game.ControllerState, error) {
	pressed := false
	for done := false; !done; {
		select {
		case ev, ok := <-e.events:
			if !ok {
				e.mu.Lock()
				err := e.err
				e.mu.Unlock()
				if nil == err {
					err = ErrQuit
				}
				return game.ControllerState{}, err
			}
			if ev.Value != valuePress && ev.Value != valueRelease {
				continue // autorepeat
			}
			down := ev.Value == valuePress
			switch {
			case ev.Code == keyEsc && down:
				return game.ControllerState{}, ErrQuit
			case ev.Code == keySpace || ev.Code == keyEnter:
				e.strum = down
				pressed = pressed || down
			case ev.Code >= key1 && ev.Code < key1+game.NumLanes:
				e.lanes[ev.Code-key1] = down
			}
		default:
			done = true
		}
	}
	// a tap shorter than one poll still strums
	return game.ControllerState{Lanes: e.lanes, Strum: e.strum || pressed}, nil
}

func (e *Evdev) Close() error {
	var err error
	e.once.Do(func() {
		close(e.done)
		err = e.file.Close()
	})
	return err
}
