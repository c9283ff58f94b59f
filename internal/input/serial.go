package input

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"git.lost.host/meutraa/strum/internal/game"
)

// Serial reads a guitar adapter that streams its register byte over a serial
// line. Only the newest byte of each poll counts, and a poll that reads
// nothing keeps the previous state.
type Serial struct {
	port   io.ReadCloser
	layout game.BitLayout
	buf    [64]byte
	last   game.ControllerState
}

func OpenSerial(name string, baud int, layout game.BitLayout) (*Serial, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if nil != err {
		return nil, errors.Wrapf(err, "open serial port %s at %d baud", name, baud)
	}
	if err := p.SetReadTimeout(time.Millisecond); nil != err {
		p.Close()
		return nil, errors.Wrap(err, "set serial read timeout")
	}
	return &Serial{port: p, layout: layout}, nil
}

func (s *Serial) Poll() (game.ControllerState, error) {
	n, err := s.port.Read(s.buf[:])
	if nil != err {
		return game.ControllerState{}, errors.Wrap(err, "read serial port")
	}
	if n > 0 {
		s.last = s.layout.DecodeByte(s.buf[n-1])
	}
	return s.last, nil
}

func (s *Serial) Close() error {
	return s.port.Close()
}
