package input

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"git.lost.host/meutraa/strum/internal/game"
	"git.lost.host/meutraa/strum/internal/ioctl"
)

// DefaultDevice is the character device of the guitar reader driver.
const DefaultDevice = "/dev/note_reader"

// Device reads the guitar register through the reader driver's ioctl.
type Device struct {
	file   *os.File
	layout game.BitLayout
	read   func() (int, error)
}

func OpenDevice(path string, layout game.BitLayout) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if nil != err {
		return nil, errors.Wrap(err, "open guitar reader")
	}
	fd := int(f.Fd())
	return &Device{
		file:   f,
		layout: layout,
		read: func() (int, error) {
			return unix.IoctlGetInt(fd, ioctl.GuitarReaderRead)
		},
	}, nil
}

func (d *Device) Poll() (game.ControllerState, error) {
	v, err := d.read()
	if nil != err {
		return game.ControllerState{}, errors.Wrap(err, "read guitar register")
	}
	return d.layout.DecodeByte(byte(v)), nil
}

func (d *Device) Close() error {
	if nil == d.file {
		return nil
	}
	return d.file.Close()
}
