package display

import (
	"context"
	"encoding/binary"
	"image/color"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"git.lost.host/meutraa/strum/internal/frame"
	"git.lost.host/meutraa/strum/internal/ioctl"
	"git.lost.host/meutraa/strum/internal/theme"
)

// DefaultPumpDevice is the character device of the VGA peripheral driver.
const DefaultPumpDevice = "/dev/vga_framebuffer"

// How a packet reaches the peripheral.
const (
	PumpIoctl = "ioctl" // VGA_FRAMEBUFFER_UPDATE with a pointer to the packet
	PumpWrite = "write" // the packet as little endian words
)

// Pump converts frames into packets of pixel words, one per pixel, and hands
// them to the VGA peripheral. Unchanged frames are not sent again.
type Pump struct {
	Period time.Duration
	Logger *slog.Logger

	// Nearest maps colours missing from the palette onto the closest entry
	// instead of failing.
	Nearest bool

	pub     *frame.Publisher
	palette theme.Palette
	send    func(words []uint32) error
	closer  io.Closer

	local   *frame.Frame
	words   []uint32
	lookup  map[color.RGBA]uint8
	lastSeq uint64
	misses  int
}

func OpenPump(path, mode string, pub *frame.Publisher, palette theme.Palette) (*Pump, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if nil != err {
		return nil, errors.Wrap(err, "open vga device")
	}
	var send func([]uint32) error
	switch mode {
	case PumpIoctl:
		fd := int(f.Fd())
		send = func(words []uint32) error {
			return update(fd, words)
		}
	case PumpWrite:
		buf := []byte{}
		send = func(words []uint32) error {
			buf = encodeWords(buf[:0], words)
			_, err := f.Write(buf)
			return err
		}
	default:
		f.Close()
		return nil, errors.Errorf("unknown pump mode %q", mode)
	}
	return newPump(pub, palette, send, f), nil
}

func newPump(pub *frame.Publisher, palette theme.Palette, send func([]uint32) error, closer io.Closer) *Pump {
	w, h := pub.Size()
	return &Pump{
		Period:  DefaultPeriod,
		pub:     pub,
		palette: palette,
		send:    send,
		closer:  closer,
		local:   frame.New(w, h),
		words:   make([]uint32, w*h),
		lookup:  make(map[color.RGBA]uint8, len(palette)),
	}
}

type updateArg struct {
	words *uint32
}

func update(fd int, words []uint32) error {
	arg := updateArg{words: &words[0]}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(ioctl.FramebufferUpdate), uintptr(unsafe.Pointer(&arg)))
	runtime.KeepAlive(words)
	if errno != 0 {
		return errno
	}
	return nil
}

func encodeWords(dst []byte, words []uint32) []byte {
	for _, w := range words {
		dst = binary.LittleEndian.AppendUint32(dst, w)
	}
	return dst
}

func (p *Pump) Run(ctx context.Context) error {
	return every(ctx, p.Period, p.push)
}

func (p *Pump) push() error {
	seq, err := p.pub.CopyTo(p.local)
	if nil != err {
		return err
	}
	if seq == 0 || seq == p.lastSeq {
		return nil
	}
	if err := p.pack(); nil != err {
		return err
	}
	if err := p.send(p.words); nil != err {
		return errors.Wrap(err, "send frame to vga")
	}
	p.lastSeq = seq
	return nil
}

func (p *Pump) index(c color.RGBA, x, y int) (uint8, error) {
	c.A = 0
	if i, ok := p.lookup[c]; ok {
		return i, nil
	}
	i, err := p.palette.Index(c.R, c.G, c.B)
	if nil != err {
		if !p.Nearest {
			return 0, errors.Wrapf(err, "pixel (%d, %d)", x, y)
		}
		i = p.palette.Nearest(c.R, c.G, c.B)
		if p.misses == 0 && nil != p.Logger {
			p.Logger.Warn("colour not in palette, using nearest", "rgb", []uint8{c.R, c.G, c.B}, "index", i)
		}
		p.misses++
	}
	p.lookup[c] = i
	return i, nil
}

// pack fills words from the local copy, outside the publisher lock.
func (p *Pump) pack() error {
	w := p.local.Width
	for x, y := range p.local.Coords() {
		i, err := p.index(p.local.At(x, y), x, y)
		if nil != err {
			return err
		}
		p.words[y*w+x] = theme.PackPixel(i, y, x)
	}
	return nil
}

// Misses counts the distinct colours that were clamped to the palette.
func (p *Pump) Misses() int {
	return p.misses
}

func (p *Pump) Close() error {
	if nil == p.closer {
		return nil
	}
	return p.closer.Close()
}
