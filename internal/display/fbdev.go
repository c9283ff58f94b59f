package display

import (
	"context"
	"log/slog"
	"os"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"git.lost.host/meutraa/strum/internal/frame"
)

const DefaultFramebuffer = "/dev/fb0"

// linux/fb.h
const (
	fbiogetVScreenInfo = 0x4600
	fbiogetFScreenInfo = 0x4602
)

type fbVarScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	_                        [32]uint32
}

type fbFixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Framebuffer copies frames into a memory mapped Linux framebuffer, top left
// aligned. It only supports 32 bits a pixel, which matches the frame layout
// byte for byte.
type Framebuffer struct {
	Period time.Duration
	Logger *slog.Logger

	pub        *frame.Publisher
	local      *frame.Frame
	file       *os.File
	mem        []byte
	lineLength int
	xres, yres int
	lastSeq    uint64
}

func ioctlPtr(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func OpenFramebuffer(path string, pub *frame.Publisher) (*Framebuffer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if nil != err {
		return nil, errors.Wrap(err, "open framebuffer")
	}
	fd := int(f.Fd())

	var fix fbFixScreenInfo
	if err := ioctlPtr(fd, fbiogetFScreenInfo, unsafe.Pointer(&fix)); nil != err {
		f.Close()
		return nil, errors.Wrap(err, "get fixed screen info")
	}
	var vinfo fbVarScreenInfo
	if err := ioctlPtr(fd, fbiogetVScreenInfo, unsafe.Pointer(&vinfo)); nil != err {
		f.Close()
		return nil, errors.Wrap(err, "get variable screen info")
	}
	if vinfo.BitsPerPixel != 32 {
		f.Close()
		return nil, errors.Errorf("framebuffer is %d bits a pixel, need 32", vinfo.BitsPerPixel)
	}

	mem, err := unix.Mmap(fd, 0, int(fix.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if nil != err {
		f.Close()
		return nil, errors.Wrap(err, "map framebuffer")
	}
	w, h := pub.Size()
	return &Framebuffer{
		Period:     DefaultPeriod,
		pub:        pub,
		local:      frame.New(w, h),
		file:       f,
		mem:        mem,
		lineLength: int(fix.LineLength),
		xres:       int(vinfo.XRes),
		yres:       int(vinfo.YRes),
	}, nil
}

func (fb *Framebuffer) Run(ctx context.Context) error {
	if nil != fb.Logger {
		fb.Logger.Info("framebuffer", "xres", fb.xres, "yres", fb.yres, "line_length", fb.lineLength)
	}
	return every(ctx, fb.Period, fb.present)
}

// present copies the newest frame out and blits it once the publisher lock
// is released.
func (fb *Framebuffer) present() error {
	seq, err := fb.pub.CopyTo(fb.local)
	if nil != err {
		return err
	}
	if seq == 0 || seq == fb.lastSeq {
		return nil
	}
	blit(fb.mem, fb.lineLength, fb.xres, fb.yres, fb.local)
	fb.lastSeq = seq
	return nil
}

// blit copies f row by row into mem, clipped to xres by yres.
func blit(mem []byte, lineLength, xres, yres int, f *frame.Frame) {
	w := min(f.Width, xres) * frame.BytesPerPixel
	h := min(f.Height, yres)
	for y := 0; y < h; y++ {
		at := y * lineLength
		if at+w > len(mem) {
			return
		}
		copy(mem[at:at+w], f.Pix[y*f.Stride:y*f.Stride+w])
	}
}

func (fb *Framebuffer) Close() error {
	var err error
	if nil != fb.mem {
		err = unix.Munmap(fb.mem)
		fb.mem = nil
	}
	if cerr := fb.file.Close(); nil == err {
		err = cerr
	}
	return err
}
