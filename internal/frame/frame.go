package frame

import (
	"image/color"
	"iter"

	"github.com/pkg/errors"
)

// Screen geometry of the VGA peripheral. Everything is drawn at this size and
// consumers scale if they need to.
const (
	Width         = 150
	Height        = 480
	BytesPerPixel = 4
)

// ErrSizeMismatch is returned when copying between frames of different sizes.
var ErrSizeMismatch = errors.New("frame sizes differ")

// Frame is a grid of 32 bit pixels stored blue, green, red, unused.
type Frame struct {
	Width, Height int
	Stride        int // bytes per row
	Pix           []byte
}

func New(width, height int) *Frame {
	stride := width * BytesPerPixel
	return &Frame{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}
}

func (f *Frame) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0, false
	}
	return y*f.Stride + x*BytesPerPixel, true
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c color.RGBA) {
	if len(f.Pix) == 0 {
		return
	}
	f.Pix[0], f.Pix[1], f.Pix[2], f.Pix[3] = c.B, c.G, c.R, c.A
	// doubling copy, log2(n) calls
	for n := BytesPerPixel; n < len(f.Pix); n *= 2 {
		copy(f.Pix[n:], f.Pix[:n])
	}
}

// Set writes one pixel, ignoring coordinates outside the frame.
func (f *Frame) Set(x, y int, c color.RGBA) {
	i, ok := f.offset(x, y)
	if !ok {
		return
	}
	f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3] = c.B, c.G, c.R, c.A
}

// At reads one pixel. Pixels outside the frame are transparent black.
func (f *Frame) At(x, y int) color.RGBA {
	i, ok := f.offset(x, y)
	if !ok {
		return color.RGBA{}
	}
	return color.RGBA{R: f.Pix[i+2], G: f.Pix[i+1], B: f.Pix[i], A: f.Pix[i+3]}
}

// Coords yields every (x, y) in row order. It holds no state so it can be
// ranged over any number of times.
func (f *Frame) Coords() iter.Seq2[int, int] {
	width, height := f.Width, f.Height
	return func(yield func(int, int) bool) {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// CopyFrom overwrites f with src byte for byte.
func (f *Frame) CopyFrom(src *Frame) error {
	if f.Width != src.Width || f.Height != src.Height || len(f.Pix) != len(src.Pix) {
		return errors.Wrapf(ErrSizeMismatch, "%dx%d and %dx%d", f.Width, f.Height, src.Width, src.Height)
	}
	copy(f.Pix, src.Pix)
	return nil
}

// RGBA writes the frame into dst as opaque R, G, B, A bytes. dst must hold
// Width*Height*4 bytes.
func (f *Frame) RGBA(dst []byte) {
	i := 0
	for y := 0; y < f.Height; y++ {
		row := f.Pix[y*f.Stride : y*f.Stride+f.Width*BytesPerPixel]
		for x := 0; x < len(row); x += BytesPerPixel {
			dst[i], dst[i+1], dst[i+2], dst[i+3] = row[x+2], row[x+1], row[x], 0xFF
			i += 4
		}
	}
}
