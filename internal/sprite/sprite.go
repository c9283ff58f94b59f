package sprite

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"iter"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// VisibleAlpha is the lowest alpha that is drawn. The display has no
// transparency, a pixel is either on or off.
const VisibleAlpha = 127

// Sprite is a straight alpha RGBA image, four bytes a pixel in R, G, B, A
// order.
type Sprite struct {
	Width, Height int
	Stride        int
	Pix           []byte
}

func New(width, height int) *Sprite {
	return &Sprite{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Pix:    make([]byte, width*height*4),
	}
}

// Load reads a PNG file.
func Load(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.Wrap(err, "open sprite")
	}
	defer f.Close()

	s, err := Decode(f)
	if nil != err {
		return nil, errors.Wrapf(err, "decode sprite %s", path)
	}
	return s, nil
}

func Decode(r io.Reader) (*Sprite, error) {
	img, err := png.Decode(r)
	if nil != err {
		return nil, err
	}
	return FromImage(img), nil
}

// FromImage converts any image, expanding palettes and gray to RGBA and
// filling in an opaque alpha where the source has none.
func FromImage(img image.Image) *Sprite {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Sprite{
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: dst.Stride,
		Pix:    dst.Pix,
	}
}

// Copy returns a deep copy of s.
func Copy(s *Sprite) *Sprite {
	pix := make([]byte, len(s.Pix))
	copy(pix, s.Pix)
	return &Sprite{Width: s.Width, Height: s.Height, Stride: s.Stride, Pix: pix}
}

func (s *Sprite) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return color.RGBA{}
	}
	i := y*s.Stride + x*4
	return color.RGBA{R: s.Pix[i], G: s.Pix[i+1], B: s.Pix[i+2], A: s.Pix[i+3]}
}

func (s *Sprite) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return
	}
	i := y*s.Stride + x*4
	s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Pixels yields every (x, y) of s in row order.
func Pixels(s *Sprite) iter.Seq2[int, int] {
	width, height := s.Width, s.Height
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

func Visible(c color.RGBA) bool {
	return c.A >= VisibleAlpha
}

// Average is the integer mean of the colour channels.
func Average(c color.RGBA) int {
	return (int(c.R) + int(c.G) + int(c.B)) / 3
}

// Image wraps the sprite pixels without copying.
func (s *Sprite) Image() *image.NRGBA {
	return &image.NRGBA{Pix: s.Pix, Stride: s.Stride, Rect: image.Rect(0, 0, s.Width, s.Height)}
}
