package display

import (
	"context"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/term"

	"git.lost.host/meutraa/strum/internal/frame"
)

// Terminal draws frames with truecolor half blocks, two pixels a cell, scaled
// down to fit the window. The last line is a status line.
type Terminal struct {
	Period time.Duration
	Status func() string

	pub    *frame.Publisher
	out    io.Writer
	size   func() (int, int, error)
	local  *frame.Frame
	src    *image.RGBA
	dst    *image.RGBA
	buffer strings.Builder

	lastSeq            uint64
	lastCols, lastRows int
	lastStatus         string
}

func NewTerminal(pub *frame.Publisher) *Terminal {
	fd := int(os.Stdout.Fd())
	return newTerminal(pub, os.Stdout, func() (int, int, error) {
		return term.GetSize(fd)
	})
}

func newTerminal(pub *frame.Publisher, out io.Writer, size func() (int, int, error)) *Terminal {
	w, h := pub.Size()
	return &Terminal{
		Period: DefaultPeriod,
		pub:    pub,
		out:    out,
		size:   size,
		local:  frame.New(w, h),
		src:    image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

func (t *Terminal) Init() error {
	if _, _, err := t.size(); nil != err {
		return errors.Wrap(err, "unable to get terminal size")
	}
	_, err := io.WriteString(t.out, "\033[?1049h"+ // Enable alternate buffer
		"\033[?25l"+ // Make the cursor invisible
		"\033[2J") // Clear the screen
	return err
}

func (t *Terminal) Close() error {
	_, err := io.WriteString(t.out, "\033[0m"+
		"\033[?1049l"+ // Disable alternate buffer
		"\033[?25h") // Make the cursor visible
	return err
}

func (t *Terminal) Run(ctx context.Context) error {
	if err := t.Init(); nil != err {
		return err
	}
	return every(ctx, t.Period, t.render)
}

func (t *Terminal) render() error {
	cols, rows, err := t.size()
	if nil != err {
		return errors.Wrap(err, "unable to get terminal size")
	}
	seq, err := t.pub.CopyTo(t.local)
	if nil != err {
		return err
	}
	status := ""
	if nil != t.Status {
		status = t.Status()
	}
	if seq == t.lastSeq && cols == t.lastCols && rows == t.lastRows && status == t.lastStatus {
		return nil
	}
	if cols != t.lastCols || rows != t.lastRows {
		t.buffer.WriteString("\033[2J")
	}
	t.lastSeq, t.lastCols, t.lastRows, t.lastStatus = seq, cols, rows, status

	t.draw(cols, rows-1)
	t.fill(uint16(rows), 1, status)
	_, err = io.WriteString(t.out, t.buffer.String())
	t.buffer.Reset()
	return err
}

// fit keeps the frame's aspect ratio inside cols by rows cells. A cell is
// one pixel wide and two high.
func fit(w, h, cols, rows int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	sw, sh := cols, cols*h/w
	if sh > rows*2 {
		sw, sh = rows*2*w/h, rows*2
	}
	return max(sw, 1), max(sh&^1, 2)
}

func (t *Terminal) draw(cols, rows int) {
	sw, sh := fit(t.local.Width, t.local.Height, cols, rows)
	if sw == 0 {
		return
	}
	if nil == t.dst || t.dst.Bounds().Dx() != sw || t.dst.Bounds().Dy() != sh {
		t.dst = image.NewRGBA(image.Rect(0, 0, sw, sh))
	}
	t.local.RGBA(t.src.Pix)
	draw.ApproxBiLinear.Scale(t.dst, t.dst.Bounds(), t.src, t.src.Bounds(), draw.Src, nil)

	left := (cols-sw)/2 + 1
	for y := 0; y+1 < sh; y += 2 {
		t.fill(uint16(y/2+1), uint16(left), "")
		for x := 0; x < sw; x++ {
			i := t.dst.PixOffset(x, y)
			j := t.dst.PixOffset(x, y+1)
			t.halfBlock(t.dst.Pix[i:i+3], t.dst.Pix[j:j+3])
		}
		t.buffer.WriteString("\033[0m")
	}
}

func (t *Terminal) halfBlock(top, bottom []byte) {
	t.buffer.WriteString("\033[38;2;")
	t.rgb(top)
	t.buffer.WriteString(";48;2;")
	t.rgb(bottom)
	t.buffer.WriteString("m▀")
}

func (t *Terminal) rgb(c []byte) {
	t.buffer.WriteString(strconv.FormatInt(int64(c[0]), 10))
	t.buffer.WriteString(";")
	t.buffer.WriteString(strconv.FormatInt(int64(c[1]), 10))
	t.buffer.WriteString(";")
	t.buffer.WriteString(strconv.FormatInt(int64(c[2]), 10))
}

func (t *Terminal) fill(row, column uint16, message string) {
	t.buffer.WriteString("\033[")
	t.buffer.WriteString(strconv.FormatInt(int64(row), 10))
	t.buffer.WriteString(";")
	t.buffer.WriteString(strconv.FormatInt(int64(column), 10))
	t.buffer.WriteString("H")
	t.buffer.WriteString(message)
	if message != "" {
		t.buffer.WriteString("\033[K")
	}
}
