package display

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"git.lost.host/meutraa/strum/internal/frame"
	"git.lost.host/meutraa/strum/internal/game"
	"git.lost.host/meutraa/strum/internal/theme"
)

func published(t *testing.T, pub *frame.Publisher, fill func(f *frame.Frame)) {
	t.Helper()
	w, h := pub.Size()
	f := frame.New(w, h)
	fill(f)
	if err := pub.Publish(f); nil != err {
		t.Fatal(err)
	}
}

type recorder struct {
	packets [][]uint32
}

func (r *recorder) send(words []uint32) error {
	r.packets = append(r.packets, append([]uint32(nil), words...))
	return nil
}

func TestPumpPacksWords(t *testing.T) {
	pub := frame.NewPublisher(3, 2)
	rec := &recorder{}
	p := newPump(pub, theme.DefaultPalette, rec.send, nil)

	// nothing published yet
	if err := p.push(); nil != err {
		t.Fatal(err)
	}
	if len(rec.packets) != 0 {
		t.Fatal("sent a packet before anything was published")
	}

	published(t, pub, func(f *frame.Frame) {
		f.Fill(theme.Black)
		f.Set(2, 1, theme.White)
	})
	if err := p.push(); nil != err {
		t.Fatal(err)
	}
	if err := p.push(); nil != err {
		t.Fatal(err)
	}
	if len(rec.packets) != 1 {
		t.Fatalf("%d packets for one frame, want 1", len(rec.packets))
	}
	words := rec.packets[0]
	if len(words) != 6 {
		t.Fatalf("%d words, want 6", len(words))
	}
	for i, w := range words {
		index, row, col := theme.UnpackPixel(w)
		if row != i/3 || col != i%3 {
			t.Errorf("word %d addresses (%d, %d)", i, row, col)
		}
		want := uint8(0)
		if row == 1 && col == 2 {
			want = 1
		}
		if index != want {
			t.Errorf("word %d colour %d, want %d", i, index, want)
		}
	}
}

func TestPumpStrictPalette(t *testing.T) {
	pub := frame.NewPublisher(2, 2)
	rec := &recorder{}
	p := newPump(pub, theme.DefaultPalette, rec.send, nil)
	published(t, pub, func(f *frame.Frame) {
		f.Fill(theme.Black)
		f.Set(1, 0, color.RGBA{100, 100, 100, 255})
	})

	err := p.push()
	if !errors.Is(err, theme.ErrNoPaletteMatch) {
		t.Fatalf("push = %v, want ErrNoPaletteMatch", err)
	}
	if !strings.Contains(err.Error(), "(1, 0)") {
		t.Errorf("error %q does not name the pixel", err)
	}
	if len(rec.packets) != 0 {
		t.Error("a packet was sent for a bad frame")
	}

	p.Nearest = true
	if err := p.push(); nil != err {
		t.Fatal(err)
	}
	if p.Misses() != 1 || len(rec.packets) != 1 {
		t.Errorf("misses %d packets %d", p.Misses(), len(rec.packets))
	}
	index, _, _ := theme.UnpackPixel(rec.packets[0][1])
	want := theme.DefaultPalette.Nearest(100, 100, 100)
	if index != want {
		t.Errorf("clamped to %d, want %d", index, want)
	}
}

func TestEncodeWords(t *testing.T) {
	got := encodeWords(nil, []uint32{0x01020304, theme.PackPixel(5, 479, 149)})
	if len(got) != 8 || binary.LittleEndian.Uint32(got) != 0x01020304 ||
		binary.LittleEndian.Uint32(got[4:]) != theme.PackPixel(5, 479, 149) {
		t.Errorf("encodeWords = %x", got)
	}
}

func TestBlit(t *testing.T) {
	f := frame.New(3, 3)
	for x, y := range f.Coords() {
		f.Set(x, y, color.RGBA{R: uint8(10*y + x), A: 255})
	}

	// a 2x2 screen with padding at the end of each line
	const lineLength = 12
	mem := make([]byte, lineLength*2)
	blit(mem, lineLength, 2, 2, f)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := mem[y*lineLength+x*4+2]; got != uint8(10*y+x) {
				t.Errorf("(%d, %d) red = %d", x, y, got)
			}
		}
		for i := 8; i < lineLength; i++ {
			if mem[y*lineLength+i] != 0 {
				t.Errorf("line %d padding written", y)
			}
		}
	}
}

func TestFramebufferPresent(t *testing.T) {
	pub := frame.NewPublisher(2, 2)
	const lineLength = 8
	fb := &Framebuffer{
		pub:        pub,
		local:      frame.New(2, 2),
		mem:        make([]byte, lineLength*2),
		lineLength: lineLength,
		xres:       2,
		yres:       2,
	}

	if err := fb.present(); nil != err {
		t.Fatal(err)
	}
	if !bytes.Equal(fb.mem, make([]byte, len(fb.mem))) {
		t.Error("blitted before anything was published")
	}

	f := frame.New(2, 2)
	f.Fill(color.RGBA{R: 7, A: 255})
	if err := pub.Publish(f); nil != err {
		t.Fatal(err)
	}
	if err := fb.present(); nil != err {
		t.Fatal(err)
	}
	if got := fb.mem[lineLength+6]; got != 7 {
		t.Errorf("red at (1, 1) = %d, want 7", got)
	}

	// an unchanged frame is not drawn again
	clear(fb.mem)
	if err := fb.present(); nil != err {
		t.Fatal(err)
	}
	if fb.mem[2] != 0 {
		t.Error("unchanged frame blitted twice")
	}

	// the publisher is free again as soon as present returns
	done := make(chan error, 1)
	go func() { done <- pub.Publish(f) }()
	select {
	case err := <-done:
		if nil != err {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher still locked after present")
	}
	if err := fb.present(); nil != err {
		t.Fatal(err)
	}
	if fb.mem[2] != 7 {
		t.Error("new frame not blitted")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{80, 23, 14, 46},
		{150, 240, 150, 480},
		{300, 1000, 300, 960},
		{0, 10, 0, 0},
	}
	for _, test := range tests {
		w, h := fit(frame.Width, frame.Height, test.cols, test.rows)
		if w != test.w || h != test.h {
			t.Errorf("fit(%d, %d) = %d, %d, want %d, %d", test.cols, test.rows, w, h, test.w, test.h)
		}
	}
}

func TestTerminalRender(t *testing.T) {
	pub := frame.NewPublisher(frame.Width, frame.Height)
	published(t, pub, func(f *frame.Frame) { f.Fill(theme.White) })

	var out bytes.Buffer
	term := newTerminal(pub, &out, func() (int, int, error) { return 40, 20, nil })
	term.Status = func() string { return "hits 3" }

	if err := term.render(); nil != err {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "▀") || !strings.Contains(s, "255;255;255") {
		t.Error("no white half blocks drawn")
	}
	if !strings.Contains(s, "\033[20;1Hhits 3") {
		t.Errorf("status line missing from %q", s[len(s)-40:])
	}

	out.Reset()
	if err := term.render(); nil != err {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Error("redrew an unchanged frame")
	}
}

func TestEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := every(ctx, time.Millisecond, func() error {
		calls++
		if calls == 3 {
			cancel()
		}
		return nil
	})
	if nil != err || calls != 3 {
		t.Errorf("every = %v after %d calls", err, calls)
	}

	boom := errors.New("boom")
	if err := every(context.Background(), time.Millisecond, func() error { return boom }); err != boom {
		t.Errorf("every = %v, want boom", err)
	}
}

func TestEbitenKey(t *testing.T) {
	for _, r := range "azAZ09" {
		if _, ok := ebitenKey(r); !ok {
			t.Errorf("%q not bound", r)
		}
	}
	if _, ok := ebitenKey('-'); ok {
		t.Error("'-' should not be bindable")
	}
}

func keys(down ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, d := range down {
			if d == k {
				return true
			}
		}
		return false
	}
}

func TestEmulatorPoll(t *testing.T) {
	pub := frame.NewPublisher(2, 2)
	e, err := NewEmulator(pub, []rune("12345"))
	if nil != err {
		t.Fatal(err)
	}
	e.Shared = &game.SharedController{}

	if err := e.poll(keys(ebiten.KeyDigit1, ebiten.KeyDigit3, ebiten.KeySpace)); nil != err {
		t.Fatal(err)
	}
	want := game.ControllerState{Lanes: game.Row(game.Green, game.Yellow), Strum: true}
	if got := e.Shared.Snapshot(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestEmulatorEscapeWithoutShared(t *testing.T) {
	e, err := NewEmulator(frame.NewPublisher(2, 2), []rune("12345"))
	if nil != err {
		t.Fatal(err)
	}
	if err := e.poll(keys()); nil != err {
		t.Fatalf("poll without keys = %v", err)
	}
	if err := e.poll(keys(ebiten.KeyEscape)); !errors.Is(err, ebiten.Termination) {
		t.Errorf("got %v, want termination", err)
	}
	if !e.quit {
		t.Error("escape did not request a quit")
	}
}
