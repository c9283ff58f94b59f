package frame

import (
	"image/color"
	"testing"
)

func TestSetAtClipping(t *testing.T) {
	f := New(4, 3)
	red := color.RGBA{R: 255, A: 255}
	f.Set(1, 2, red)
	f.Set(-1, 0, red)
	f.Set(4, 0, red)
	f.Set(0, 3, red)

	if got := f.At(1, 2); got != red {
		t.Errorf("At(1, 2) = %v, want %v", got, red)
	}
	// blue green red order in memory
	i := 2*f.Stride + 1*BytesPerPixel
	if f.Pix[i] != 0 || f.Pix[i+2] != 255 {
		t.Errorf("pixel bytes %v, want BGR order", f.Pix[i:i+4])
	}
	set := 0
	for _, b := range f.Pix {
		if b != 0 {
			set++
		}
	}
	if set != 2 {
		t.Errorf("%d bytes written, want 2 (red and alpha)", set)
	}
	if got := f.At(10, 10); got != (color.RGBA{}) {
		t.Errorf("out of bounds At = %v", got)
	}
}

func TestFill(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {Width, Height}} {
		f := New(size[0], size[1])
		c := color.RGBA{R: 1, G: 2, B: 3, A: 4}
		f.Fill(c)
		for x, y := range f.Coords() {
			if got := f.At(x, y); got != c {
				t.Fatalf("%v: At(%d, %d) = %v, want %v", size, x, y, got, c)
			}
		}
	}
}

func TestCoordsRestartable(t *testing.T) {
	f := New(3, 2)
	seq := f.Coords()
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != 6 || b != 6 {
		t.Errorf("counted %d then %d, want 6 twice", a, b)
	}

	var last [2]int
	for x, y := range seq {
		last = [2]int{x, y}
		if x == 1 && y == 1 {
			break
		}
	}
	if last != [2]int{1, 1} {
		t.Errorf("early break stopped at %v", last)
	}
}

func TestCopyFromSizeMismatch(t *testing.T) {
	if err := New(2, 2).CopyFrom(New(2, 3)); nil == err {
		t.Error("expected a size mismatch error")
	}
}

func TestRGBA(t *testing.T) {
	f := New(2, 1)
	f.Set(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 0})
	f.Set(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 7})
	dst := make([]byte, 8)
	f.RGBA(dst)
	want := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("RGBA = %v, want %v", dst, want)
		}
	}
}
