package game

import (
	"math"
	"testing"
	"time"
)

func testSong(t *testing.T, rows int) *Song {
	t.Helper()
	chart := &Chart{Tempo: 120, RowsPerMeasure: 2, Rows: make([]NoteRow, rows)}
	song, err := NewSong(chart, 30)
	if nil != err {
		t.Fatalf("NewSong: %v", err)
	}
	return song
}

func TestSongDerivedConstants(t *testing.T) {
	song := testSong(t, 4)

	// 120 bpm is 500ms a beat, two rows a measure gives 250ms a row
	if got := song.RowDurationMs(); got != 250 {
		t.Errorf("RowDurationMs = %v, want 250", got)
	}
	if got := song.ScrollVelocity(); got != 30.0/250.0 {
		t.Errorf("ScrollVelocity = %v, want %v", got, 30.0/250.0)
	}
}

func TestNewSongRejects(t *testing.T) {
	var tests = map[string]struct {
		chart  *Chart
		height float64
	}{
		"nil chart":   {nil, 30},
		"no rows":     {&Chart{Tempo: 120, RowsPerMeasure: 2}, 30},
		"zero tempo":  {&Chart{Tempo: 0, RowsPerMeasure: 2, Rows: []NoteRow{{}}}, 30},
		"zero rows":   {&Chart{Tempo: 120, RowsPerMeasure: 0, Rows: []NoteRow{{}}}, 30},
		"zero height": {&Chart{Tempo: 120, RowsPerMeasure: 2, Rows: []NoteRow{{}}}, 0},
		"nan tempo":   {&Chart{Tempo: math.NaN(), RowsPerMeasure: 2, Rows: []NoteRow{{}}}, 30},
	}
	for name, test := range tests {
		if _, err := NewSong(test.chart, test.height); nil == err {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestNewSongCopiesRows(t *testing.T) {
	rows := []NoteRow{Row(Green)}
	song, err := NewSong(&Chart{Tempo: 100, RowsPerMeasure: 1, Rows: rows}, 10)
	if nil != err {
		t.Fatal(err)
	}
	rows[0] = Row(Red)
	if r, _ := song.Row(0); r != Row(Green) {
		t.Errorf("song row changed with its source slice: %v", r)
	}
}

func TestAdvanceIsLinear(t *testing.T) {
	song := testSong(t, 1)
	for _, total := range []float64{0, 1, 16.667, 250, 1234.5, 60000} {
		for _, n := range []int{1, 2, 3, 7, 100, 1000} {
			once := NewScroller(song, 0)
			once.Advance(total)

			split := NewScroller(song, 0)
			for i := 0; i < n; i++ {
				split.Advance(total / float64(n))
			}

			a, b := once.Position().Offset, split.Position().Offset
			if math.Abs(a-b) > 1e-9*math.Max(1, math.Abs(a)) {
				t.Errorf("advance(%v) = %v but %d steps gave %v", total, a, n, b)
			}
		}
	}
}

func TestAdvanceNeverMovesRow(t *testing.T) {
	song := testSong(t, 3)
	s := NewScroller(song, 0)
	s.Advance(1e6)
	if s.Position().Row != 0 {
		t.Errorf("Row = %d after Advance, want 0", s.Position().Row)
	}
	s.Advance(-100)
	if s.Position().Offset != song.ScrollVelocity()*1e6 {
		t.Errorf("negative elapsed time moved the offset")
	}
}

func TestFirstTickIsZero(t *testing.T) {
	song := testSong(t, 1)
	s := NewScroller(song, 5)
	start := time.Now()
	s.Start(start)
	if elapsed := s.Tick(start); elapsed != 0 {
		t.Errorf("first tick elapsed = %v, want 0", elapsed)
	}
	if s.Position().Offset != 5 {
		t.Errorf("Offset = %v, want 5", s.Position().Offset)
	}
}

func TestTickMeasuresStartToStart(t *testing.T) {
	song := testSong(t, 1)
	s := NewScroller(song, 0)
	start := time.Now()
	s.Start(start)

	s.Tick(start.Add(100 * time.Millisecond))
	// however long the previous tick took to render, the next delta is
	// measured from the previous tick's start
	elapsed := s.Tick(start.Add(250 * time.Millisecond))
	if elapsed != 150 {
		t.Errorf("elapsed = %v, want 150", elapsed)
	}
	want := song.ScrollVelocity() * 250
	if got := s.Position().Offset; math.Abs(got-want) > 1e-9 {
		t.Errorf("Offset = %v, want %v", got, want)
	}
}

func TestConsume(t *testing.T) {
	song := testSong(t, 2)
	s := NewScroller(song, 100)
	s.Consume()
	pos := s.Position()
	if pos.Row != 1 || pos.Offset != 100-song.RowHeight {
		t.Errorf("after consume got %+v", pos)
	}
	if s.Finished() {
		t.Error("finished with one row left")
	}
	s.Consume()
	if !s.Finished() {
		t.Error("not finished after consuming every row")
	}
}
