package game

import "time"

// ScrollPosition locates the bottom-most note row still in play.
type ScrollPosition struct {
	Row    int     // index of the oldest row on screen
	Offset float64 // y coordinate of that row's centre, in pixels
}

// Scroller turns wall clock time into scroll position. It is owned by the game
// loop and is not safe for concurrent use.
type Scroller struct {
	song *Song
	pos  ScrollPosition
	last time.Time
}

func NewScroller(song *Song, startOffset float64) *Scroller {
	return &Scroller{
		song: song,
		pos:  ScrollPosition{Offset: startOffset},
	}
}

func (s *Scroller) Song() *Song {
	return s.song
}

// Start records the song start as the previous tick, so the first Tick
// advances by nothing.
func (s *Scroller) Start(now time.Time) {
	s.last = now
}

// Tick advances by the time between the start of the previous tick and the
// start of this one, and returns that delta in milliseconds.
func (s *Scroller) Tick(now time.Time) float64 {
	if s.last.IsZero() {
		s.last = now
	}
	elapsed := float64(now.Sub(s.last)) / float64(time.Millisecond)
	s.last = now
	s.Advance(elapsed)
	return elapsed
}

// Advance moves the notes down by velocity × elapsed. The row index is left
// alone, only Consume moves it.
func (s *Scroller) Advance(elapsedMs float64) {
	if elapsedMs <= 0 {
		return
	}
	s.pos.Offset += s.song.ScrollVelocity() * elapsedMs
}

// Consume retires the bottom row: exactly one row forward and exactly one row
// height back up.
func (s *Scroller) Consume() {
	s.pos.Row++
	s.pos.Offset -= s.song.RowHeight
}

func (s *Scroller) Position() ScrollPosition {
	return s.pos
}

// Finished is true once every row has been consumed.
func (s *Scroller) Finished() bool {
	return s.pos.Row >= s.song.Len()
}
