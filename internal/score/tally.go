package score

import (
	"fmt"

	"git.lost.host/meutraa/strum/internal/game"
)

// Tally counts the judgements of a session.
type Tally struct {
	Hits       int
	WrongLanes int
	NoNote     int
	Expired    int
	Streak     int
	BestStreak int
	Rows       int // rows retired so far, by hit or expiry
}

func (t *Tally) Record(j game.Judgement) {
	switch j.Outcome {
	case game.Hit:
		t.Hits++
		t.Rows++
		t.Streak++
		if t.Streak > t.BestStreak {
			t.BestStreak = t.Streak
		}
	case game.Miss:
		if j.Reason == game.WrongLanes {
			t.WrongLanes++
		} else {
			t.NoNote++
		}
		t.Streak = 0
	case game.Expired:
		t.Rows++
		if !j.Want.Empty() {
			t.Expired++
			t.Streak = 0
		}
	}
}

func (t Tally) Misses() int {
	return t.WrongLanes + t.NoNote
}

// Accuracy is hits over every note row and every bad strum, between 0 and 1.
func (t Tally) Accuracy() float64 {
	total := t.Hits + t.Expired + t.Misses()
	if total == 0 {
		return 0
	}
	return float64(t.Hits) / float64(total)
}

// Better reports whether t beats o.
func (t Tally) Better(o Tally) bool {
	if t.Hits != o.Hits {
		return t.Hits > o.Hits
	}
	return t.Accuracy() > o.Accuracy()
}

func (t Tally) String() string {
	return fmt.Sprintf("hits %d  miss %d  expired %d  streak %d (best %d)  %5.1f%%",
		t.Hits, t.Misses(), t.Expired, t.Streak, t.BestStreak, 100*t.Accuracy())
}
