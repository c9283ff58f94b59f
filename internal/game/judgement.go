package game

import "fmt"

// Outcome is what a tick of the hit detector decided.
type Outcome uint8

const (
	NoAction Outcome = iota
	Hit
	Miss
	Expired // the row scrolled off screen without being hit
	Finished
)

var outcomeNames = [...]string{"none", "hit", "miss", "expired", "finished"}

func (o Outcome) String() string {
	if int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Reason qualifies a Miss.
type Reason uint8

const (
	NoReason Reason = iota
	NoNote          // strum with nothing inside the hit window
	WrongLanes      // strum on a row with a different chord held
)

var reasonNames = [...]string{"", "no note to hit", "wrong lanes"}

func (r Reason) String() string {
	if int(r) >= len(reasonNames) {
		return "unknown"
	}
	return reasonNames[r]
}

// Judgement is a single gameplay event. Misses are judgements, not errors.
type Judgement struct {
	Outcome Outcome
	Reason  Reason
	Row     int
	Offset  float64
	Delta   float64 // offset relative to the hit line, positive is below
	Want    NoteRow
	Got     NoteRow
}

func (j Judgement) String() string {
	switch j.Outcome {
	case Miss:
		return fmt.Sprintf("miss (%v) row %d want %v got %v", j.Reason, j.Row, j.Want, j.Got)
	case Hit, Expired:
		return fmt.Sprintf("%v row %d %v (%+.1fpx)", j.Outcome, j.Row, j.Want, j.Delta)
	}
	return j.Outcome.String()
}
