package score

import (
	"math"

	"git.lost.host/meutraa/strum/internal/game"
)

// State of the strum evaluator.
type State uint8

const (
	Waiting State = iota
	Evaluating
)

func (s State) String() string {
	if s == Evaluating {
		return "evaluating"
	}
	return "waiting"
}

// Window is the on-screen geometry the judge works against.
type Window struct {
	HitLine   float64 // y of the indicator row
	Tolerance float64 // inclusive distance from HitLine that still counts
	ExpireAt  float64 // a row whose centre reaches this y is retired unhit
}

// Judge is the hit detection state machine. It shares the scroller with the
// game loop and is the only thing that consumes rows.
type Judge struct {
	scroller *game.Scroller
	window   Window

	// LevelStrum evaluates on every tick the strum bar is held instead of
	// only on the tick it goes down.
	LevelStrum bool

	state  State
	armed  bool
	done   bool
	events []game.Judgement
}

func NewJudge(scroller *game.Scroller, window Window) *Judge {
	return &Judge{
		scroller: scroller,
		window:   window,
		armed:    true,
		done:     scroller.Finished(),
		events:   make([]game.Judgement, 0, 4),
	}
}

// InWindow reports whether a row centred at offset can be hit.
func (j *Judge) InWindow(offset float64) bool {
	return math.Abs(offset-j.window.HitLine) <= j.window.Tolerance
}

func (j *Judge) State() State {
	return j.state
}

func (j *Judge) Done() bool {
	return j.done
}

func (j *Judge) Tick(state game.ControllerState) []game.Judgement {
	j.events = j.events[:0]
	if j.done {
		return nil
	}

	if !state.Strum {
		j.armed = true
	} else if j.armed || j.LevelStrum {
		j.armed = false
		j.state = Evaluating
		j.evaluate(state)
		j.state = Waiting
	}

	for !j.done && j.scroller.Position().Offset >= j.window.ExpireAt {
		j.consume(game.Expired, game.NoReason, state)
	}

	return j.events
}

func (j *Judge) evaluate(state game.ControllerState) {
	pos := j.scroller.Position()
	want, _ := j.scroller.Song().Row(pos.Row)

	if !j.InWindow(pos.Offset) {
		j.emit(game.Miss, game.NoNote, pos, want, state.Lanes)
		return
	}
	if want != state.Lanes {
		j.emit(game.Miss, game.WrongLanes, pos, want, state.Lanes)
		return
	}
	j.consume(game.Hit, game.NoReason, state)
}

func (j *Judge) consume(outcome game.Outcome, reason game.Reason, state game.ControllerState) {
	pos := j.scroller.Position()
	want, _ := j.scroller.Song().Row(pos.Row)
	j.emit(outcome, reason, pos, want, state.Lanes)

	j.scroller.Consume()
	if j.scroller.Finished() {
		j.done = true
		j.emit(game.Finished, game.NoReason, j.scroller.Position(), game.NoteRow{}, game.NoteRow{})
	}
}

func (j *Judge) emit(outcome game.Outcome, reason game.Reason, pos game.ScrollPosition, want, got game.NoteRow) {
	j.events = append(j.events, game.Judgement{
		Outcome: outcome,
		Reason:  reason,
		Row:     pos.Row,
		Offset:  pos.Offset,
		Delta:   pos.Offset - j.window.HitLine,
		Want:    want,
		Got:     got,
	})
}
