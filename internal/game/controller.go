package game

import "sync"

// ControllerState is what the player is doing with the guitar right now.
type ControllerState struct {
	Lanes NoteRow
	Strum bool
}

func (c ControllerState) Pressed(l Lane) bool {
	return c.Lanes[l]
}

// SharedController is the single source of truth for the controller. Only the
// input reader writes it, the game loop takes one Snapshot per tick.
type SharedController struct {
	mu    sync.Mutex
	state ControllerState
}

// Set overwrites the shared state. Callers decode before calling, the lock is
// only held for the copy.
func (s *SharedController) Set(state ControllerState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Snapshot copies the shared state out. The returned value is never written
// back.
func (s *SharedController) Snapshot() ControllerState {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	return state
}
