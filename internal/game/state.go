// Package game implements the round lifecycle engine and the four game
// modes built on it. A round runs candidate selection, track resolution,
// playback with fades and a deadline timer; every asynchronous
// continuation is guarded by a session id so resets and rapid mode
// switching never leak stale mutations.
package game

// Phase is the round state machine position.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePlaying
	PhaseRevealed
	PhaseScored
	PhaseWon
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseLoading:
		return "Loading"
	case PhasePlaying:
		return "Playing"
	case PhaseRevealed:
		return "Revealed"
	case PhaseScored:
		return "Scored"
	case PhaseWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// IsActive reports whether a round is in flight.
func (p Phase) IsActive() bool {
	return p == PhaseLoading || p == PhasePlaying
}
