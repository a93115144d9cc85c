package game

import "time"

// Dwell times for the display phases. There is no push channel, so phase
// changes that happen "by themselves" are detected by comparing these
// against the clock on every state read.
const (
	RoundStartDelay  = 2 * time.Second
	ResolutionDelay  = 4 * time.Second
	EliminationDelay = 3 * time.Second
)

// Tick advances at most one elapsed-time transition and returns the state
// otherwise unchanged. It is pure and idempotent for a fixed now: each
// transition consumes its timestamp, so reading the state twice at the
// same instant cannot fire twice. Chained transitions resolve across
// successive ticks.
func Tick(state GameState, now time.Time) GameState {
	switch state.Phase {
	case PhaseRoundStart:
		if state.RoundEndAt != nil && now.Sub(*state.RoundEndAt) >= RoundStartDelay {
			return BeginRound(state)
		}

	case PhaseResolvingBluff:
		if state.ResolutionAt != nil && now.Sub(*state.ResolutionAt) >= ResolutionDelay {
			return StartNewRound(state, now)
		}

	case PhasePlayerEliminated:
		if state.EliminationAt != nil && now.Sub(*state.EliminationAt) >= EliminationDelay {
			if len(state.ActivePlayers()) <= 1 {
				next := state.clone()
				next.Phase = PhaseFinished
				next.EliminationAt = nil
				return next
			}
			return StartNewRound(state, now)
		}
	}

	return state
}
