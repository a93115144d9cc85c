package game

import "time"

// PassOnTwentyOne lets the responder duck an outstanding 21 claim for a
// flat cost of one token; the double-stakes multiplier never applies to a
// pass. A single pass ends the round outright: unless the passer was
// eliminated or the game is over, a fresh round starts immediately with
// the next active player after the passer as the new claimant.
func PassOnTwentyOne(state GameState, playerID string, now time.Time) (GameState, error) {
	if state.Phase == PhaseFinished {
		return state, ErrGameOver
	}
	if !state.PendingTwentyOneChoice || state.CurrentClaim == nil {
		return state, ErrNoActiveClaim
	}
	if state.CurrentTurnPlayerID != playerID {
		return state, ErrNotYourTurn
	}
	if state.Phase != PhaseAwaitingResponse {
		return state, ErrWrongPhase
	}

	next := state.clone()
	next.Players = deductTokens(next.Players, playerID, 1, next.Round)

	next.LastResolution = &Resolution{
		Type:       ResolutionPass,
		Claim:      *state.CurrentClaim,
		ClaimerID:  state.PreviousClaimerID,
		LoserID:    playerID,
		TokensLost: 1,
	}

	next.CurrentRoll = nil
	next.CurrentClaim = nil
	next.PreviousClaimerID = ""
	next.PendingTwentyOneChoice = false

	passer, _ := next.Player(playerID)
	switch {
	case len(next.ActivePlayers()) <= 1:
		next.Phase = PhaseFinished
	case passer.IsEliminated:
		next.Phase = PhasePlayerEliminated
		next.EliminationAt = &now
	default:
		next = StartNewRound(next, now)
	}

	return next, nil
}
