package game

// ApplyRoll records the hidden roll for the acting player and moves them
// into the claiming phase. It is legal both for the opening roll of a
// round (awaiting_roll) and for a responder rolling to beat the
// outstanding claim (awaiting_response). Rolling past a 21 claim counts as
// playing on, so any pending pass option is consumed.
func ApplyRoll(state GameState, playerID string, roll Roll) (GameState, error) {
	if state.Phase == PhaseFinished {
		return state, ErrGameOver
	}
	if state.CurrentTurnPlayerID != playerID {
		return state, ErrNotYourTurn
	}
	if state.Phase != PhaseAwaitingRoll && state.Phase != PhaseAwaitingResponse {
		return state, ErrWrongPhase
	}

	next := state.clone()
	next.Phase = PhaseAwaitingClaim
	next.CurrentRoll = &roll
	next.PendingTwentyOneChoice = false
	return next, nil
}
