package game

// SubmitVote records a spectator guess about the outstanding claim, or
// clears the player's vote when vote is nil. Votes are open to everyone
// except the claimer, eliminated players included, while a claim is
// waiting on a response. They are display only and never influence the
// resolution.
func SubmitVote(state GameState, playerID string, vote *Vote) (GameState, error) {
	if state.Phase == PhaseFinished {
		return state, ErrGameOver
	}
	if state.Phase != PhaseAwaitingResponse || state.CurrentClaim == nil {
		return state, ErrWrongPhase
	}
	if _, ok := state.Player(playerID); !ok {
		return state, ErrUnknownPlayer
	}
	if playerID == state.PreviousClaimerID {
		return state, ErrOwnClaim
	}

	next := state.clone()
	if next.BluffVotes == nil {
		next.BluffVotes = make(map[string]Vote)
	}
	if vote == nil {
		delete(next.BluffVotes, playerID)
	} else {
		next.BluffVotes[playerID] = *vote
	}
	return next, nil
}
