package game

// MakeClaim announces a claim for the acting player. The claim does not
// have to match the hidden roll, but it must meet or beat the round's
// minimum. On success the claim becomes the new minimum, the turn passes
// to the next active player and the state waits for their response. The
// hidden roll is preserved for a later reveal.
//
// Claiming 21 flags the rest of the round as double stakes immediately and
// grants the responder a pass option on top of the usual roll-to-beat and
// call-bluff choices.
func MakeClaim(state GameState, playerID string, claim Roll) (GameState, error) {
	if state.Phase == PhaseFinished {
		return state, ErrGameOver
	}
	if state.CurrentTurnPlayerID != playerID {
		return state, ErrNotYourTurn
	}
	if state.Phase != PhaseAwaitingClaim {
		return state, ErrWrongPhase
	}
	if state.MinimumClaim != nil && !claim.Beats(*state.MinimumClaim) {
		return state, ErrClaimTooLow
	}

	player, ok := state.Player(playerID)
	if !ok {
		return state, ErrUnknownPlayer
	}

	next := state.clone()
	next.Phase = PhaseAwaitingResponse
	next.CurrentClaim = &claim
	next.MinimumClaim = &claim
	next.PreviousClaimerID = playerID
	next.CurrentTurnPlayerID = NextActivePlayer(next.TurnOrder, next.Players, playerID)
	next.ClaimHistory = append(next.ClaimHistory, ClaimHistoryEntry{
		Claim:      claim,
		PlayerID:   playerID,
		PlayerName: player.Name,
	})

	// Votes refer to the outstanding claim, so a new claim resets them.
	next.BluffVotes = nil

	if claim.IsTwentyOne() {
		next.IsDoubleStakes = true
		next.PendingTwentyOneChoice = true
	}

	return next, nil
}
