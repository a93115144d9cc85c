package game

import "time"

// CallBluff reveals the hidden roll and settles the outstanding claim. The
// claimer lied iff the revealed roll is strictly worse than the claim; the
// liar, or the caller of an honest claim, pays the stake (doubled when a
// 21 was claimed this round). actualRoll is the value the store kept for
// the claimer; it is trusted, never recomputed.
func CallBluff(state GameState, callerID string, actualRoll Roll, now time.Time) (GameState, error) {
	if state.Phase == PhaseFinished {
		return state, ErrGameOver
	}
	if state.CurrentClaim == nil || state.PreviousClaimerID == "" {
		return state, ErrNoActiveClaim
	}
	if state.CurrentTurnPlayerID != callerID {
		return state, ErrNotYourTurn
	}
	if state.Phase != PhaseAwaitingResponse {
		return state, ErrWrongPhase
	}

	claim := *state.CurrentClaim
	lied := actualRoll.Rank > claim.Rank

	loserID := callerID
	resType := ResolutionBluffTruth
	if lied {
		loserID = state.PreviousClaimerID
		resType = ResolutionBluffLie
	}

	tokensLost := 1
	if state.IsDoubleStakes {
		tokensLost = 2
	}

	next := state.clone()
	next.Players = deductTokens(next.Players, loserID, tokensLost, next.Round)

	revealed := actualRoll
	next.LastResolution = &Resolution{
		Type:       resType,
		ActualRoll: &revealed,
		Claim:      claim,
		ClaimerID:  state.PreviousClaimerID,
		CallerID:   callerID,
		LoserID:    loserID,
		TokensLost: tokensLost,
	}

	next.CurrentRoll = nil
	next.CurrentClaim = nil
	next.PreviousClaimerID = ""
	next.PendingTwentyOneChoice = false

	loser, _ := next.Player(loserID)
	switch {
	case len(next.ActivePlayers()) <= 1:
		next.Phase = PhaseFinished
	case loser.IsEliminated:
		next.Phase = PhasePlayerEliminated
		next.EliminationAt = &now
	default:
		next.Phase = PhaseResolvingBluff
		next.ResolutionAt = &now
	}

	return next, nil
}
