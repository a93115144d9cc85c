package game

import "time"

// StartNewRound resets every per-round field and opens the next round, or
// finishes the game when at most one player is left standing.
//
// The starting claimant follows from the previous resolution: after a
// bluff call the caller starts (next active player after them if the
// caller went out); after a 21 pass the next active player after the
// passer starts. With no resolution on record the first active player in
// turn order starts.
func StartNewRound(state GameState, now time.Time) GameState {
	next := state.clone()

	if len(next.ActivePlayers()) <= 1 {
		next.Phase = PhaseFinished
		return next
	}

	starter := nextRoundStarter(next)

	next.Phase = PhaseRoundStart
	next.Round++
	next.CurrentTurnPlayerID = starter

	next.CurrentRoll = nil
	next.CurrentClaim = nil
	next.PreviousClaimerID = ""
	next.MinimumClaim = nil
	next.ClaimHistory = []ClaimHistoryEntry{}
	next.IsDoubleStakes = false
	next.PendingTwentyOneChoice = false
	next.LastResolution = nil
	next.BluffVotes = nil

	next.RoundEndAt = &now
	next.ResolutionAt = nil
	next.EliminationAt = nil

	return next
}

func nextRoundStarter(state GameState) string {
	res := state.LastResolution
	if res == nil {
		for _, id := range state.TurnOrder {
			if p, ok := state.Player(id); ok && !p.IsEliminated {
				return id
			}
		}
		return state.TurnOrder[0]
	}

	if res.Type == ResolutionPass {
		return NextActivePlayer(state.TurnOrder, state.Players, res.LoserID)
	}

	if caller, ok := state.Player(res.CallerID); ok && !caller.IsEliminated {
		return res.CallerID
	}
	return NextActivePlayer(state.TurnOrder, state.Players, res.CallerID)
}

// BeginRound bumps the state out of the round_start pause. The roundEndAt
// marker is consumed so repeated ticks stay no-ops.
func BeginRound(state GameState) GameState {
	if state.Phase != PhaseRoundStart {
		return state
	}
	next := state.clone()
	next.Phase = PhaseAwaitingRoll
	next.RoundEndAt = nil
	return next
}
