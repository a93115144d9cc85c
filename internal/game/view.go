package game

// Redacted returns a copy of the state safe to send to the given viewer.
// The hidden roll is visible only to the player who made it, and only
// while they are still choosing their claim; everyone else learns it
// through the resolution reveal.
func Redacted(state GameState, viewerID string) GameState {
	next := state.clone()
	if next.CurrentRoll == nil {
		return next
	}
	if next.Phase == PhaseAwaitingClaim && viewerID == next.CurrentTurnPlayerID {
		return next
	}
	next.CurrentRoll = nil
	return next
}
