package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassOnTwentyOne(t *testing.T) {
	t.Parallel()

	state := testGame(t, 5, "Alice", "Bob", "Carol")
	state = claimAs(t, state, "player-0", mustRoll(t, 4, 1), mustRoll(t, 2, 1))
	require.True(t, state.PendingTwentyOneChoice)

	state, err := PassOnTwentyOne(state, "player-1", t0)
	require.NoError(t, err)

	// Passing costs a flat token, never the doubled stake.
	assert.Equal(t, 4, tokensOf(t, state, "player-1"))
	assert.Equal(t, 5, tokensOf(t, state, "player-0"))

	// A single pass ends the round outright; the next active player after
	// the passer opens the new one.
	assert.Equal(t, PhaseRoundStart, state.Phase)
	assert.Equal(t, 2, state.Round)
	assert.Equal(t, "player-2", state.CurrentTurnPlayerID)

	// Fresh round: all per-round state is gone.
	assert.Nil(t, state.CurrentClaim)
	assert.Nil(t, state.MinimumClaim)
	assert.Nil(t, state.CurrentRoll)
	assert.Empty(t, state.ClaimHistory)
	assert.False(t, state.IsDoubleStakes)
	assert.False(t, state.PendingTwentyOneChoice)
	assert.Nil(t, state.LastResolution)
	require.NotNil(t, state.RoundEndAt)
}

func TestPassEliminatesBrokePlayer(t *testing.T) {
	t.Parallel()

	state := testGame(t, 5, "Alice", "Bob", "Carol")
	state.Players = deductTokens(state.Players, "player-1", 4, state.Round)

	state = claimAs(t, state, "player-0", mustRoll(t, 3, 2), mustRoll(t, 2, 1))
	state, err := PassOnTwentyOne(state, "player-1", t0)
	require.NoError(t, err)

	assert.Equal(t, PhasePlayerEliminated, state.Phase)
	require.NotNil(t, state.EliminationAt)

	bob, _ := state.Player("player-1")
	assert.True(t, bob.IsEliminated)

	// The pass is on record so the post-elimination round starter is
	// computed from it.
	require.NotNil(t, state.LastResolution)
	assert.Equal(t, ResolutionPass, state.LastResolution.Type)
	assert.Equal(t, "player-1", state.LastResolution.LoserID)
	assert.Equal(t, 1, state.LastResolution.TokensLost)
	assert.Nil(t, state.LastResolution.ActualRoll)
	assert.Empty(t, state.LastResolution.CallerID)
}

func TestPassEndsGameForLastToken(t *testing.T) {
	t.Parallel()

	state := testGame(t, 5, "Alice", "Bob")
	state.Players = deductTokens(state.Players, "player-1", 4, state.Round)

	state = claimAs(t, state, "player-0", mustRoll(t, 3, 2), mustRoll(t, 2, 1))
	state, err := PassOnTwentyOne(state, "player-1", t0)
	require.NoError(t, err)

	assert.Equal(t, PhaseFinished, state.Phase)
}

func TestPassValidation(t *testing.T) {
	t.Parallel()

	state := testGame(t, 5, "Alice", "Bob")

	// No 21 pending at all.
	_, err := PassOnTwentyOne(state, "player-1", t0)
	assert.ErrorIs(t, err, ErrNoActiveClaim)

	// An ordinary claim offers no pass option.
	state = claimAs(t, state, "player-0", mustRoll(t, 6, 5), mustRoll(t, 6, 5))
	_, err = PassOnTwentyOne(state, "player-1", t0)
	assert.ErrorIs(t, err, ErrNoActiveClaim)

	// Only the responder may pass.
	state = testGame(t, 5, "Alice", "Bob")
	state = claimAs(t, state, "player-0", mustRoll(t, 6, 5), mustRoll(t, 2, 1))
	_, err = PassOnTwentyOne(state, "player-0", t0)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}
