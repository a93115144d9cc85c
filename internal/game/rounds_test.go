package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveBluff(t *testing.T, state GameState, claimer, caller string, actual, claim Roll) GameState {
	t.Helper()
	state = claimAs(t, state, claimer, actual, claim)
	state, err := CallBluff(state, caller, actual, t0)
	require.NoError(t, err)
	return state
}

func TestBluffCallerStartsNextRound(t *testing.T) {
	t.Parallel()

	state := testGame(t, 5, "Alice", "Bob", "Carol")
	state = resolveBluff(t, state, "player-0", "player-1", mustRoll(t, 6, 5), mustRoll(t, 6, 5))
	require.Equal(t, PhaseResolvingBluff, state.Phase)

	later := t0.Add(time.Minute)
	state = StartNewRound(state, later)

	assert.Equal(t, PhaseRoundStart, state.Phase)
	assert.Equal(t, 2, state.Round)
	assert.Equal(t, "player-1", state.CurrentTurnPlayerID)
	require.NotNil(t, state.RoundEndAt)
	assert.Equal(t, later, *state.RoundEndAt)
	assert.Nil(t, state.ResolutionAt)
	assert.Nil(t, state.LastResolution)
}

func TestEliminatedCallerFallsBackToNextActive(t *testing.T) {
	t.Parallel()

	// Bob calls an honest claim with his last token and goes out; Carol,
	// the next active player after him, opens the new round.
	state := testGame(t, 5, "Alice", "Bob", "Carol")
	state.Players = deductTokens(state.Players, "player-1", 4, state.Round)

	state = resolveBluff(t, state, "player-0", "player-1", mustRoll(t, 6, 5), mustRoll(t, 6, 5))
	require.Equal(t, PhasePlayerEliminated, state.Phase)

	state = StartNewRound(state, t0)
	assert.Equal(t, "player-2", state.CurrentTurnPlayerID)
}

func TestStartNewRoundFinishesDepletedGame(t *testing.T) {
	t.Parallel()

	state := testGame(t, 5, "Alice", "Bob")
	state.Players = deductTokens(state.Players, "player-1", 5, state.Round)

	state = StartNewRound(state, t0)
	assert.Equal(t, PhaseFinished, state.Phase)
}

func TestBeginRound(t *testing.T) {
	t.Parallel()

	seats := []Seat{{ID: "player-0", Name: "Alice", IsHost: true}, {ID: "player-1", Name: "Bob"}}
	state, err := NewGame(seats, 5, t0)
	require.NoError(t, err)

	state = BeginRound(state)
	assert.Equal(t, PhaseAwaitingRoll, state.Phase)
	assert.Nil(t, state.RoundEndAt)

	// Outside round_start it is a no-op.
	same := BeginRound(state)
	assert.Equal(t, state, same)
}
