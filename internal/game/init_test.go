package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{ID: "player-1", Name: "Bob"},
		{ID: "player-0", Name: "Alice", IsHost: true},
		{ID: "player-2", Name: "Carol"},
	}

	state, err := NewGame(seats, 5, t0)
	require.NoError(t, err)

	// Turn order is seat IDs in sorted order regardless of input order.
	assert.Equal(t, []string{"player-0", "player-1", "player-2"}, state.TurnOrder)
	assert.Equal(t, "player-0", state.CurrentTurnPlayerID)
	assert.Equal(t, PhaseRoundStart, state.Phase)
	assert.Equal(t, 1, state.Round)
	require.NotNil(t, state.RoundEndAt)
	assert.Equal(t, t0, *state.RoundEndAt)

	for _, p := range state.Players {
		assert.Equal(t, 5, p.Tokens)
		assert.False(t, p.IsEliminated)
	}
	host, ok := state.Player("player-0")
	require.True(t, ok)
	assert.True(t, host.IsHost)
}

func TestNewGameValidation(t *testing.T) {
	t.Parallel()

	_, err := NewGame([]Seat{{ID: "player-0"}}, 5, t0)
	assert.Error(t, err)

	_, err = NewGame([]Seat{{ID: "a"}, {ID: "b"}}, 0, t0)
	assert.Error(t, err)
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	t.Parallel()

	state := testGame(t, 5, "Alice", "Bob")
	before, err := ApplyRoll(state, "player-0", mustRoll(t, 6, 5))
	require.NoError(t, err)

	snapshot := before.clone()
	after, err := MakeClaim(before, "player-0", mustRoll(t, 6, 5))
	require.NoError(t, err)

	// The input state is untouched by the transition.
	assert.Equal(t, snapshot, before)
	assert.NotEqual(t, before.Phase, after.Phase)

	// Slices are not shared between the two states.
	after.Players[0].Tokens = 99
	assert.Equal(t, 5, before.Players[0].Tokens)
}
