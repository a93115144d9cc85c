package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// t0 is an arbitrary fixed instant; the core never reads clocks, so tests
// just thread explicit times through.
var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func mustRoll(t *testing.T, die1, die2 int) Roll {
	t.Helper()
	roll, err := NewRoll(die1, die2)
	require.NoError(t, err)
	return roll
}

// testGame builds a started game (past the round_start pause) with slot
// IDs player-0..player-N in turn order.
func testGame(t *testing.T, tokens int, names ...string) GameState {
	t.Helper()

	seats := make([]Seat, len(names))
	for i, name := range names {
		seats[i] = Seat{ID: fmt.Sprintf("player-%d", i), Name: name, IsHost: i == 0}
	}

	state, err := NewGame(seats, tokens, t0)
	require.NoError(t, err)

	state = Tick(state, t0.Add(RoundStartDelay))
	require.Equal(t, PhaseAwaitingRoll, state.Phase)
	return state
}

// claimAs rolls and claims for the current player in one step.
func claimAs(t *testing.T, state GameState, playerID string, actual, claim Roll) GameState {
	t.Helper()

	state, err := ApplyRoll(state, playerID, actual)
	require.NoError(t, err)

	state, err = MakeClaim(state, playerID, claim)
	require.NoError(t, err)
	return state
}

func tokensOf(t *testing.T, state GameState, playerID string) int {
	t.Helper()
	p, ok := state.Player(playerID)
	require.True(t, ok, "player %s not in game", playerID)
	return p.Tokens
}
