package room

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cubebluff/internal/game"
)

// startedRoom returns a two-player room ticked into awaiting_roll.
func startedRoom(t *testing.T) (*Room, *quartz.Mock) {
	t.Helper()

	mgr, clock := testManager(t)
	r, err := mgr.Create("alice", "Alice", Settings{StartingTokens: 5})
	require.NoError(t, err)
	require.NoError(t, r.Join("bob", "Bob"))
	require.NoError(t, r.Start("alice"))

	clock.Advance(game.RoundStartDelay)
	snap := r.Snapshot("alice")
	require.Equal(t, game.PhaseAwaitingRoll, snap.GameState.Phase)
	return r, clock
}

func TestRollIsPrivate(t *testing.T) {
	t.Parallel()

	r, _ := startedRoom(t)
	roll, state, err := r.Roll("alice")
	require.NoError(t, err)
	require.Equal(t, game.PhaseAwaitingClaim, state.Phase)
	assert.GreaterOrEqual(t, roll.Rank, 1)
	assert.LessOrEqual(t, roll.Rank, 21)

	// Only the roller's snapshot carries the roll.
	mine := r.Snapshot("alice")
	require.NotNil(t, mine.GameState.CurrentRoll)
	assert.Equal(t, roll, *mine.GameState.CurrentRoll)

	theirs := r.Snapshot("bob")
	assert.Nil(t, theirs.GameState.CurrentRoll)
}

func TestActionsRequireMembership(t *testing.T) {
	t.Parallel()

	r, _ := startedRoom(t)
	_, _, err := r.Roll("mallory")
	assert.ErrorIs(t, err, ErrNotInRoom)

	_, err = r.Claim("mallory", 6, 5)
	assert.ErrorIs(t, err, ErrNotInRoom)
}

func TestActionsBeforeStart(t *testing.T) {
	t.Parallel()

	mgr, _ := testManager(t)
	r, err := mgr.Create("alice", "Alice", Settings{StartingTokens: 5})
	require.NoError(t, err)

	_, _, err = r.Roll("alice")
	assert.ErrorIs(t, err, ErrGameNotStarted)
}

// A claim of 31 (the worst roll) can never be a lie, so calling bluff on
// it deterministically costs the caller a token, whatever the dice did.
func TestClaimAndBluffFlow(t *testing.T) {
	t.Parallel()

	r, _ := startedRoom(t)

	_, _, err := r.Roll("alice")
	require.NoError(t, err)

	// Claims out of range and out of turn are rejected.
	_, err = r.Claim("alice", 9, 5)
	require.ErrorIs(t, err, game.ErrInvalidDie)
	_, err = r.Claim("bob", 3, 1)
	require.ErrorIs(t, err, game.ErrNotYourTurn)

	state, err := r.Claim("alice", 3, 1)
	require.NoError(t, err)
	require.Equal(t, game.PhaseAwaitingResponse, state.Phase)

	revealed, state, err := r.CallBluff("bob")
	require.NoError(t, err)

	res := state.LastResolution
	require.NotNil(t, res)
	assert.Equal(t, game.ResolutionBluffTruth, res.Type)
	assert.Equal(t, "player-1", res.LoserID)
	require.NotNil(t, res.ActualRoll)
	assert.Equal(t, revealed, *res.ActualRoll)

	bob, _ := state.Player("player-1")
	assert.Equal(t, 4, bob.Tokens)
}

func TestVoteFlow(t *testing.T) {
	t.Parallel()

	mgr, clock := testManager(t)
	r, err := mgr.Create("alice", "Alice", Settings{StartingTokens: 5})
	require.NoError(t, err)
	require.NoError(t, r.Join("bob", "Bob"))
	require.NoError(t, r.Join("carol", "Carol"))
	require.NoError(t, r.Start("alice"))
	clock.Advance(game.RoundStartDelay)
	r.Snapshot("alice")

	_, _, err = r.Roll("alice")
	require.NoError(t, err)
	_, err = r.Claim("alice", 5, 4)
	require.NoError(t, err)

	vote := game.VoteBluff
	state, err := r.Vote("carol", &vote)
	require.NoError(t, err)
	assert.Equal(t, game.VoteBluff, state.BluffVotes["player-2"])

	// The claimer cannot vote on their own claim.
	_, err = r.Vote("alice", &vote)
	assert.ErrorIs(t, err, game.ErrOwnClaim)
}

func TestPassFlow(t *testing.T) {
	t.Parallel()

	r, _ := startedRoom(t)

	_, _, err := r.Roll("alice")
	require.NoError(t, err)
	_, err = r.Claim("alice", 2, 1)
	require.NoError(t, err)

	state, err := r.Pass("bob")
	require.NoError(t, err)

	// Flat cost, fresh round.
	bob, _ := state.Player("player-1")
	assert.Equal(t, 4, bob.Tokens)
	assert.Equal(t, game.PhaseRoundStart, state.Phase)
	assert.Equal(t, 2, state.Round)
}

func TestSnapshotValidClaims(t *testing.T) {
	t.Parallel()

	r, _ := startedRoom(t)

	// No dice rolled yet, no claim menu.
	assert.Empty(t, r.Snapshot("alice").ValidClaims)

	_, _, err := r.Roll("alice")
	require.NoError(t, err)

	// First claim of the round: every value is open to the roller.
	snap := r.Snapshot("alice")
	assert.Len(t, snap.ValidClaims, 21)
	assert.Empty(t, r.Snapshot("bob").ValidClaims)

	_, err = r.Claim("alice", 5, 4)
	require.NoError(t, err)
	_, _, err = r.Roll("bob")
	require.NoError(t, err)

	// Rolling to beat: the menu stops at the outstanding minimum.
	snap = r.Snapshot("bob")
	require.NotNil(t, snap.GameState.MinimumClaim)
	require.NotEmpty(t, snap.ValidClaims)
	for _, claim := range snap.ValidClaims {
		assert.True(t, claim.Beats(*snap.GameState.MinimumClaim),
			"claim %s cannot beat minimum %s", claim.Display, snap.GameState.MinimumClaim.Display)
	}
	assert.Empty(t, r.Snapshot("alice").ValidClaims)
}

func TestSnapshotWinners(t *testing.T) {
	t.Parallel()

	mgr, clock := testManager(t)
	r, err := mgr.Create("alice", "Alice", Settings{StartingTokens: 3})
	require.NoError(t, err)
	require.NoError(t, r.Join("bob", "Bob"))
	require.NoError(t, r.Start("alice"))

	// Bob ducks an unbeatable claim three rounds running and bleeds out.
	for round := 0; round < 3; round++ {
		clock.Advance(game.RoundStartDelay)
		snap := r.Snapshot("alice")
		require.Equal(t, game.PhaseAwaitingRoll, snap.GameState.Phase)
		assert.Empty(t, snap.Winners)

		_, _, err = r.Roll("alice")
		require.NoError(t, err)
		_, err = r.Claim("alice", 2, 1)
		require.NoError(t, err)
		_, err = r.Pass("bob")
		require.NoError(t, err)
	}

	snap := r.Snapshot("bob")
	require.Equal(t, game.PhaseFinished, snap.GameState.Phase)
	require.Len(t, snap.Winners, 1)
	assert.Equal(t, "player-0", snap.Winners[0].ID)
	assert.Equal(t, 3, snap.Winners[0].Tokens)
}

func TestRestart(t *testing.T) {
	t.Parallel()

	r, _ := startedRoom(t)
	require.NoError(t, r.Restart("bob", "Bob"))

	snap := r.Snapshot("bob")
	assert.False(t, snap.Started)
	assert.Equal(t, 1, snap.PlayerCount)
	assert.Equal(t, "player-0", snap.YourSlotID)
	assert.Equal(t, snap.YourSlotID, snap.HostSlotID)

	// The old host rejoins as a regular player.
	require.NoError(t, r.Join("alice", "Alice"))
	assert.Equal(t, "player-1", r.Snapshot("alice").YourSlotID)
}

func TestVersionAdvancesOnChange(t *testing.T) {
	t.Parallel()

	r, _ := startedRoom(t)
	before := r.Version()

	_, _, err := r.Roll("alice")
	require.NoError(t, err)
	assert.Greater(t, r.Version(), before)

	// Reads without elapsed transitions leave the version alone.
	v := r.Version()
	r.Snapshot("bob")
	assert.Equal(t, v, r.Version())
}
