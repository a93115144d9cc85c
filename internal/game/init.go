package game

import (
	"fmt"
	"sort"
	"time"
)

// Seat describes one participant at game start.
type Seat struct {
	ID     string
	Name   string
	IsHost bool
}

// NewGame creates the state for a fresh game. Turn order is the seat IDs
// in sorted order and is never mutated afterwards; eliminated players stay
// in the list and are skipped. The state opens in the round_start pause so
// clients get a beat before the first roll.
func NewGame(seats []Seat, startingTokens int, now time.Time) (GameState, error) {
	if len(seats) < 2 {
		return GameState{}, fmt.Errorf("need at least 2 players, got %d", len(seats))
	}
	if startingTokens < 1 {
		return GameState{}, fmt.Errorf("starting tokens must be positive, got %d", startingTokens)
	}

	sorted := append([]Seat(nil), seats...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	players := make([]Player, len(sorted))
	turnOrder := make([]string, len(sorted))
	for i, seat := range sorted {
		players[i] = Player{
			ID:     seat.ID,
			Name:   seat.Name,
			Tokens: startingTokens,
			IsHost: seat.IsHost,
		}
		turnOrder[i] = seat.ID
	}

	return GameState{
		Phase:               PhaseRoundStart,
		Round:               1,
		TurnOrder:           turnOrder,
		CurrentTurnPlayerID: turnOrder[0],
		Players:             players,
		ClaimHistory:        []ClaimHistoryEntry{},
		RoundEndAt:          &now,
	}, nil
}
