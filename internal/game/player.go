package game

// Player is one seat in a running game. Slot IDs are stable for the
// lifetime of a game instance; the mapping from client identities to slots
// lives at the boundary.
type Player struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Tokens          int    `json:"tokens"`
	IsHost          bool   `json:"isHost"`
	IsEliminated    bool   `json:"isEliminated"`
	EliminatedRound int    `json:"eliminatedRound,omitempty"`
}
