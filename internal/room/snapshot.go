package room

import "github.com/lox/cubebluff/internal/game"

// Snapshot is a viewer-specific picture of the room: the redacted game
// state plus the lobby metadata clients poll for.
type Snapshot struct {
	Code        string          `json:"code"`
	Started     bool            `json:"started"`
	Settings    Settings        `json:"settings"`
	Players     []game.Player   `json:"players"`
	PlayerCount int             `json:"playerCount"`
	HostSlotID  string          `json:"hostPlayerId,omitempty"`
	YourSlotID  string          `json:"yourPlayerId,omitempty"`
	GameState   *game.GameState `json:"gameState,omitempty"`
	ValidClaims []game.Roll     `json:"validClaims,omitempty"`
	Winners     []game.Player   `json:"winners,omitempty"`
	Version     uint64          `json:"version"`
}

// Snapshot reads the room for the given viewer. Reading is when elapsed
// time is noticed: the game state is run through Tick first and any phase
// change is persisted before the redacted copy is built. The hidden roll
// never appears in a snapshot except for the player who just rolled.
func (r *Room) Snapshot(viewerClientID string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Code:     r.Code,
		Started:  r.started(),
		Settings: r.settings,
	}

	if m, ok := r.members[viewerClientID]; ok {
		snap.YourSlotID = m.SlotID
	}
	if m, ok := r.members[r.hostID]; ok {
		snap.HostSlotID = m.SlotID
	}

	if !r.started() {
		snap.Players = append([]game.Player(nil), r.roster...)
		snap.PlayerCount = len(r.roster)
		snap.Version = r.version
		return snap
	}

	ticked := game.Tick(*r.state, r.clock.Now())
	if ticked.Phase != r.state.Phase {
		r.logger.Debug("auto transition", "from", r.state.Phase, "to", ticked.Phase, "round", ticked.Round)
		r.state = &ticked
		r.touch()
	}

	redacted := game.Redacted(*r.state, snap.YourSlotID)
	snap.GameState = &redacted
	snap.Players = redacted.Players
	snap.PlayerCount = len(redacted.Players)

	// The player on the dice gets the menu of claims they may make;
	// everyone gets the winners once the game is over.
	if redacted.Phase == game.PhaseAwaitingClaim && snap.YourSlotID == redacted.CurrentTurnPlayerID {
		snap.ValidClaims = game.ValidClaims(redacted.MinimumClaim)
	}
	if redacted.Phase == game.PhaseFinished {
		snap.Winners = redacted.Winners()
	}

	snap.Version = r.version
	return snap
}

// Version reports the room's change counter without building a snapshot.
// Watchers use it to decide whether a new snapshot is worth sending. It
// advances the elapsed-time transitions the same way Snapshot does, so a
// watcher polling Version alone still drives the game forward.
func (r *Room) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started() {
		ticked := game.Tick(*r.state, r.clock.Now())
		if ticked.Phase != r.state.Phase {
			r.state = &ticked
			r.touch()
		}
	}
	return r.version
}
