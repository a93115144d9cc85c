package room

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cubebluff/internal/dice"
	"github.com/lox/cubebluff/internal/game"
)

const (
	// MaxPlayers is the hard cap on a room's roster.
	MaxPlayers = 8
	// MinPlayers is the minimum roster to start a game.
	MinPlayers = 2

	maxNicknameLen = 20
)

// Settings are the host-chosen room options.
type Settings struct {
	StartingTokens int `json:"startingTokens"`
}

// validTokenCounts are the starting-token options offered to hosts.
var validTokenCounts = map[int]bool{3: true, 5: true, 7: true, 10: true}

// ValidTokens reports whether n is one of the starting-token options.
func ValidTokens(n int) bool {
	return validTokenCounts[n]
}

// NormalizeTokens maps an arbitrary requested token count onto a valid
// option, defaulting to 5.
func NormalizeTokens(n int) int {
	if validTokenCounts[n] {
		return n
	}
	return 5
}

// membership ties a stable client identity to an in-game player slot.
// Client IDs come from the client's local storage (or are minted by the
// server); slot IDs are the "player-N" values the game core works with.
type membership struct {
	Nickname string
	SlotID   string
}

// Room is one game room: a lobby roster, an optional running game, and
// the identity mapping between them. All methods serialize on the room
// mutex; combined with the turn checks inside the game core that gives
// at-most-one accepted transition per game event.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu         sync.Mutex
	hostID     string // client ID of the current host
	settings   Settings
	roster     []game.Player         // lobby roster, slot IDs assigned at join time
	members    map[string]membership // client ID -> slot
	state      *game.GameState       // nil until the game starts
	roller     *dice.Roller
	clock      quartz.Clock
	logger     *log.Logger
	version    uint64 // bumped on every observable change, for watchers
	lastActive time.Time
}

func newRoom(code string, hostClientID, hostNickname string, settings Settings, roller *dice.Roller, clock quartz.Clock, logger *log.Logger) *Room {
	now := clock.Now()
	r := &Room{
		Code:       code,
		CreatedAt:  now,
		hostID:     hostClientID,
		settings:   settings,
		members:    make(map[string]membership),
		roller:     roller,
		clock:      clock,
		logger:     logger.With("room", code),
		lastActive: now,
	}
	r.addMember(hostClientID, hostNickname, true)
	return r
}

// addMember appends a roster slot. Caller holds the lock (or is the
// constructor).
func (r *Room) addMember(clientID, nickname string, isHost bool) {
	slotID := fmt.Sprintf("player-%d", len(r.roster))
	r.roster = append(r.roster, game.Player{
		ID:     slotID,
		Name:   nickname,
		Tokens: r.settings.StartingTokens,
		IsHost: isHost,
	})
	r.members[clientID] = membership{Nickname: nickname, SlotID: slotID}
}

func (r *Room) touch() {
	r.version++
	r.lastActive = r.clock.Now()
}

// Join adds a player to the lobby, or lets a known player back in. During
// a running game a client with a fresh identity can reclaim their seat by
// joining under the same nickname.
func (r *Room) Join(clientID, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if len(nickname) < 1 || len(nickname) > maxNicknameLen {
		return ErrBadNickname
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[clientID]; ok {
		return nil // already in, treat as rejoin
	}

	if r.started() {
		for _, p := range r.roster {
			if strings.EqualFold(p.Name, nickname) {
				r.members[clientID] = membership{Nickname: nickname, SlotID: p.ID}
				r.touch()
				r.logger.Info("player rejoined", "nickname", nickname, "slot", p.ID)
				return nil
			}
		}
		return ErrGameStarted
	}

	for _, p := range r.roster {
		if strings.EqualFold(p.Name, nickname) {
			return ErrNameTaken
		}
	}
	if len(r.roster) >= MaxPlayers {
		return ErrRoomFull
	}

	r.addMember(clientID, nickname, false)
	r.touch()
	r.logger.Info("player joined", "nickname", nickname, "players", len(r.roster))
	return nil
}

// Start begins the game. Host only, and the roster must hold at least two
// players.
func (r *Room) Start(clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if clientID != r.hostID {
		return ErrNotHost
	}
	if r.started() {
		return ErrGameStarted
	}
	if len(r.roster) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	seats := make([]game.Seat, len(r.roster))
	for i, p := range r.roster {
		seats[i] = game.Seat{ID: p.ID, Name: p.Name, IsHost: p.IsHost}
	}

	state, err := game.NewGame(seats, r.settings.StartingTokens, r.clock.Now())
	if err != nil {
		return err
	}
	r.state = &state
	r.touch()
	r.logger.Info("game started", "players", len(seats), "tokens", r.settings.StartingTokens)
	return nil
}

// Restart throws the finished game away and reopens the lobby. The first
// player to ask becomes the new host; everyone else rejoins fresh.
func (r *Room) Restart(clientID, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if len(nickname) < 1 || len(nickname) > maxNicknameLen {
		return ErrBadNickname
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = nil
	r.hostID = clientID
	r.roster = nil
	r.members = make(map[string]membership)
	r.addMember(clientID, nickname, true)
	r.touch()
	r.logger.Info("room restarted", "host", nickname)
	return nil
}

// UpdateSettings changes room options. Host only, lobby only. Every
// lobby player's token stake is adjusted to match.
func (r *Room) UpdateSettings(clientID string, settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if clientID != r.hostID {
		return ErrNotHost
	}
	if r.started() {
		return ErrGameStarted
	}

	settings.StartingTokens = NormalizeTokens(settings.StartingTokens)
	r.settings = settings
	for i := range r.roster {
		r.roster[i].Tokens = settings.StartingTokens
	}
	r.touch()
	return nil
}

func (r *Room) started() bool {
	return r.state != nil
}

// slotFor resolves a client identity to its in-game slot.
func (r *Room) slotFor(clientID string) (string, error) {
	m, ok := r.members[clientID]
	if !ok {
		return "", ErrNotInRoom
	}
	return m.SlotID, nil
}

// withState runs a game transition under the room lock and persists the
// result when it succeeds.
func (r *Room) withState(clientID string, fn func(state game.GameState, slotID string) (game.GameState, error)) (game.GameState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started() {
		return game.GameState{}, ErrGameNotStarted
	}
	slotID, err := r.slotFor(clientID)
	if err != nil {
		return game.GameState{}, err
	}

	next, err := fn(*r.state, slotID)
	if err != nil {
		return game.GameState{}, err
	}
	r.state = &next
	r.touch()
	return next, nil
}

// Roll generates the acting player's hidden roll. The returned roll goes
// only to that player; every other view of the state has it redacted.
func (r *Room) Roll(clientID string) (game.Roll, game.GameState, error) {
	var rolled game.Roll
	state, err := r.withState(clientID, func(state game.GameState, slotID string) (game.GameState, error) {
		d1, d2 := r.roller.Roll()
		roll, err := game.NewRoll(d1, d2)
		if err != nil {
			return state, err
		}
		next, err := game.ApplyRoll(state, slotID, roll)
		if err != nil {
			return state, err
		}
		rolled = roll
		return next, nil
	})
	if err != nil {
		return game.Roll{}, game.GameState{}, err
	}
	r.logger.Debug("dice rolled", "player", clientID)
	return rolled, state, nil
}

// Claim announces the acting player's claim.
func (r *Room) Claim(clientID string, die1, die2 int) (game.GameState, error) {
	claim, err := game.NewRoll(die1, die2)
	if err != nil {
		return game.GameState{}, err
	}
	state, err := r.withState(clientID, func(state game.GameState, slotID string) (game.GameState, error) {
		return game.MakeClaim(state, slotID, claim)
	})
	if err != nil {
		return game.GameState{}, err
	}
	r.logger.Info("claim made", "claim", claim.Display, "round", state.Round)
	return state, nil
}

// CallBluff resolves the outstanding claim against the stored roll and
// returns the revealed roll alongside the new state.
func (r *Room) CallBluff(clientID string) (game.Roll, game.GameState, error) {
	var revealed game.Roll
	state, err := r.withState(clientID, func(state game.GameState, slotID string) (game.GameState, error) {
		if state.CurrentRoll == nil {
			return state, game.ErrNoActiveClaim
		}
		actual := *state.CurrentRoll
		next, err := game.CallBluff(state, slotID, actual, r.clock.Now())
		if err != nil {
			return state, err
		}
		revealed = actual
		return next, nil
	})
	if err != nil {
		return game.Roll{}, game.GameState{}, err
	}
	res := state.LastResolution
	r.logger.Info("bluff called",
		"outcome", res.Type,
		"revealed", revealed.Display,
		"loser", res.LoserID,
		"tokensLost", res.TokensLost)
	return revealed, state, nil
}

// Pass takes the flat-cost pass against an outstanding 21 claim.
func (r *Room) Pass(clientID string) (game.GameState, error) {
	state, err := r.withState(clientID, func(state game.GameState, slotID string) (game.GameState, error) {
		return game.PassOnTwentyOne(state, slotID, r.clock.Now())
	})
	if err != nil {
		return game.GameState{}, err
	}
	r.logger.Info("player passed on 21", "round", state.Round)
	return state, nil
}

// Vote records or clears a spectator guess about the outstanding claim.
func (r *Room) Vote(clientID string, vote *game.Vote) (game.GameState, error) {
	return r.withState(clientID, func(state game.GameState, slotID string) (game.GameState, error) {
		return game.SubmitVote(state, slotID, vote)
	})
}
