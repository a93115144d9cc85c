package game

import "time"

// Phase is the current position in the game state machine.
type Phase string

const (
	PhaseRoundStart       Phase = "round_start"
	PhaseAwaitingRoll     Phase = "awaiting_roll"
	PhaseAwaitingClaim    Phase = "awaiting_claim"
	PhaseAwaitingResponse Phase = "awaiting_response"
	PhaseResolvingBluff   Phase = "resolving_bluff"
	PhasePlayerEliminated Phase = "player_eliminated"
	PhaseFinished         Phase = "finished"
)

// ResolutionType discriminates the three ways a claim chain can end.
type ResolutionType string

const (
	// ResolutionBluffLie means a bluff was called and the claimer had lied.
	ResolutionBluffLie ResolutionType = "bluff_confirmed_lie"
	// ResolutionBluffTruth means a bluff was called but the claim was honest.
	ResolutionBluffTruth ResolutionType = "bluff_confirmed_truth"
	// ResolutionPass means the responder paid a token to duck a 21 claim.
	ResolutionPass ResolutionType = "pass_21"
)

// Resolution records the outcome of a bluff call or a 21 pass. It is kept
// on the state until the next round starts so clients can display it.
type Resolution struct {
	Type       ResolutionType `json:"type"`
	ActualRoll *Roll          `json:"actualRoll,omitempty"` // revealed roll, absent for a pass
	Claim      Roll           `json:"claim"`
	ClaimerID  string         `json:"claimerId"`
	CallerID   string         `json:"callerId,omitempty"` // absent for a pass
	LoserID    string         `json:"loserId"`
	TokensLost int            `json:"tokensLost"`
}

// ClaimHistoryEntry is one announced claim. Display only; it carries no
// state machine weight.
type ClaimHistoryEntry struct {
	Claim      Roll   `json:"claim"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// Vote is a spectator guess about the outstanding claim.
type Vote string

const (
	VoteBluff Vote = "bluff"
	VoteTruth Vote = "truth"
)

// GameState is the full authoritative state of one game. Transition
// functions take a state by value and return a fresh one; the input is
// never mutated. CurrentRoll is the only secret field and must be
// redacted before a state leaves the server (see Redacted).
type GameState struct {
	Phase Phase `json:"phase"`
	Round int   `json:"round"`

	TurnOrder           []string `json:"turnOrder"`
	CurrentTurnPlayerID string   `json:"currentTurnPlayerId"`
	Players             []Player `json:"players"`

	CurrentRoll       *Roll               `json:"currentRoll,omitempty"`
	CurrentClaim      *Roll               `json:"currentClaim,omitempty"`
	PreviousClaimerID string              `json:"previousClaimerId,omitempty"`
	MinimumClaim      *Roll               `json:"minimumClaim,omitempty"`
	ClaimHistory      []ClaimHistoryEntry `json:"claimHistory"`

	IsDoubleStakes         bool `json:"isDoubleStakes"`
	PendingTwentyOneChoice bool `json:"pendingTwentyOneChoice"`

	LastResolution *Resolution     `json:"lastResolution,omitempty"`
	BluffVotes     map[string]Vote `json:"bluffVotes,omitempty"`

	// Wall clock markers consumed by Tick. Each is cleared once its
	// transition has fired.
	RoundEndAt    *time.Time `json:"roundEndAt,omitempty"`
	ResolutionAt  *time.Time `json:"resolutionAt,omitempty"`
	EliminationAt *time.Time `json:"eliminationAt,omitempty"`
}

// clone returns a deep copy so transitions can build the next state
// without aliasing the previous one.
func (s GameState) clone() GameState {
	next := s

	next.TurnOrder = append([]string(nil), s.TurnOrder...)
	next.Players = append([]Player(nil), s.Players...)
	next.ClaimHistory = append([]ClaimHistoryEntry(nil), s.ClaimHistory...)

	next.CurrentRoll = copyRoll(s.CurrentRoll)
	next.CurrentClaim = copyRoll(s.CurrentClaim)
	next.MinimumClaim = copyRoll(s.MinimumClaim)

	if s.LastResolution != nil {
		res := *s.LastResolution
		res.ActualRoll = copyRoll(s.LastResolution.ActualRoll)
		next.LastResolution = &res
	}

	if s.BluffVotes != nil {
		votes := make(map[string]Vote, len(s.BluffVotes))
		for id, v := range s.BluffVotes {
			votes[id] = v
		}
		next.BluffVotes = votes
	}

	next.RoundEndAt = copyTime(s.RoundEndAt)
	next.ResolutionAt = copyTime(s.ResolutionAt)
	next.EliminationAt = copyTime(s.EliminationAt)

	return next
}

func copyRoll(r *Roll) *Roll {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Player returns the player with the given slot ID.
func (s GameState) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// ActivePlayers returns every player still holding tokens.
func (s GameState) ActivePlayers() []Player {
	active := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.IsEliminated {
			active = append(active, p)
		}
	}
	return active
}

// Winners returns the surviving player once the game is finished. If more
// than one player is somehow still active it falls back to the highest
// token count.
func (s GameState) Winners() []Player {
	active := s.ActivePlayers()
	if len(active) <= 1 {
		return active
	}

	max := active[0].Tokens
	for _, p := range active[1:] {
		if p.Tokens > max {
			max = p.Tokens
		}
	}

	winners := make([]Player, 0, 1)
	for _, p := range active {
		if p.Tokens == max {
			winners = append(winners, p)
		}
	}
	return winners
}

// deductToken removes tokens from a player, clamping at zero and marking
// elimination the instant the count hits zero. Already-eliminated players
// are never touched again.
func deductTokens(players []Player, loserID string, amount, round int) []Player {
	for i, p := range players {
		if p.ID != loserID || p.IsEliminated {
			continue
		}
		p.Tokens -= amount
		if p.Tokens <= 0 {
			p.Tokens = 0
			p.IsEliminated = true
			p.EliminatedRound = round
		}
		players[i] = p
	}
	return players
}
