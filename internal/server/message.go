package server

import (
	"github.com/lox/cubebluff/internal/game"
	"github.com/lox/cubebluff/internal/room"
)

// Request bodies accepted by the HTTP API. All requests that act on a
// room carry the caller's client ID so the room can resolve their seat.

type createRoomRequest struct {
	ClientID string `json:"clientId"`
	Nickname string `json:"nickname"`
	Tokens   int    `json:"tokens,omitempty"`
}

type joinRequest struct {
	ClientID string `json:"clientId"`
	Nickname string `json:"nickname"`
}

type clientRequest struct {
	ClientID string `json:"clientId"`
}

type claimRequest struct {
	ClientID string `json:"clientId"`
	Die1     int    `json:"die1"`
	Die2     int    `json:"die2"`
}

type voteRequest struct {
	ClientID string     `json:"clientId"`
	Vote     *game.Vote `json:"vote"`
}

type settingsRequest struct {
	ClientID string `json:"clientId"`
	Tokens   int    `json:"tokens"`
}

// Response bodies.

type createRoomResponse struct {
	Code     string `json:"code"`
	ClientID string `json:"clientId"`
}

type clientIDResponse struct {
	ClientID string `json:"clientId"`
}

type rollResponse struct {
	Roll     game.Roll     `json:"roll"`
	Snapshot room.Snapshot `json:"snapshot"`
}

type bluffResponse struct {
	Revealed game.Roll     `json:"revealed"`
	Snapshot room.Snapshot `json:"snapshot"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}
