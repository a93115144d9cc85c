package game

import "errors"

// Validation failures returned by the transition functions. All of them
// leave the input state untouched; the boundary surfaces them to the
// acting player and nothing is retried.
var (
	ErrNotYourTurn   = errors.New("not your turn")
	ErrWrongPhase    = errors.New("action is not valid in the current phase")
	ErrClaimTooLow   = errors.New("claim must meet or beat the previous claim")
	ErrNoActiveClaim = errors.New("no claim to respond to")
	ErrGameOver      = errors.New("game is already over")
	ErrInvalidDie    = errors.New("die value must be between 1 and 6")
	ErrOwnClaim      = errors.New("cannot vote on your own claim")
	ErrUnknownPlayer = errors.New("player is not part of this game")
)
