// Package game implements the core state machine for the dice bluffing
// game: roll ranking, claim validation, bluff resolution, the 21 rule,
// turn rotation and elapsed-time phase advancement.
//
// Every operation is a pure function from a GameState (plus the acting
// player's input) to a new GameState. The package performs no I/O, holds
// no state between calls, reads no clocks and rolls no dice; the boundary
// supplies the persisted state, the die values and the current time. A
// failed precondition returns one of the sentinel errors in errors.go and
// leaves the input state untouched.
//
// # Typical flow
//
//	state, _ := game.NewGame(seats, 5, now)
//	state = game.Tick(state, now)                      // round_start -> awaiting_roll
//	state, _ = game.ApplyRoll(state, "player-0", roll) // hidden roll
//	state, _ = game.MakeClaim(state, "player-0", claim)
//	state, _ = game.CallBluff(state, "player-1", roll, now)
//
// Because every transition validates the acting player against the stored
// turn before mutating anything, a stale concurrent write replayed against
// fresh state simply fails its precondition. That is the package's only
// defence against races; the boundary must still serialize updates per
// room.
package game
