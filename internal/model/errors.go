package model

import "errors"

// Common errors used across the application. Every engine operation
// rejects illegal intents and invalid references with one of these;
// none is fatal and none leaves the game state partially mutated.
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game lookup / configuration errors
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrGameComplete     = errors.New("game is already complete")

	// Invalid-reference errors
	ErrInvalidCell      = errors.New("cell is not on the board")
	ErrInvalidGlyphling = errors.New("no such glyphling")
	ErrInvalidLetter    = errors.New("letter must be A-Z")
	ErrLetterNotInHand  = errors.New("letter is not in hand")
	ErrInvalidSeat      = errors.New("no such player seat")

	// Illegal-intent errors (transition not valid for the turn phase)
	ErrWrongPhase       = errors.New("intent not valid in current turn phase")
	ErrIllegalMove      = errors.New("destination is not a legal slide")
	ErrIllegalCast      = errors.New("cell is not a legal cast target")
	ErrGlyphlingTangled = errors.New("glyphling has no legal moves")

	// Summary errors
	ErrSummaryNotFound = errors.New("game summary not found")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
