package model

import "time"

// PlayerID uniquely identifies a player account across the system.
// Game seats are plain indices; accounts exist only for the API
// surface and are never referenced by the engine.
type PlayerID string

// Player represents an account that can operate games over the API
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data.
// Stored separately so the password hash never travels with sessions.
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
