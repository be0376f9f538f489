package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	BoardSize      string `json:"board_size,omitempty"`
	PlayerCount    int    `json:"player_count,omitempty"`
	TwoLetterWords bool   `json:"two_letter_words,omitempty"`
	EndOnEmptyBag  bool   `json:"end_on_empty_bag,omitempty"`
}

// SelectGlyphlingRequest selects one of the current player's glyphlings
// by per-player index (0-based).
type SelectGlyphlingRequest struct {
	Glyphling int `json:"glyphling"`
}

// CellRequest is the request body for intents that name a board cell
type CellRequest struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// SelectLetterRequest is the request body for choosing the cast letter
type SelectLetterRequest struct {
	Letter string `json:"letter"`
}

// DiscardRequest is the request body for a cycle-mode discard
type DiscardRequest struct {
	Letters string `json:"letters"`
}

// AIMoveRequest asks the engine to play one full turn for the current
// player. Personality and difficulty are optional; defaults are the
// scholar at first_class.
type AIMoveRequest struct {
	Personality string `json:"personality,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

// AIDiscardsRequest asks the engine to resolve cycle mode for the
// current player.
type AIDiscardsRequest struct {
	Personality string `json:"personality,omitempty"`
}
