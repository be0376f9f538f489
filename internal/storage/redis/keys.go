package redis

import (
	"fmt"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "glyphtender"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// summaryKey returns the Redis key for a GameSummary
func summaryKey(id model.GameID) string {
	return fmt.Sprintf("%s:summary:%s", keyPrefix, id)
}

// dictionaryKey returns the Redis key for the dictionary word list
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
