package factory

import (
	"time"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/dependencies/mocks"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/auth"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage/memory"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// 2-letter words
		"at", "be", "do", "go", "he", "if", "in", "is", "it", "me",
		"my", "no", "of", "on", "or", "so", "to", "up", "us", "we",
		// 3-letter words
		"ace", "act", "age", "aid", "air", "and", "ant", "arc", "are",
		"arm", "art", "ash", "ask", "ate", "bat", "bed", "bee", "bet",
		"can", "cap", "car", "cat", "cot", "cow", "cup", "cut", "dog",
		"ear", "eat", "end", "era", "eye", "fan", "far", "fit", "fox",
		"gas", "get", "hat", "hen", "his", "hit", "hot", "ice", "ink",
		"ion", "jam", "jar", "key", "law", "leg", "let", "lot", "man",
		"map", "mat", "net", "new", "nut", "oak", "oat", "odd", "oil",
		"old", "one", "ore", "out", "owl", "own", "pan", "pat", "pen",
		"pet", "pig", "pin", "pit", "pot", "rat", "raw", "red", "rib",
		"rim", "rot", "run", "sat", "sea", "set", "sit", "sun", "tan",
		"tap", "tar", "tea", "ten", "the", "tie", "tin", "toe", "ton",
		"top", "two", "urn", "use", "van", "war", "wax", "web", "wet",
		"win", "wit", "yes", "zoo",
		// 4-letter words
		"acre", "area", "atom", "band", "bank", "barn", "bear", "bell",
		"bird", "boat", "bone", "card", "care", "cart", "cast", "cats",
		"cave", "coat", "cold", "core", "corn", "dark", "date", "deer",
		"door", "dust", "east", "echo", "face", "farm", "fern", "fire",
		"fish", "flag", "gate", "gear", "gift", "glen", "goat", "gold",
		"hare", "herb", "hill", "horn", "iron", "jade", "kiln", "king",
		"lake", "lamp", "land", "leaf", "lime", "loom", "mare", "mask",
		"mist", "moon", "moss", "moth", "nest", "node", "note", "oath",
		"pace", "path", "peak", "pear", "pine", "pond", "rain", "reed",
		"ring", "road", "rock", "root", "rose", "rune", "sage", "salt",
		"sand", "seed", "silk", "snow", "star", "stem", "tale", "tern",
		"tide", "toad", "vale", "vine", "wand", "ward", "wave", "well",
		"wind", "wolf", "wood", "wren", "yarn",
		// 5-letter words
		"amber", "arbor", "birch", "bloom", "briar", "brook", "cedar",
		"chant", "charm", "cloud", "coral", "crane", "crest", "crown",
		"dream", "dusky", "ember", "fable", "feral", "fjord", "frost",
		"glade", "gleam", "glyph", "grove", "hazel", "heron", "ivory",
		"lilac", "lunar", "maple", "marsh", "misty", "ocean", "otter",
		"petal", "plume", "quill", "raven", "realm", "reeds", "ridge",
		"river", "runes", "shade", "shore", "spire", "stone", "storm",
		"thorn", "tidal", "totem", "vapor", "yearn",
	}
	return t.DictionaryService.LoadWords(words)
}
