package dictionary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage"
)

// Service provides dictionary word lookup. An unloaded dictionary is
// not an error: every lookup simply misses, so a cast forms no words
// and the turn falls through to cycle mode.
type Service struct {
	storage storage.Storage

	mu       sync.RWMutex
	words    map[string]struct{}
	prefixes map[string]struct{}
	loaded   bool
}

// New creates a new dictionary Service
func New(storage storage.Storage) *Service {
	return &Service{
		storage:  storage,
		words:    make(map[string]struct{}),
		prefixes: make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line)
// and saves them to storage for future use.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	s.prefixes = make(map[string]struct{})
	for _, word := range words {
		// Store uppercase: tiles carry uppercase letters
		w := strings.ToUpper(word)
		s.words[w] = struct{}{}
		for i := 1; i < len(w); i++ {
			s.prefixes[w[:i]] = struct{}{}
		}
	}
	s.loaded = true
	return nil
}

// IsValidWord checks if a word of at least minLength letters exists in
// the dictionary.
func (s *Service) IsValidWord(word string, minLength int) bool {
	if len(word) < minLength {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToUpper(word)]
	return ok
}

// HasPrefix reports whether any dictionary word starts with the given
// string. Used by the AI to judge which hand letters retain potential.
func (s *Service) HasPrefix(prefix string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	p := strings.ToUpper(prefix)
	if _, ok := s.prefixes[p]; ok {
		return true
	}
	_, ok := s.words[p]
	return ok
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface check
type ServiceInterface interface {
	IsValidWord(word string, minLength int) bool
	HasPrefix(prefix string) bool
	IsLoaded() bool
	WordCount() int
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)

// ErrDictionaryNotLoaded is returned when loading from empty storage
var ErrDictionaryNotLoaded = model.ErrDictionaryNotLoaded
