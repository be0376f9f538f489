package words

import (
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/board"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/dictionary"
)

// Service discovers and scores words formed by tile placements
type Service struct {
	boardService *board.Service
	dictionary   *dictionary.Service
}

// New creates a new words Service
func New(boardService *board.Service, dictionary *dictionary.Service) *Service {
	return &Service{
		boardService: boardService,
		dictionary:   dictionary,
	}
}

// FindWordsAt returns the dictionary words formed by the placement:
// for each of the three axes, the maximal contiguous run of tiles
// through the placement cell, read north-to-south on the vertical axis
// and west-to-east on the diagonals. At most one word per axis
// qualifies, so a single cast forms up to three words. The placement
// may be hypothetical (preview) or already committed; an existing tile
// at the placement cell with a different letter yields no words.
func (s *Service) FindWordsAt(g *model.Game, placement model.Tile) []model.WordResult {
	b := s.boardService.BoardFor(g)
	if b == nil || !b.Contains(placement.Position) {
		return nil
	}
	if t := g.TileAt(placement.Position); t != nil && t.Letter != placement.Letter {
		return nil
	}
	minLen := g.Rules.MinWordLength()

	letterAt := func(c model.HexCell) (rune, bool) {
		if c == placement.Position {
			return placement.Letter, true
		}
		if t := g.TileAt(c); t != nil {
			return t.Letter, true
		}
		return 0, false
	}

	var results []model.WordResult
	for _, axis := range model.Axes {
		// Walk to the negative end of the contiguous run
		start := placement.Position
		for {
			prev, ok := b.Neighbor(start, axis, model.DirNegative)
			if !ok {
				break
			}
			if _, occupied := letterAt(prev); !occupied {
				break
			}
			start = prev
		}

		// Collect the run in reading direction
		var letters []rune
		var positions []model.HexCell
		cur := start
		for {
			l, occupied := letterAt(cur)
			if !occupied {
				break
			}
			letters = append(letters, l)
			positions = append(positions, cur)
			next, ok := b.Neighbor(cur, axis, model.DirPositive)
			if !ok {
				break
			}
			cur = next
		}

		if len(letters) < minLen {
			continue
		}
		word := string(letters)
		if !s.dictionary.IsValidWord(word, minLen) {
			continue
		}

		base := 0
		for _, l := range letters {
			base += model.LetterValue(l)
		}
		results = append(results, model.WordResult{
			Letters:   word,
			Positions: positions,
			BaseScore: base,
		})
	}
	return results
}

// ScoreWordForPlayer returns the points the player earns from the
// word: the sum of letter values at positions whose tile the player
// owns. The placement cell counts for the placement's owner, so a
// player completing a word through another player's tiles scores only
// their own letters.
func (s *Service) ScoreWordForPlayer(w model.WordResult, g *model.Game, player int, placement model.Tile) int {
	score := 0
	for i, pos := range w.Positions {
		owner := -1
		if pos == placement.Position {
			owner = placement.Owner
		} else if t := g.TileAt(pos); t != nil {
			owner = t.Owner
		}
		if owner == player {
			score += model.LetterValue(rune(w.Letters[i]))
		}
	}
	return score
}

// ScorePlacement runs discovery and ownership scoring in one step,
// returning the formed words and the total points for the placer.
func (s *Service) ScorePlacement(g *model.Game, placement model.Tile) ([]model.WordResult, int) {
	found := s.FindWordsAt(g, placement)
	total := 0
	for _, w := range found {
		total += s.ScoreWordForPlayer(w, g, placement.Owner, placement)
	}
	return found, total
}

// Interface for dependency injection
type ServiceInterface interface {
	FindWordsAt(g *model.Game, placement model.Tile) []model.WordResult
	ScoreWordForPlayer(w model.WordResult, g *model.Game, player int, placement model.Tile) int
	ScorePlacement(g *model.Game, placement model.Tile) ([]model.WordResult, int)
}

var _ ServiceInterface = (*Service)(nil)
