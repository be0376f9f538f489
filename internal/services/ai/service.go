package ai

import (
	"log/slog"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/dependencies/random"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/board"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/dictionary"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/words"
)

// Tunable search parameters per difficulty tier. The tiers bound AI
// cost structurally; there is no other cancellation mechanism.
const (
	firstClassSampleSize = 24
	firstClassNoise      = 2.0
	apprenticeSampleSize = 8
	apprenticeNoise      = 3.0
	// apprenticeBlunderChance is how often the apprentice picks from
	// the weaker half of its sample instead of the top.
	apprenticeBlunderChance = 0.35

	// keepLetterValue is the letter value above which a greedy
	// personality refuses to discard.
	keepLetterValue = 5
	// pressure bounds for the score-adaptation hooks
	maxPressure     = 10.0
	pressureDecay   = 0.5
	pressureToBlock = 0.05
)

// Service is the opponent AI: candidate search over the full
// move/cast/letter space, personality-weighted utility and
// difficulty-bounded selection. State (game, seat) is passed
// explicitly; the service itself only carries configuration and the
// adaptation bookkeeping.
type Service struct {
	boardService *board.Service
	wordsService *words.Service
	dictionary   *dictionary.Service
	random       random.Random
	logger       *slog.Logger

	personality model.Personality
	difficulty  model.Difficulty

	// pressure rises when the opponent outscores us and biases the
	// blocking weight upward. Reset clears it.
	pressure float64
}

// New creates a new AI Service
func New(
	boardService *board.Service,
	wordsService *words.Service,
	dictionary *dictionary.Service,
	rnd random.Random,
	personality model.Personality,
	difficulty model.Difficulty,
	logger *slog.Logger,
) *Service {
	return &Service{
		boardService: boardService,
		wordsService: wordsService,
		dictionary:   dictionary,
		random:       rnd,
		personality:  personality,
		difficulty:   difficulty,
		logger:       logger.With(slog.String("component", "ai")),
	}
}

// SetDifficulty swaps the search tier without resetting adaptation state
func (s *Service) SetDifficulty(d model.Difficulty) {
	s.difficulty = d
}

// Personality returns the configured personality profile
func (s *Service) Personality() model.Personality {
	return s.personality
}

// Difficulty returns the current search tier
func (s *Service) Difficulty() model.Difficulty {
	return s.difficulty
}

// OnScore notes points the AI scored
func (s *Service) OnScore(points int) {
	s.pressure -= float64(points)
	if s.pressure < -maxPressure {
		s.pressure = -maxPressure
	}
}

// OnOpponentScore notes points scored against the AI
func (s *Service) OnOpponentScore(points int) {
	s.pressure += float64(points)
	if s.pressure > maxPressure {
		s.pressure = maxPressure
	}
}

// EndTurn decays the adaptation pressure
func (s *Service) EndTurn() {
	switch {
	case s.pressure > pressureDecay:
		s.pressure -= pressureDecay
	case s.pressure < -pressureDecay:
		s.pressure += pressureDecay
	default:
		s.pressure = 0
	}
}

// Reset clears all adaptation state
func (s *Service) Reset() {
	s.pressure = 0
}

// ChooseMove returns the best word-forming candidate turn for the
// seat, or nil when no candidate forms a word. Archmage evaluates the
// full candidate set and returns the true maximum (ties: higher raw
// word score, then stable enumeration order); the lower tiers sample
// and add noise.
func (s *Service) ChooseMove(g *model.Game, seat int) *model.AIMove {
	candidates := s.enumerate(g, seat, true)
	if len(candidates) == 0 {
		return nil
	}

	switch s.difficulty {
	case model.DifficultyArchmage:
		return s.pickBest(candidates, 0)
	case model.DifficultyFirstClass:
		return s.pickBest(s.sample(candidates, firstClassSampleSize), firstClassNoise)
	default: // Apprentice
		sampled := s.sample(candidates, apprenticeSampleSize)
		if len(sampled) > 1 && s.random.Float64() < apprenticeBlunderChance {
			weak := s.weakerHalf(sampled)
			return weak[s.random.Intn(len(weak))]
		}
		return s.pickBest(sampled, apprenticeNoise)
	}
}

// ChooseFallback returns the positionally best wordless turn, used
// when ChooseMove finds nothing: the AI still has to move and cast.
// Returns nil only when the seat has no legal slide at all.
func (s *Service) ChooseFallback(g *model.Game, seat int) *model.AIMove {
	candidates := s.enumerate(g, seat, false)
	if len(candidates) == 0 {
		return nil
	}
	return s.pickBest(candidates, 0)
}

// ChooseDiscards returns the hand subset to give up in cycle mode.
// Letters that can extend a board tile into a dictionary word along
// some axis are retained as future potential; a greedy personality
// also keeps its high-value letters; everything else goes.
func (s *Service) ChooseDiscards(g *model.Game, seat int) []rune {
	var discards []rune
	for _, l := range g.Hand(seat) {
		if s.letterHasPotential(g, l) {
			continue
		}
		if s.personality.DiscardGreed > 0.5 && model.LetterValue(l) >= keepLetterValue {
			continue
		}
		discards = append(discards, l)
	}
	return discards
}

// letterHasPotential reports whether the letter pairs with any board
// tile at the start of some dictionary word.
func (s *Service) letterHasPotential(g *model.Game, letter rune) bool {
	for i := range g.Tiles {
		b := g.Tiles[i].Letter
		if s.dictionary.HasPrefix(string([]rune{b, letter})) ||
			s.dictionary.HasPrefix(string([]rune{letter, b})) {
			return true
		}
	}
	return false
}

// enumerate walks the full candidate space for the seat: every owned
// glyphling x legal destination x legal cast cell x distinct hand
// letter. wordsOnly keeps word-forming candidates; otherwise only the
// wordless ones are kept (for the fallback turn) and utility is
// purely positional.
func (s *Service) enumerate(g *model.Game, seat int, wordsOnly bool) []*model.AIMove {
	letters := distinctLetters(g.Hand(seat))
	if len(letters) == 0 {
		return nil
	}

	blocking := s.personality.Blocking + s.pressure*pressureToBlock
	if blocking < 0 {
		blocking = 0
	}

	var candidates []*model.AIMove
	for _, idx := range g.GlyphlingsFor(seat) {
		for _, dest := range s.boardService.ValidMoves(g, idx) {
			for _, castCell := range s.boardService.ValidCastCells(g, dest) {
				for _, letter := range letters {
					placement := model.Tile{Letter: letter, Owner: seat, Position: castCell}
					found, points := s.wordsService.ScorePlacement(g, placement)
					if wordsOnly && len(found) == 0 {
						continue
					}
					if !wordsOnly && len(found) > 0 {
						continue
					}

					ownMobility := s.mobilityAfter(g, idx, idx, dest, castCell)
					denied := s.opponentMobilityDenied(g, seat, idx, dest, castCell)

					utility := s.personality.Greed*float64(points) +
						s.personality.Mobility*float64(ownMobility) +
						blocking*float64(denied)

					candidates = append(candidates, &model.AIMove{
						GlyphlingIndex: idx,
						Destination:    dest,
						CastCell:       castCell,
						Letter:         letter,
						Words:          found,
						WordScore:      points,
						Utility:        utility,
					})
				}
			}
		}
	}
	return candidates
}

// mobilityAfter counts the slide moves glyphling `target` would have
// once glyphling `moved` stands on dest and a tile occupies castCell.
func (s *Service) mobilityAfter(g *model.Game, target, moved int, dest, castCell model.HexCell) int {
	b := s.boardService.BoardFor(g)
	if b == nil {
		return 0
	}

	occupied := func(c model.HexCell) bool {
		if c == castCell || g.TileAt(c) != nil {
			return true
		}
		for i := range g.Glyphlings {
			pos := g.GlyphlingPosition(i)
			if i == moved {
				pos = dest
			}
			if pos == c {
				return true
			}
		}
		return false
	}

	from := g.GlyphlingPosition(target)
	if target == moved {
		from = dest
	}

	count := 0
	for _, axis := range model.Axes {
		for _, dir := range model.Directions {
			cur := from
			for {
				next, ok := b.Neighbor(cur, axis, dir)
				if !ok || occupied(next) {
					break
				}
				count++
				cur = next
			}
		}
	}
	return count
}

// opponentMobilityDenied sums, over all opposing glyphlings, the slide
// moves the candidate takes away from them.
func (s *Service) opponentMobilityDenied(g *model.Game, seat, moved int, dest, castCell model.HexCell) int {
	denied := 0
	for i := range g.Glyphlings {
		if g.Glyphlings[i].Owner == seat {
			continue
		}
		before := len(s.boardService.ValidMoves(g, i))
		after := s.mobilityAfter(g, i, moved, dest, castCell)
		if before > after {
			denied += before - after
		}
	}
	return denied
}

// pickBest returns the highest-utility candidate, optionally with
// bounded symmetric noise added per candidate. Ties break toward the
// higher raw word score, then the earlier candidate.
func (s *Service) pickBest(candidates []*model.AIMove, noise float64) *model.AIMove {
	var best *model.AIMove
	bestUtility := 0.0
	for _, c := range candidates {
		u := c.Utility
		if noise > 0 {
			u += (s.random.Float64() - 0.5) * noise
		}
		if best == nil || u > bestUtility ||
			(u == bestUtility && c.WordScore > best.WordScore) {
			best = c
			bestUtility = u
		}
	}
	return best
}

// sample returns up to n candidates drawn without replacement,
// preserving enumeration order of the survivors.
func (s *Service) sample(candidates []*model.AIMove, n int) []*model.AIMove {
	if len(candidates) <= n {
		return candidates
	}
	keep := make(map[int]struct{}, n)
	for len(keep) < n {
		keep[s.random.Intn(len(candidates))] = struct{}{}
	}
	out := make([]*model.AIMove, 0, n)
	for i, c := range candidates {
		if _, ok := keep[i]; ok {
			out = append(out, c)
		}
	}
	return out
}

// weakerHalf returns the lower half of the candidates by utility
func (s *Service) weakerHalf(candidates []*model.AIMove) []*model.AIMove {
	sorted := append([]*model.AIMove(nil), candidates...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Utility < sorted[j-1].Utility; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	half := len(sorted) / 2
	if half == 0 {
		half = 1
	}
	return sorted[:half]
}

func distinctLetters(hand []rune) []rune {
	seen := make(map[rune]struct{}, len(hand))
	var out []rune
	for _, l := range hand {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// Interface for dependency injection
type ServiceInterface interface {
	ChooseMove(g *model.Game, seat int) *model.AIMove
	ChooseFallback(g *model.Game, seat int) *model.AIMove
	ChooseDiscards(g *model.Game, seat int) []rune
	OnScore(points int)
	OnOpponentScore(points int)
	EndTurn()
	Reset()
	SetDifficulty(d model.Difficulty)
	Personality() model.Personality
	Difficulty() model.Difficulty
}

var _ ServiceInterface = (*Service)(nil)
