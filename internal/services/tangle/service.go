package tangle

import (
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/board"
)

// Service detects immobilized glyphlings, decides end-of-game and
// computes the end-of-game tangle bonus.
type Service struct {
	boardService *board.Service
}

// New creates a new tangle Service
func New(boardService *board.Service) *Service {
	return &Service{boardService: boardService}
}

// IsTangled reports whether the glyphling has zero legal slides
func (s *Service) IsTangled(g *model.Game, glyphlingIdx int) bool {
	return len(s.boardService.ValidMoves(g, glyphlingIdx)) == 0
}

// TangledGlyphlings returns the indices of every tangled glyphling
func (s *Service) TangledGlyphlings(g *model.Game) []int {
	var out []int
	for i := range g.Glyphlings {
		if s.IsTangled(g, i) {
			out = append(out, i)
		}
	}
	return out
}

// ShouldEndGame reports whether the game is over: every glyphling of
// every player is simultaneously tangled. When the EndOnEmptyBag rule
// is set, an exhausted bag with all hands empty also ends the game.
func (s *Service) ShouldEndGame(g *model.Game) bool {
	if g.Rules.EndOnEmptyBag && len(g.Bag) == 0 && g.AllHandsEmpty() {
		return true
	}
	for i := range g.Glyphlings {
		if !s.IsTangled(g, i) {
			return false
		}
	}
	return true
}

// TanglePoints returns the end-of-game bonus per seat: TangleBonus for
// each tangled glyphling owned by another player. Applied exactly once
// when the game ends.
func (s *Service) TanglePoints(g *model.Game) []int {
	tangled := s.TangledGlyphlings(g)
	points := make([]int, g.PlayerCount)
	for seat := 0; seat < g.PlayerCount; seat++ {
		for _, idx := range tangled {
			if g.Glyphlings[idx].Owner != seat {
				points[seat] += model.TangleBonus
			}
		}
	}
	return points
}

// Interface for dependency injection
type ServiceInterface interface {
	IsTangled(g *model.Game, glyphlingIdx int) bool
	TangledGlyphlings(g *model.Game) []int
	ShouldEndGame(g *model.Game) bool
	TanglePoints(g *model.Game) []int
}

var _ ServiceInterface = (*Service)(nil)
