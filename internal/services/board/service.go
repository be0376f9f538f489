package board

import (
	"sync"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
)

// Service provides hex board geometry and slide legality. Boards are
// immutable per tier, so the service caches one instance of each.
type Service struct {
	mu     sync.Mutex
	boards map[model.BoardSize]*model.Board
}

// New creates a new board Service
func New() *Service {
	return &Service{
		boards: make(map[model.BoardSize]*model.Board),
	}
}

// Board returns the cell set for a board tier
func (s *Service) Board(size model.BoardSize) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.boards[size]; ok {
		return b, nil
	}
	b := model.NewBoard(size)
	if b == nil {
		return nil, model.ErrInvalidBoardSize
	}
	s.boards[size] = b
	return b, nil
}

// BoardFor returns the board for a game, or nil when the persisted
// tier is not one the rules controller could have created.
func (s *Service) BoardFor(g *model.Game) *model.Board {
	b, err := s.Board(g.BoardSize)
	if err != nil {
		return nil
	}
	return b
}

// ValidMoves returns every cell the glyphling can slide to: walking
// outward along each axis in both directions, stopping before the
// first cell holding a tile or a glyphling. Returns nil for a tangled
// glyphling. The glyphling index is into Game.Glyphlings.
func (s *Service) ValidMoves(g *model.Game, glyphlingIdx int) []model.HexCell {
	if glyphlingIdx < 0 || glyphlingIdx >= len(g.Glyphlings) {
		return nil
	}
	b := s.BoardFor(g)
	if b == nil {
		return nil
	}
	from := g.GlyphlingPosition(glyphlingIdx)

	var moves []model.HexCell
	for _, axis := range model.Axes {
		for _, dir := range model.Directions {
			cur := from
			for {
				next, ok := b.Neighbor(cur, axis, dir)
				if !ok {
					break
				}
				if g.TileAt(next) != nil || g.GlyphlingAt(next) != nil {
					break
				}
				moves = append(moves, next)
				cur = next
			}
		}
	}
	return moves
}

// ValidCastCells returns every cell a tile can be cast to from the
// given cell: the same outward slide, but blocked by tiles only.
// Glyphling occupancy is ignored, which is how a tile and a glyphling
// come to share a cell.
func (s *Service) ValidCastCells(g *model.Game, from model.HexCell) []model.HexCell {
	b := s.BoardFor(g)
	if b == nil || !b.Contains(from) {
		return nil
	}

	var cells []model.HexCell
	for _, axis := range model.Axes {
		for _, dir := range model.Directions {
			cur := from
			for {
				next, ok := b.Neighbor(cur, axis, dir)
				if !ok {
					break
				}
				if g.TileAt(next) != nil {
					break
				}
				cells = append(cells, next)
				cur = next
			}
		}
	}
	return cells
}

// StartingPositions returns the fixed symmetric starting cells for
// each seat: seat 0 on the westmost column, seat 1 on the eastmost,
// additional seats one column further in. Each seat gets the top,
// middle and bottom cell of its column.
func (s *Service) StartingPositions(b *model.Board, playerCount int) [][]model.HexCell {
	minCol, maxCol := b.Columns()

	out := make([][]model.HexCell, playerCount)
	for seat := 0; seat < playerCount; seat++ {
		var col int
		if seat%2 == 0 {
			col = minCol + seat/2
		} else {
			col = maxCol - seat/2
		}
		cells := b.ColumnCells(col)
		out[seat] = []model.HexCell{
			cells[0],
			cells[len(cells)/2],
			cells[len(cells)-1],
		}
	}
	return out
}

// Interface for dependency injection
type ServiceInterface interface {
	Board(size model.BoardSize) (*model.Board, error)
	BoardFor(g *model.Game) *model.Board
	ValidMoves(g *model.Game, glyphlingIdx int) []model.HexCell
	ValidCastCells(g *model.Game, from model.HexCell) []model.HexCell
	StartingPositions(b *model.Board, playerCount int) [][]model.HexCell
}

var _ ServiceInterface = (*Service)(nil)
