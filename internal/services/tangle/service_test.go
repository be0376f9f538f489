package tangle

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/board"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(board.New())
}

func (s *ServiceSuite) newGame(glyphlings []model.Glyphling, tiles []model.Tile) *model.Game {
	return &model.Game{
		BoardSize:   model.BoardSmall,
		PlayerCount: 2,
		Glyphlings:  glyphlings,
		Tiles:       tiles,
		Cursor:      model.NewTurnCursor(),
	}
}

// surround returns tiles on all six cells adjacent to the given cell
func surround(c model.HexCell, owner int) []model.Tile {
	var tiles []model.Tile
	for _, axis := range model.Axes {
		for _, dir := range model.Directions {
			tiles = append(tiles, model.Tile{Letter: 'X', Owner: owner, Position: c.Step(axis, dir)})
		}
	}
	return tiles
}

func (s *ServiceSuite) TestIsTangledOpenBoard() {
	g := s.newGame([]model.Glyphling{{Owner: 0, Index: 0, Position: model.HexCell{Col: 3, Row: 3}}}, nil)
	s.False(s.service.IsTangled(g, 0))
}

func (s *ServiceSuite) TestIsTangledSurroundedByTiles() {
	center := model.HexCell{Col: 3, Row: 3}
	g := s.newGame(
		[]model.Glyphling{{Owner: 0, Index: 0, Position: center}},
		surround(center, 1),
	)
	s.True(s.service.IsTangled(g, 0))
}

func (s *ServiceSuite) TestIsTangledMixedBlockers() {
	// Tiles and glyphlings both pin: five tiles plus an adjacent
	// glyphling leave no legal slide.
	center := model.HexCell{Col: 3, Row: 3}
	tiles := surround(center, 1)[:5]
	blocker := center.Step(model.AxisNorthwestSoutheast, model.DirPositive)
	g := s.newGame(
		[]model.Glyphling{
			{Owner: 0, Index: 0, Position: center},
			{Owner: 1, Index: 0, Position: blocker},
		},
		tiles,
	)
	s.True(s.service.IsTangled(g, 0))
	s.False(s.service.IsTangled(g, 1)) // the blocker itself can still slide
}

func (s *ServiceSuite) TestTangledGlyphlings() {
	center := model.HexCell{Col: 3, Row: 3}
	g := s.newGame(
		[]model.Glyphling{
			{Owner: 0, Index: 0, Position: center},
			{Owner: 0, Index: 1, Position: model.HexCell{Col: 0, Row: 2}},
			{Owner: 1, Index: 0, Position: model.HexCell{Col: 6, Row: 2}},
		},
		surround(center, 1),
	)
	s.Equal([]int{0}, s.service.TangledGlyphlings(g))
}

func (s *ServiceSuite) TestShouldEndGameAllTangled() {
	g := s.newGame([]model.Glyphling{
		{Owner: 0, Index: 0, Position: model.HexCell{Col: 0, Row: 2}},
		{Owner: 1, Index: 0, Position: model.HexCell{Col: 6, Row: 2}},
	}, nil)
	s.False(s.service.ShouldEndGame(g))

	// Fill everything except the glyphlings' own cells
	b, err := board.New().Board(model.BoardSmall)
	s.Require().NoError(err)
	for _, cell := range b.Cells() {
		if g.GlyphlingAt(cell) == nil {
			g.Tiles = append(g.Tiles, model.Tile{Letter: 'X', Owner: 0, Position: cell})
		}
	}
	s.True(s.service.ShouldEndGame(g))
}

func (s *ServiceSuite) TestShouldEndGameOnEmptyBag() {
	g := s.newGame([]model.Glyphling{
		{Owner: 0, Index: 0, Position: model.HexCell{Col: 0, Row: 2}},
		{Owner: 1, Index: 0, Position: model.HexCell{Col: 6, Row: 2}},
	}, nil)
	g.Hands = [][]rune{{}, {}}
	g.Bag = nil

	// Only the opt-in rule ends the game on exhaustion
	s.False(s.service.ShouldEndGame(g))
	g.Rules.EndOnEmptyBag = true
	s.True(s.service.ShouldEndGame(g))

	// A letter still in hand keeps the game going
	g.Hands[1] = []rune{'A'}
	s.False(s.service.ShouldEndGame(g))
}

func (s *ServiceSuite) TestTanglePoints() {
	center := model.HexCell{Col: 3, Row: 3}
	g := s.newGame(
		[]model.Glyphling{
			{Owner: 0, Index: 0, Position: center},
			{Owner: 0, Index: 1, Position: model.HexCell{Col: 0, Row: 2}},
			{Owner: 1, Index: 0, Position: model.HexCell{Col: 6, Row: 2}},
		},
		surround(center, 1),
	)

	// Seat 1 earns the bonus for seat 0's tangled glyphling; a seat
	// never scores its own tangles.
	s.Equal([]int{0, model.TangleBonus}, s.service.TanglePoints(g))
}
