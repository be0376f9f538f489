package words

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/board"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/dictionary"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	dict := dictionary.New(memory.New())
	s.Require().NoError(dict.LoadWords([]string{"cat", "cot", "at", "tea"}))
	s.service = New(board.New(), dict)
}

func (s *ServiceSuite) newGame(rules model.RuleOptions, tiles ...model.Tile) *model.Game {
	return &model.Game{
		BoardSize:   model.BoardSmall,
		Rules:       rules,
		PlayerCount: 2,
		Tiles:       tiles,
		Cursor:      model.NewTurnCursor(),
	}
}

func tile(letter rune, owner, col, row int) model.Tile {
	return model.Tile{Letter: letter, Owner: owner, Position: model.HexCell{Col: col, Row: row}}
}

func (s *ServiceSuite) TestSingleTileFormsNoWords() {
	g := s.newGame(model.RuleOptions{})
	s.Empty(s.service.FindWordsAt(g, tile('A', 0, 3, 3)))
}

func (s *ServiceSuite) TestVerticalWordReadsNorthToSouth() {
	g := s.newGame(model.RuleOptions{},
		tile('C', 0, 3, 2),
		tile('A', 0, 3, 3),
	)

	words := s.service.FindWordsAt(g, tile('T', 0, 3, 4))
	s.Require().Len(words, 1)
	s.Equal("CAT", words[0].Letters)
	s.Equal([]model.HexCell{{Col: 3, Row: 2}, {Col: 3, Row: 3}, {Col: 3, Row: 4}}, words[0].Positions)
	s.Equal(5, words[0].BaseScore) // C=3 A=1 T=1
}

func (s *ServiceSuite) TestWordsDoNotReadBackward() {
	// The same letters bottom-to-top spell TAC, which is not a word;
	// runs read north-to-south only.
	g := s.newGame(model.RuleOptions{},
		tile('T', 0, 3, 2),
		tile('A', 0, 3, 3),
	)
	s.Empty(s.service.FindWordsAt(g, tile('C', 0, 3, 4)))
}

func (s *ServiceSuite) TestDiagonalWordReadsWestToEast() {
	// Northeast axis run through (3,3): (2,4) -> (3,3) -> (4,3)
	g := s.newGame(model.RuleOptions{},
		tile('C', 0, 2, 4),
		tile('T', 0, 4, 3),
	)

	words := s.service.FindWordsAt(g, tile('A', 0, 3, 3))
	s.Require().Len(words, 1)
	s.Equal("CAT", words[0].Letters)
	s.Equal([]model.HexCell{{Col: 2, Row: 4}, {Col: 3, Row: 3}, {Col: 4, Row: 3}}, words[0].Positions)
}

func (s *ServiceSuite) TestOnePlacementFormsWordsOnMultipleAxes() {
	// The T at (3,4) completes CAT vertically and TEA on the
	// northeast axis: (3,4) -> (4,4) -> (5,3).
	g := s.newGame(model.RuleOptions{},
		tile('C', 0, 3, 2),
		tile('A', 0, 3, 3),
		tile('E', 0, 4, 4),
		tile('A', 0, 5, 3),
	)

	words := s.service.FindWordsAt(g, tile('T', 0, 3, 4))
	s.Require().Len(words, 2)

	letters := []string{words[0].Letters, words[1].Letters}
	s.Contains(letters, "CAT")
	s.Contains(letters, "TEA")
}

func (s *ServiceSuite) TestMinWordLengthRespectsRuleOption() {
	g := s.newGame(model.RuleOptions{}, tile('A', 0, 3, 2))
	s.Empty(s.service.FindWordsAt(g, tile('T', 0, 3, 3)))

	g = s.newGame(model.RuleOptions{TwoLetterWords: true}, tile('A', 0, 3, 2))
	words := s.service.FindWordsAt(g, tile('T', 0, 3, 3))
	s.Require().Len(words, 1)
	s.Equal("AT", words[0].Letters)
}

func (s *ServiceSuite) TestPlacementOverMismatchedTile() {
	g := s.newGame(model.RuleOptions{},
		tile('C', 0, 3, 2),
		tile('A', 0, 3, 3),
		tile('X', 0, 3, 4),
	)
	// Previewing a T where an X already sits cannot form anything
	s.Nil(s.service.FindWordsAt(g, tile('T', 0, 3, 4)))
}

func (s *ServiceSuite) TestPlacementOffBoard() {
	g := s.newGame(model.RuleOptions{})
	s.Nil(s.service.FindWordsAt(g, tile('T', 0, 99, 99)))
}

func (s *ServiceSuite) TestScoreWordForPlayerCountsOwnTilesOnly() {
	// The A in the middle belongs to the opponent: completing CAT
	// scores the C and the cast T, not the A.
	g := s.newGame(model.RuleOptions{},
		tile('C', 0, 3, 2),
		tile('A', 1, 3, 3),
	)

	placement := tile('T', 0, 3, 4)
	words, points := s.service.ScorePlacement(g, placement)
	s.Require().Len(words, 1)
	s.Equal(4, points) // C=3 + T=1

	// The opponent would have earned only their A from the same word
	s.Equal(1, s.service.ScoreWordForPlayer(words[0], g, 1, placement))
}
