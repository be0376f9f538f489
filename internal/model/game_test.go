package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *Game {
	return &Game{
		BoardSize:   BoardSmall,
		PlayerCount: 2,
		Glyphlings: []Glyphling{
			{Owner: 0, Index: 0, Position: HexCell{Col: 0, Row: 2}},
			{Owner: 0, Index: 1, Position: HexCell{Col: 0, Row: 4}},
			{Owner: 1, Index: 0, Position: HexCell{Col: 6, Row: 2}},
		},
		Tiles: []Tile{
			{Letter: 'A', Owner: 0, Position: HexCell{Col: 3, Row: 3}},
		},
		Hands:  [][]rune{[]rune("AABC"), []rune("XYZ")},
		Cursor: NewTurnCursor(),
	}
}

func TestMinWordLength(t *testing.T) {
	assert.Equal(t, 3, RuleOptions{}.MinWordLength())
	assert.Equal(t, 2, RuleOptions{TwoLetterWords: true}.MinWordLength())
}

func TestNewBag(t *testing.T) {
	bag := NewBag()
	assert.Len(t, bag, 98)

	counts := map[rune]int{}
	for _, l := range bag {
		counts[l]++
	}
	assert.Equal(t, 12, counts['E'])
	assert.Equal(t, 9, counts['A'])
	assert.Equal(t, 1, counts['Q'])
	assert.Equal(t, LetterFrequency('T'), counts['T'])
}

func TestLetterValue(t *testing.T) {
	assert.Equal(t, 1, LetterValue('E'))
	assert.Equal(t, 10, LetterValue('Q'))
	assert.Equal(t, 0, LetterValue('?'))
}

func TestTileAt(t *testing.T) {
	g := testGame()
	tile := g.TileAt(HexCell{Col: 3, Row: 3})
	require.NotNil(t, tile)
	assert.Equal(t, 'A', tile.Letter)
	assert.Nil(t, g.TileAt(HexCell{Col: 3, Row: 4}))
}

func TestGlyphlingAtHonorsPendingDestination(t *testing.T) {
	g := testGame()

	assert.NotNil(t, g.GlyphlingAt(HexCell{Col: 0, Row: 2}))

	// Mid-move, the glyphling occupies its destination, not its origin
	dest := HexCell{Col: 2, Row: 2}
	g.Cursor.GlyphlingIndex = 0
	g.Cursor.Destination = &dest

	assert.Nil(t, g.GlyphlingAt(HexCell{Col: 0, Row: 2}))
	gl := g.GlyphlingAt(dest)
	require.NotNil(t, gl)
	assert.Equal(t, 0, gl.Owner)
	assert.Equal(t, dest, g.GlyphlingPosition(0))
	assert.Equal(t, HexCell{Col: 0, Row: 4}, g.GlyphlingPosition(1))
}

func TestGlyphlingsFor(t *testing.T) {
	g := testGame()
	assert.Equal(t, []int{0, 1}, g.GlyphlingsFor(0))
	assert.Equal(t, []int{2}, g.GlyphlingsFor(1))
	assert.Empty(t, g.GlyphlingsFor(2))
}

func TestFindGlyphling(t *testing.T) {
	g := testGame()
	assert.Equal(t, 1, g.FindGlyphling(0, 1))
	assert.Equal(t, 2, g.FindGlyphling(1, 0))
	assert.Equal(t, -1, g.FindGlyphling(1, 2))
	assert.Equal(t, -1, g.FindGlyphling(3, 0))
}

func TestHandHelpers(t *testing.T) {
	g := testGame()

	assert.True(t, g.HandContains(0, 'A'))
	assert.False(t, g.HandContains(0, 'Z'))
	assert.Nil(t, g.Hand(5))

	// Removing takes exactly one occurrence
	require.True(t, g.RemoveFromHand(0, 'A'))
	assert.Equal(t, "ABC", string(g.Hands[0]))
	assert.False(t, g.RemoveFromHand(0, 'Q'))
}

func TestNextPlayerWrapsAround(t *testing.T) {
	g := testGame()
	assert.Equal(t, 1, g.NextPlayer())
	g.CurrentPlayer = 1
	assert.Equal(t, 0, g.NextPlayer())
}

func TestAllHandsEmpty(t *testing.T) {
	g := testGame()
	assert.False(t, g.AllHandsEmpty())
	g.Hands = [][]rune{{}, nil}
	assert.True(t, g.AllHandsEmpty())
}
