package model

// WordResult is one dictionary word formed through a tile placement.
// A single cast can form at most one word per axis, so at most three.
type WordResult struct {
	Letters   string
	Positions []HexCell
	BaseScore int // sum of letter values, no ownership filter
}

// Length returns the word length in letters
func (w WordResult) Length() int {
	return len(w.Positions)
}
