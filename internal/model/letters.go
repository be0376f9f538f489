package model

// letterFrequencies is the fixed per-letter tile count used to seed the
// bag. English distribution, 98 tiles.
var letterFrequencies = map[rune]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3,
	'H': 2, 'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6,
	'O': 8, 'P': 2, 'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4,
	'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1,
}

// letterValues is the fixed per-letter point value table
var letterValues = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2,
	'H': 4, 'I': 1, 'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1,
	'O': 1, 'P': 3, 'Q': 10, 'R': 1, 'S': 1, 'T': 1, 'U': 1,
	'V': 4, 'W': 4, 'X': 8, 'Y': 4, 'Z': 10,
}

// LetterValue returns the point value of an uppercase letter, 0 for
// anything outside A-Z.
func LetterValue(letter rune) int {
	return letterValues[letter]
}

// LetterFrequency returns the bag count for an uppercase letter
func LetterFrequency(letter rune) int {
	return letterFrequencies[letter]
}

// NewBag builds the full tile bag from the frequency table, ordered
// A-Z. Draws pick a uniform random index, so the multiset itself
// provides the frequency weighting.
func NewBag() []rune {
	var bag []rune
	for l := 'A'; l <= 'Z'; l++ {
		for i := 0; i < letterFrequencies[l]; i++ {
			bag = append(bag, l)
		}
	}
	return bag
}

// IsValidLetter reports whether the rune is an uppercase A-Z letter
func IsValidLetter(letter rune) bool {
	return letter >= 'A' && letter <= 'Z'
}
