package matching

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity scores two raw names from 0 to 100 using the Levenshtein distance
// of their normalized forms.
func Similarity(a, b string) int {
	return normalizedSimilarity(Normalize(a), Normalize(b))
}

func normalizedSimilarity(a, b string) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	distance := levenshtein.ComputeDistance(a, b)
	return int(math.Round((1 - float64(distance)/float64(longest)) * 100))
}
