// Package matching compares human-entered training type names against the
// catalogue: normalization, edit-distance similarity and tiered resolution.
package matching

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopwords are compared after diacritics are stripped, so "školení" and
// "skoleni" both match.
var stopwords = []string{
	"skoleni",
	"zakladni", "zakladniho",
	"pokrocile", "pokrocily", "pokrocilych",
	"opakovane", "opakovaci", "periodicke",
	"vstupni", "kurz", "kurzu",
	"training", "basic", "advanced", "refresher", "course",
}

var (
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	stopwordPattern = regexp.MustCompile(`\b(?:` + strings.Join(stopwords, "|") + `)\b`)
)

// Normalize canonicalizes a display name for comparison.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = stripDiacritics(s)
	s = yearPattern.ReplaceAllString(s, " ")
	s = stopwordPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// exactKey is the comparison key of the exact tier: case and surrounding or
// repeated whitespace are ignored, everything else must match.
func exactKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
