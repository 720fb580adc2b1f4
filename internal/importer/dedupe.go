package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Duplicate detection is a cheap string heuristic, not the hard part:
// names are normalized (case folded, diacritics stripped) and compared
// by bigram Jaccard similarity.

const duplicateThreshold = 0.85

// stripMarks removes combining marks after NFKD decomposition, so
// "Zoë" and "Zoe" normalize identically.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeName(name string) string {
	folded, _, err := transform.String(stripMarks, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// namesMatch reports whether two display names likely refer to the same
// person.
func namesMatch(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == nb {
		return na != ""
	}

	bigramsA := bigrams(na)
	bigramsB := bigrams(nb)
	if len(bigramsA) == 0 || len(bigramsB) == 0 {
		return false
	}

	shared := 0
	for bg := range bigramsA {
		if bigramsB[bg] {
			shared++
		}
	}

	union := len(bigramsA) + len(bigramsB) - shared
	if union == 0 {
		return true
	}

	similarity := float64(shared) / float64(union) // Jaccard index
	return similarity >= duplicateThreshold
}

func bigrams(s string) map[string]bool {
	r := []rune(s)
	if len(r) < 2 {
		return nil
	}
	m := make(map[string]bool, len(r)-1)
	for i := 0; i < len(r)-1; i++ {
		m[string(r[i:i+2])] = true
	}
	return m
}
