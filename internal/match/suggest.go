package match

import (
	"strings"
	"unicode"
)

// MaxSuggestDistance is the largest edit distance Suggest accepts.
const MaxSuggestDistance = 3

// Normalize lowercases s and drops '_', '-' and spaces, so that
// "skipSerializingIf" and "skip_serializing_if" compare equal.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == ' ' {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}

// Suggest returns the known name closest to name, if one lies within
// MaxSuggestDistance edits after normalization. Ties go to the earlier
// entry of known.
func Suggest(name string, known []string) (string, bool) {
	norm := Normalize(name)

	best, bestDist := "", MaxSuggestDistance+1

	for _, k := range known {
		d := Levenshtein(norm, Normalize(k))
		if d < bestDist {
			best, bestDist = k, d
		}
	}

	if best == "" {
		return "", false
	}

	// Very short names match almost anything within the budget.
	if bestDist > 0 && bestDist >= len(norm) {
		return "", false
	}

	return best, true
}
