package plan

import (
	"strconv"
	"strings"
	"unicode"
)

// suffix derives an identifier fragment from a seed type expression:
// "*intern.Table" gives "InternTable" and "Interner[K]" gives "InternerK".
func suffix(seed string) string {
	var (
		sb    strings.Builder
		start = true
	)

	for _, r := range seed {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			start = true
			continue
		}

		if start {
			r = unicode.ToUpper(r)
			start = false
		}

		sb.WriteRune(r)
	}

	if sb.Len() == 0 {
		return "Seed"
	}

	return sb.String()
}

// suffixes hands out distinct suffixes within one direction of a type.
type suffixes map[string]bool

func (s suffixes) next(seed string) string {
	base := suffix(seed)

	name := base
	for i := 2; s[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	s[name] = true

	return name
}
