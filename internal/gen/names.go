package gen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[n:]
}

// fieldIdent names the identifier type of the fields of a declaration.
func fieldIdent(decl string) string {
	return lowerFirst(decl) + "Field"
}

// variantIdent names the identifier type of the arms of a union.
func variantIdent(union string) string {
	return lowerFirst(union) + "Variant"
}

// tupleExpected describes a positional shape in invalid length errors.
func tupleExpected(name string, n int) string {
	return fmt.Sprintf("tuple struct %s with %d elements", name, n)
}

func variantExpected(union, arm string, n int) string {
	return fmt.Sprintf("tuple variant %s::%s with %d elements", union, arm, n)
}
