package analyze

import (
	"go/ast"
	"go/token"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DirectivePrefix starts a directive comment line.
	DirectivePrefix = "//seeded"
	// TagKey is the struct tag key holding field attributes.
	TagKey = "seeded"
)

// directives extracts the `//seeded...` lines of a comment group. A line is
// a directive when the prefix is not followed by more identifier
// characters, so "//seeded(skip)" and "//seeded skip" are directives (the
// latter malformed) while "//seededness" is prose.
func directives(fset *token.FileSet, doc *ast.CommentGroup) []Directive {
	if doc == nil {
		return nil
	}

	var out []Directive

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		if r, _ := utf8.DecodeRuneInString(rest); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}

		out = append(out, Directive{
			Text: strings.TrimSpace(rest),
			Pos:  fset.Position(c.Slash + token.Pos(len(DirectivePrefix)+leadingSpace(rest))),
		})
	}

	return out
}

func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}

// tagDirective turns the `seeded` key of a struct tag into a directive by
// restoring the outer parentheses.
func tagDirective(fset *token.FileSet, lit *ast.BasicLit) (Directive, bool) {
	if lit == nil {
		return Directive{}, false
	}

	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return Directive{}, false
	}

	v, ok := reflect.StructTag(raw).Lookup(TagKey)
	if !ok {
		return Directive{}, false
	}

	pos := fset.Position(lit.Pos())
	if i := strings.Index(lit.Value, TagKey+`:"`); i >= 0 {
		// Column of the opening quote, standing in for the added "(".
		pos.Column += i + len(TagKey) + 1
		pos.Offset += i + len(TagKey) + 1
	}

	return Directive{Text: "(" + v + ")", Pos: pos, Tag: true}, true
}
