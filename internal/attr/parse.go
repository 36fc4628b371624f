package attr

import (
	"errors"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/scanner"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"seeded-generator/internal/diagnostic"
	"seeded-generator/internal/match"
)

// Option names accepted at each level.
var (
	TypeKeys  = []string{"ser", "de", "serde", "transparent", "rename", "tuple"}
	FieldKeys = []string{"skip", "default", "with", "skip_serializing_if", "rename"}
	SpecKeys  = []string{"seed", "params", "bounds", "override_bounds"}
)

// ParseType parses the option list of a type. pos is the position of the
// first byte of src and anchors error positions.
func ParseType(src string, pos token.Position) (TypeAttributes, error) {
	var ta TypeAttributes

	p, items, err := parseList(src, pos)
	if err != nil {
		return ta, err
	}

	for _, it := range items {
		var next TypeAttributes

		switch it.key.lit {
		case "ser", "de", "serde":
			spec, err := p.spec(it)
			if err != nil {
				return ta, err
			}

			if it.key.lit != "de" {
				next.Ser = []Spec{spec}
			}

			if it.key.lit != "ser" {
				next.De = []Spec{spec}
			}
		case "transparent":
			next.Transparent = true
			err = p.flag(it)
		case "tuple":
			next.Tuple = true
			err = p.flag(it)
		case "rename":
			next.Rename, err = p.str(it)
		default:
			if slices.Contains(SpecKeys, it.key.lit) {
				return ta, p.errorf(diagnostic.CodeUnrecognizedKey, it.key.off,
					"`%s` belongs inside ser(...), de(...) or serde(...)", it.key.lit)
			}

			return ta, p.unknown(it.key, "type attribute", TypeKeys)
		}

		if err != nil {
			return ta, err
		}

		ta.Merge(next)
	}

	return ta, nil
}

// ParseField parses the option list of a field.
func ParseField(src string, pos token.Position) (FieldAttributes, error) {
	var fa FieldAttributes

	p, items, err := parseList(src, pos)
	if err != nil {
		return fa, err
	}

	for _, it := range items {
		var next FieldAttributes

		switch it.key.lit {
		case "skip":
			next.Skip = true
			err = p.flag(it)
		case "default":
			next.Default = true
			err = p.flag(it)
		case "with":
			next.With, err = p.expr(it)
		case "skip_serializing_if":
			next.SkipIf, err = p.expr(it)
		case "rename":
			next.Rename, err = p.str(it)
		default:
			return fa, p.unknown(it.key, "field attribute", FieldKeys)
		}

		if err != nil {
			return fa, err
		}

		fa.Merge(next)
	}

	return fa, nil
}

func parseList(src string, pos token.Position) (*parser, []item, error) {
	p, err := scan(src, pos)
	if err != nil {
		return nil, nil, err
	}

	inner, err := p.outer()
	if err != nil {
		return nil, nil, err
	}

	items, err := p.items(inner)
	if err != nil {
		return nil, nil, err
	}

	return p, items, nil
}

type tok struct {
	tok      token.Token
	lit      string
	off, end int
}

func (t tok) String() string {
	if t.lit != "" {
		return "`" + t.lit + "`"
	}

	return "`" + t.tok.String() + "`"
}

// item is one "key" or "key(args)" entry of a list.
type item struct {
	key     tok
	hasArgs bool
	args    []tok
	// from and to delimit the argument text inside the parentheses.
	from, to int
}

type parser struct {
	src  string
	base token.Position
	toks []tok
}

func scan(src string, base token.Position) (*parser, error) {
	p := &parser{src: src, base: base}

	fset := token.NewFileSet()
	file := fset.AddFile("", -1, len(src))

	var (
		s        scanner.Scanner
		firstErr error
	)

	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if firstErr == nil {
			firstErr = p.errorf(diagnostic.CodeAttributeParseError, pos.Offset, "%s", msg)
		}
	}, 0)

	for {
		pos, t, lit := s.Scan()
		if t == token.EOF {
			break
		}

		// Automatic semicolons at line ends and EOF.
		if t == token.SEMICOLON && lit == "\n" {
			continue
		}

		off := file.Offset(pos)

		text := lit
		if text == "" {
			text = t.String()
		}

		p.toks = append(p.toks, tok{tok: t, lit: lit, off: off, end: off + len(text)})
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return p, nil
}

func (p *parser) at(off int) token.Position {
	pos := p.base
	pos.Offset += off
	pos.Column += off

	return pos
}

func (p *parser) errorf(code string, off int, format string, args ...any) *Error {
	return &Error{Code: code, Pos: p.at(off), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unknown(key tok, what string, known []string) error {
	err := p.errorf(diagnostic.CodeUnrecognizedKey, key.off, "unknown %s `%s`", what, key.lit)
	if s, ok := match.Suggest(key.lit, known); ok {
		err.Suggestion = s
	}

	return err
}

// outer strips the enclosing parentheses.
func (p *parser) outer() ([]tok, error) {
	if len(p.toks) == 0 || p.toks[0].tok != token.LPAREN {
		return nil, p.errorf(diagnostic.CodeExpectedAttributeList, 0, "expected attribute list `(...)`")
	}

	end, err := p.matching(p.toks, 0)
	if err != nil {
		return nil, err
	}

	if end != len(p.toks)-1 {
		next := p.toks[end+1]
		return nil, p.errorf(diagnostic.CodeAttributeParseError, next.off, "unexpected %s after attribute list", next)
	}

	return p.toks[1:end], nil
}

func closer(t token.Token) token.Token {
	switch t {
	case token.LPAREN:
		return token.RPAREN
	case token.LBRACK:
		return token.RBRACK
	default:
		return token.RBRACE
	}
}

// matching returns the index of the bracket closing toks[i].
func (p *parser) matching(toks []tok, i int) (int, error) {
	var stack []token.Token

	for j := i; j < len(toks); j++ {
		switch t := toks[j].tok; t {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			stack = append(stack, closer(t))
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if len(stack) == 0 || stack[len(stack)-1] != t {
				return 0, p.errorf(diagnostic.CodeAttributeParseError, toks[j].off, "unexpected %s", toks[j])
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j, nil
			}
		}
	}

	return 0, p.errorf(diagnostic.CodeAttributeParseError, toks[i].off, "unclosed %s", toks[i])
}

func (p *parser) items(toks []tok) ([]item, error) {
	var out []item

	for i := 0; i < len(toks); {
		k := toks[i]
		if k.tok != token.IDENT && !k.tok.IsKeyword() {
			return nil, p.errorf(diagnostic.CodeAttributeParseError, k.off, "expected attribute name, found %s", k)
		}

		it := item{key: k}
		i++

		if i < len(toks) && toks[i].tok == token.LPAREN {
			end, err := p.matching(toks, i)
			if err != nil {
				return nil, err
			}

			it.hasArgs = true
			it.args = toks[i+1 : end]
			it.from, it.to = toks[i].end, toks[end].off
			i = end + 1
		}

		if i < len(toks) {
			if toks[i].tok != token.COMMA {
				return nil, p.errorf(diagnostic.CodeAttributeParseError, toks[i].off,
					"expected `,` or `)`, found %s", toks[i])
			}

			i++
		}

		out = append(out, it)
	}

	return out, nil
}

func (p *parser) flag(it item) error {
	if it.hasArgs {
		return p.errorf(diagnostic.CodeAttributeParseError, it.key.off, "`%s` takes no arguments", it.key.lit)
	}

	return nil
}

func (p *parser) needArgs(it item, what string) error {
	if !it.hasArgs || len(it.args) == 0 {
		return p.errorf(diagnostic.CodeAttributeParseError, it.key.off, "`%s` expects %s", it.key.lit, what)
	}

	return nil
}

func (p *parser) str(it item) (string, error) {
	if err := p.needArgs(it, "a string literal"); err != nil {
		return "", err
	}

	if len(it.args) != 1 || it.args[0].tok != token.STRING {
		return "", p.errorf(diagnostic.CodeAttributeParseError, it.args[0].off,
			"`%s` expects a string literal, found %s", it.key.lit, it.args[0])
	}

	s, err := strconv.Unquote(it.args[0].lit)
	if err != nil {
		return "", p.errorf(diagnostic.CodeAttributeParseError, it.args[0].off, "%s: %v", it.args[0], err)
	}

	if s == "" {
		return "", p.errorf(diagnostic.CodeAttributeParseError, it.args[0].off, "`%s` expects a non-empty name", it.key.lit)
	}

	return s, nil
}

// parseExprAt parses src[from:to] as a Go expression.
func (p *parser) parseExprAt(from, to int) (*Expr, error) {
	text := p.src[from:to]

	e, err := goparser.ParseExpr(text)
	if err != nil {
		return nil, p.goError(err, from)
	}

	return &Expr{Text: strings.TrimSpace(text), Node: e}, nil
}

// goError re-anchors a go/parser error at offset delta of the list.
func (p *parser) goError(err error, delta int) error {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return p.errorf(diagnostic.CodeAttributeParseError, delta+list[0].Pos.Offset, "%s", list[0].Msg)
	}

	return p.errorf(diagnostic.CodeAttributeParseError, delta, "%v", err)
}

func (p *parser) expr(it item) (*Expr, error) {
	if err := p.needArgs(it, "a Go expression"); err != nil {
		return nil, err
	}

	return p.parseExprAt(it.from, it.to)
}

func (p *parser) spec(it item) (Spec, error) {
	spec := Spec{Pos: p.at(it.key.off)}

	if err := p.needArgs(it, "a seed spec such as seed(T)"); err != nil {
		return spec, err
	}

	entries, err := p.items(it.args)
	if err != nil {
		return spec, err
	}

	for _, e := range entries {
		switch e.key.lit {
		case "seed":
			spec.Seed, err = p.expr(e)
		case "params":
			var params []Param

			params, err = p.params(e)
			spec.Params = append(spec.Params, params...)
		case "bounds":
			var preds []Predicate

			preds, err = p.predicates(e)
			spec.Bounds = append(spec.Bounds, preds...)
		case "override_bounds":
			var preds []Predicate

			preds, err = p.predicates(e)
			spec.OverrideBounds = append(spec.OverrideBounds, preds...)
		default:
			return spec, p.unknown(e.key, "seed spec option", SpecKeys)
		}

		if err != nil {
			return spec, err
		}
	}

	return spec, nil
}

const paramsPrefix = "package p; func _["

// params parses a type parameter list such as "K comparable, V any".
func (p *parser) params(it item) ([]Param, error) {
	if err := p.needArgs(it, "a type parameter list"); err != nil {
		return nil, err
	}

	src := paramsPrefix + p.src[it.from:it.to] + "]() {}"

	fset := token.NewFileSet()

	f, err := goparser.ParseFile(fset, "", src, 0)
	if err != nil {
		return nil, p.goError(err, it.from-len(paramsPrefix))
	}

	file := fset.File(f.Pos())

	fn, ok := f.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Type.TypeParams == nil {
		return nil, p.errorf(diagnostic.CodeAttributeParseError, it.from, "malformed type parameter list")
	}

	var out []Param

	for _, field := range fn.Type.TypeParams.List {
		c := &Expr{
			Text: src[file.Offset(field.Type.Pos()):file.Offset(field.Type.End())],
			Node: field.Type,
		}

		for _, name := range field.Names {
			out = append(out, Param{Name: name.Name, Constraint: c})
		}
	}

	return out, nil
}

// predicates parses "T Constraint, U: Constraint".
func (p *parser) predicates(it item) ([]Predicate, error) {
	if err := p.needArgs(it, "a list of `Param Constraint` predicates"); err != nil {
		return nil, err
	}

	var out []Predicate

	for _, group := range splitTop(it.args) {
		if len(group) == 0 {
			continue
		}

		name := group[0]
		if name.tok != token.IDENT {
			return nil, p.errorf(diagnostic.CodeAttributeParseError, name.off, "expected type parameter name, found %s", name)
		}

		rest := group[1:]
		if len(rest) > 0 && rest[0].tok == token.COLON {
			rest = rest[1:]
		}

		if len(rest) == 0 {
			return nil, p.errorf(diagnostic.CodeAttributeParseError, name.off, "missing constraint for `%s`", name.lit)
		}

		c, err := p.parseExprAt(rest[0].off, rest[len(rest)-1].end)
		if err != nil {
			return nil, err
		}

		out = append(out, Predicate{Param: name.lit, Constraint: c})
	}

	return out, nil
}

// splitTop splits toks at commas outside any brackets.
func splitTop(toks []tok) [][]tok {
	var (
		out   [][]tok
		depth int
		start int
	)

	for i, t := range toks {
		switch t.tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		case token.COMMA:
			if depth == 0 {
				out = append(out, toks[start:i])
				start = i + 1
			}
		}
	}

	return append(out, toks[start:])
}
