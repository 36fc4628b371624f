package gen

import (
	"fmt"
	"strings"
)

// code accumulates indented lines of Go source.
type code struct {
	sb     strings.Builder
	indent int
	// ret is the statement returning err from the function being written.
	ret string
	// pending separates the next statement from a finished if block.
	pending bool
}

func newCode(ret string) *code {
	return &code{indent: 1, ret: ret}
}

func (c *code) line(format string, args ...any) {
	text := fmt.Sprintf(format, args...)

	if c.pending && text != "" && !closes(text) {
		c.sb.WriteString("\n")
	}

	c.pending = false

	if text == "" {
		c.sb.WriteString("\n")
		return
	}

	c.sb.WriteString(strings.Repeat("\t", c.indent))
	c.sb.WriteString(text)
	c.sb.WriteString("\n")
}

// closes reports whether a line ends the enclosing block or clause.
func closes(text string) bool {
	return strings.HasPrefix(text, "}") || strings.HasPrefix(text, "case ") || text == "default:"
}

// open writes a line ending in "{" and indents.
func (c *code) open(format string, args ...any) {
	c.line(format, args...)
	c.indent++
}

// close dedents and writes the closing line.
func (c *code) close(s string) {
	c.indent--
	c.line("%s", s)
}

// check writes a call whose error aborts the function.
func (c *code) check(format string, args ...any) {
	c.open("if err := "+format+"; err != nil {", args...)
	c.line("%s", c.ret)
	c.close("}")
	c.pending = true
}

// bail writes the early return following an assignment to err.
func (c *code) bail() {
	c.open("if err != nil {")
	c.line("%s", c.ret)
	c.close("}")
	c.pending = true
}

func (c *code) String() string {
	return c.sb.String()
}
