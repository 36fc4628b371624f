package plan

import (
	"strconv"
	"strings"
)

// Normalize maps a field list to a Shape: no fields is a unit, fields
// addressed by position are positional and the rest are named. Skipped
// fields keep their place in Fields but get no wire index.
func Normalize(fields []Field, positional bool) Shape {
	if len(fields) == 0 {
		return Shape{Kind: ShapeUnit}
	}

	kind := ShapeNamed
	if positional {
		kind = ShapePositional
	}

	out := make([]Field, len(fields))
	copy(out, fields)

	n := 0

	for i := range out {
		if out[i].Attrs.Skip {
			out[i].WireIndex = -1
			continue
		}

		out[i].WireIndex = n
		n++
	}

	return Shape{Kind: kind, Fields: out}
}

// Active returns the fields that appear on the wire.
func (s Shape) Active() []Field {
	var out []Field

	for _, f := range s.Fields {
		if !f.Skipped() {
			out = append(out, f)
		}
	}

	return out
}

// Names returns the wire names of the active fields.
func (s Shape) Names() []string {
	active := s.Active()

	out := make([]string, 0, len(active))
	for _, f := range active {
		out = append(out, f.WireName)
	}

	return out
}

// Layout is the wire form generated code gives a shape.
type Layout int

const (
	LayoutUnit Layout = iota
	LayoutNewtype
	LayoutTuple
	LayoutStruct
)

func (l Layout) String() string {
	switch l {
	case LayoutUnit:
		return "unit"
	case LayoutNewtype:
		return "newtype"
	case LayoutTuple:
		return "tuple"
	case LayoutStruct:
		return "struct"
	default:
		return "Layout(" + strconv.Itoa(int(l)) + ")"
	}
}

// Layout picks the wire form. Positional shapes collapse by their number of
// active fields: none is a unit and one is a newtype.
func (s Shape) Layout() Layout {
	switch s.Kind {
	case ShapeUnit:
		return LayoutUnit
	case ShapeNamed:
		return LayoutStruct
	}

	switch len(s.Active()) {
	case 0:
		return LayoutUnit
	case 1:
		return LayoutNewtype
	default:
		return LayoutTuple
	}
}

// wireName is the default wire name of a Go field: a trailing underscore,
// used to dodge keywords and predeclared names, is dropped.
func wireName(goName string) string {
	if len(goName) > 1 && strings.HasSuffix(goName, "_") {
		return goName[:len(goName)-1]
	}

	return goName
}
