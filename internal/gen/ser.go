package gen

import (
	"fmt"
	"strconv"

	"seeded-generator/internal/plan"
)

// encoder writes the encode function of one spec.
func (f *file) encoder(sc *specContext) error {
	c := newCode("return err")

	if err := f.bounds(c, sc); err != nil {
		return err
	}

	var err error

	switch {
	case sc.t.Kind == plan.KindUnion:
		err = f.encodeUnion(c, sc)
	case sc.t.Attrs.Transparent:
		err = f.encodeTransparent(c, sc)
	default:
		err = f.encodeShape(c, sc, selfTarget, sc.t.Shape, variant{name: sc.t.WireName})
	}

	if err != nil {
		return fmt.Errorf("encoding %s: %w", sc.t.Name, err)
	}

	f.add(fmt.Sprintf("%sfunc %s%s(x *%s, seed *%s, e %s) error {\n%s}\n",
		f.doc("%s writes x, seeded with *%s.", sc.entry, sc.spec.SeedString()),
		sc.entry, sc.params.Def(), sc.self, sc.seed, f.wr("Encoder"), c))

	return nil
}

// variant names the wire form being written: a record, or an arm of a
// union when arm is set.
type variant struct {
	name  string
	arm   string
	index int
}

func (v variant) isArm() bool {
	return v.arm != ""
}

// args are the leading arguments of the Encode*/Decode* wire calls.
func (v variant) args() string {
	if v.isArm() {
		return fmt.Sprintf("%s, %d, %s", strconv.Quote(v.name), v.index, strconv.Quote(v.arm))
	}

	return strconv.Quote(v.name)
}

func (f *file) encodeTransparent(c *code, sc *specContext) error {
	fld, _ := sc.t.Transparent()

	if fld.Attrs.With != nil {
		with, err := f.expr(sc.t.Decl, fld.Attrs.With)
		if err != nil {
			return err
		}

		c.line("return %s.EncodeWith(%s, seed, e)", with, f.addr(selfTarget, fld))

		return nil
	}

	c.line("return %s(seed, e, %s)", f.sd("Encode"), f.value(selfTarget, fld))

	return nil
}

// encodeShape writes a record or a union arm according to its layout. Every
// path ends in a return.
func (f *file) encodeShape(c *code, sc *specContext, t target, s plan.Shape, v variant) error {
	kind := "Struct"
	if v.isArm() {
		kind = "Variant"
	}

	active := s.Active()

	switch s.Layout() {
	case plan.LayoutUnit:
		c.line("return e.EncodeUnit%s(%s)", kind, v.args())
	case plan.LayoutNewtype:
		m, err := f.marshaler(sc, t, active[0])
		if err != nil {
			return err
		}

		c.line("return e.EncodeNewtype%s(%s, %s)", kind, v.args(), m)
	case plan.LayoutTuple:
		kind = "TupleStruct"
		if v.isArm() {
			kind = "TupleVariant"
		}

		c.line("s, err := e.Encode%s(%s, %d)", kind, v.args(), len(active))
		c.bail()

		for _, fld := range active {
			m, err := f.marshaler(sc, t, fld)
			if err != nil {
				return err
			}

			c.check("s.Element(%s)", m)
		}

		c.line("return s.End()")
	case plan.LayoutStruct:
		if v.isArm() {
			kind = "StructVariant"
		}

		return f.encodeFields(c, sc, t, active, kind, v)
	}

	return nil
}

func (f *file) encodeFields(c *code, sc *specContext, t target, active []plan.Field, kind string, v variant) error {
	preds := make([]string, len(active))
	always := 0

	for i, fld := range active {
		p, err := f.predicate(sc, t, fld)
		if err != nil {
			return err
		}

		preds[i] = p
		if p == "" {
			always++
		}
	}

	n := strconv.Itoa(always)

	if always < len(active) {
		c.line("n := %d", always)

		for _, p := range preds {
			if p == "" {
				continue
			}

			c.open("if !%s {", p)
			c.line("n++")
			c.close("}")
		}

		c.line("")

		n = "n"
	}

	c.line("s, err := e.Encode%s(%s, %s)", kind, v.args(), n)
	c.bail()

	for i, fld := range active {
		m, err := f.marshaler(sc, t, fld)
		if err != nil {
			return err
		}

		field := fmt.Sprintf("s.Field(%d, %s, %s)", fld.WireIndex, strconv.Quote(fld.WireName), m)

		if preds[i] == "" {
			c.check("%s", field)
			continue
		}

		c.open("if %s {", preds[i])
		c.check("s.Skip(%d, %s)", fld.WireIndex, strconv.Quote(fld.WireName))
		c.indent--
		c.open("} else if err := %s; err != nil {", field)
		c.line("%s", c.ret)
		c.close("}")

		c.pending = true
	}

	c.line("return s.End()")

	return nil
}

func (f *file) encodeUnion(c *code, sc *specContext) error {
	uses := false

	for _, a := range sc.t.Arms {
		if a.Pointer || len(a.Shape.Active()) > 0 {
			uses = true
		}
	}

	if uses {
		c.open("switch arm := (*x).(type) {")
	} else {
		c.open("switch (*x).(type) {")
	}

	for _, a := range sc.t.Arms {
		typ := a.Decl.Name
		if a.Pointer {
			typ = "*" + typ
		}

		c.indent--
		c.open("case %s:", typ)

		if a.Pointer {
			c.open("if arm == nil {")
			c.line("return %s(%s)", f.sd("NilUnion"), strconv.Quote(sc.t.WireName))
			c.close("}")
			c.line("")
		}

		v := variant{name: sc.t.WireName, arm: a.Name, index: a.Index}
		if err := f.encodeShape(c, sc, armTarget(a), a.Shape, v); err != nil {
			return err
		}
	}

	c.close("}")
	c.line("")
	c.line("return %s(%s, *x)", f.sd("UnknownArm"), strconv.Quote(sc.t.WireName))

	return nil
}
