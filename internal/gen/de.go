package gen

import (
	"fmt"
	"strconv"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/plan"
)

// decoder writes the decode function of one spec.
func (f *file) decoder(sc *specContext) error {
	c := newCode("return err")

	if err := f.bounds(c, sc); err != nil {
		return err
	}

	var err error

	switch {
	case sc.t.Kind == plan.KindUnion:
		err = f.decodeUnion(c, sc)
	case sc.t.Attrs.Transparent:
		err = f.decodeTransparent(c, sc)
	default:
		err = f.decodeRecord(c, sc)
	}

	if err != nil {
		return fmt.Errorf("decoding %s: %w", sc.t.Name, err)
	}

	f.add(fmt.Sprintf("%sfunc %s%s(x *%s, seed *%s, d %s) error {\n%s}\n",
		f.doc("%s reads into x, seeded with *%s.", sc.entry, sc.spec.SeedString()),
		sc.entry, sc.params.Def(), sc.self, sc.seed, f.wr("Decoder"), c))

	return nil
}

func (f *file) decodeTransparent(c *code, sc *specContext) error {
	fld, _ := sc.t.Transparent()

	c.line("var out %s", sc.self)

	call, err := f.decodeInto(sc, outTarget, fld, "d")
	if err != nil {
		return err
	}

	c.check("%s", call)
	c.line("")
	c.line("*x = out")
	c.line("")
	c.line("return nil")

	return nil
}

// decodeInto is the call decoding the field from the wire.Decoder named d.
func (f *file) decodeInto(sc *specContext, t target, fld plan.Field, d string) (string, error) {
	if fld.Attrs.With != nil {
		with, err := f.expr(sc.t.Decl, fld.Attrs.With)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s.DecodeWith(%s, seed, %s)", with, f.addr(t, fld), d), nil
	}

	return fmt.Sprintf("%s(seed, %s, %s)", f.sd("Decode"), d, f.value(t, fld)), nil
}

func (f *file) decodeRecord(c *code, sc *specContext) error {
	s := sc.t.Shape
	v := variant{name: sc.t.WireName}

	if s.Layout() == plan.LayoutStruct {
		c.line("m, err := d.DecodeStruct(%s, %s)", strconv.Quote(v.name), f.ident(sc.t.Decl, s))
		c.bail()
		c.line("")

		visit, err := f.visitor(sc, sc.t.Decl, sc.self, s)
		if err != nil {
			return err
		}

		c.line("out, err := %s%s(seed, m)", visit, sc.params.Ref())
		c.bail()
		c.line("")
		c.line("*x = out")
		c.line("")
		c.line("return nil")

		return nil
	}

	if s.Layout() == plan.LayoutUnit {
		c.check("d.DecodeUnitStruct(%s)", strconv.Quote(v.name))
		c.line("")
		c.line("*x = %s{}", sc.self)
		c.line("")
		c.line("return nil")

		return nil
	}

	if s.Layout() == plan.LayoutNewtype {
		c.line("nd, err := d.DecodeNewtypeStruct(%s)", strconv.Quote(v.name))
	} else {
		c.line("s, err := d.DecodeTupleStruct(%s, %d)", strconv.Quote(v.name), len(s.Active()))
	}

	c.bail()
	c.line("")
	c.line("var out %s", sc.self)

	if err := f.decodePositional(c, sc, outTarget, s, tupleExpected(v.name, len(s.Active()))); err != nil {
		return err
	}

	c.line("")
	c.line("*x = out")
	c.line("")
	c.line("return nil")

	return nil
}

// decodePositional reads a newtype from nd or a tuple from s into t.
func (f *file) decodePositional(c *code, sc *specContext, t target, s plan.Shape, expected string) error {
	active := s.Active()

	if s.Layout() == plan.LayoutNewtype {
		call, err := f.decodeInto(sc, t, active[0], "nd")
		if err != nil {
			return err
		}

		c.check("%s", call)

		return nil
	}

	for _, fld := range active {
		fn, err := f.routine(sc, t, fld)
		if err != nil {
			return err
		}

		if fn != "" {
			c.check("%s(s, %d, %s, %s)", f.sd("DecodeElementWith"), fld.WireIndex, strconv.Quote(expected), fn)
			continue
		}

		c.check("%s(seed, s, %d, %s, %s)", f.sd("DecodeElement"), fld.WireIndex, strconv.Quote(expected), f.value(t, fld))
	}

	c.check("s.End()")

	return nil
}

// visitor returns the name of the function reading the fields of a named
// shape from a wire.MapDecoder, writing it on first use.
func (f *file) visitor(sc *specContext, d *analyze.Decl, self string, s plan.Shape) (string, error) {
	key := d.Name + "|" + sc.seed + "|" + sc.params.Def()
	if name, ok := f.visitors[key]; ok {
		return name, nil
	}

	name := "visit" + d.Name + sc.spec.Suffix
	for i := 2; f.names[name]; i++ {
		name = fmt.Sprintf("visit%s%s%d", d.Name, sc.spec.Suffix, i)
	}

	f.names[name] = true
	f.visitors[key] = name

	c := newCode("return out, err")
	active := s.Active()
	ident := fieldIdent(d.Name)

	required := 0

	for _, fld := range active {
		if !fld.Attrs.Default {
			required++
		}
	}

	if required > 0 {
		c.open("var (")
		c.line("out  %s", self)
		c.line("seen [%d]bool", len(active))
		c.close(")")
	} else {
		c.line("var out %s", self)
	}

	c.line("")
	c.open("for {")
	c.line("kd, ok, err := m.NextKey()")
	c.bail()
	c.line("")
	c.open("if !ok {")
	c.line("break")
	c.close("}")
	c.line("")
	c.line("var id %s", ident)
	c.check("kd.DecodeIdentifier(&id)")

	if len(active) > 0 {
		c.line("")
		c.open("switch id {")

		for _, fld := range active {
			c.indent--
			c.open("case %d:", fld.WireIndex)

			fn, err := f.routine(sc, outTarget, fld)
			if err != nil {
				return "", err
			}

			if fn != "" {
				c.check("%s(m, %s)", f.sd("DecodeValueWith"), fn)
			} else {
				c.check("%s(seed, m, %s)", f.sd("DecodeValue"), f.value(outTarget, fld))
			}

			if !fld.Attrs.Default {
				c.line("")
				c.line("seen[%d] = true", fld.WireIndex)
			}
		}

		c.close("}")
	}

	c.close("}")

	for _, fld := range active {
		if fld.Attrs.Default {
			continue
		}

		c.line("")
		c.open("if !seen[%d] {", fld.WireIndex)
		c.line("return out, %s(%s)", f.wr("MissingField"), strconv.Quote(fld.WireName))
		c.close("}")
	}

	c.line("")
	c.line("return out, nil")

	f.add(fmt.Sprintf("%sfunc %s%s(seed *%s, m %s) (%s, error) {\n%s}\n",
		f.doc("%s reads the fields of %s.", name, d.Name),
		name, sc.params.Def(), sc.seed, f.wr("MapDecoder"), self, c))

	return name, nil
}

func (f *file) decodeUnion(c *code, sc *specContext) error {
	u := sc.t

	c.line("var id %s", variantIdent(u.Name))
	c.line("")
	c.line("vd, err := d.DecodeEnum(%s, %s, &id)", strconv.Quote(u.WireName), f.variants(u))
	c.bail()
	c.line("")
	c.open("switch id {")

	for _, a := range u.Arms {
		c.indent--
		c.open("case %d:", a.Index)

		if err := f.decodeArm(c, sc, a); err != nil {
			return err
		}
	}

	c.close("}")
	c.line("")
	c.line("return nil")

	return nil
}

func (f *file) decodeArm(c *code, sc *specContext, a plan.Arm) error {
	ref := "arm"
	if a.Pointer {
		ref = "&arm"
	}

	active := a.Shape.Active()

	switch a.Shape.Layout() {
	case plan.LayoutUnit:
		c.check("vd.Unit()")
		c.line("")

		if a.Pointer {
			c.line("*x = &%s{}", a.Decl.Name)
		} else {
			c.line("*x = %s{}", a.Decl.Name)
		}

		return nil
	case plan.LayoutStruct:
		c.line("m, err := vd.Struct(%s)", f.ident(a.Decl, a.Shape))
		c.bail()
		c.line("")

		visit, err := f.visitor(sc, a.Decl, a.Decl.Name, a.Shape)
		if err != nil {
			return err
		}

		c.line("arm, err := %s%s(seed, m)", visit, sc.params.Ref())
		c.bail()
		c.line("")
		c.line("*x = %s", ref)

		return nil
	case plan.LayoutNewtype:
		c.line("nd, err := vd.Newtype()")
	default:
		c.line("s, err := vd.Tuple(%d)", len(active))
	}

	c.bail()
	c.line("")
	c.line("var arm %s", a.Decl.Name)

	t := target{sel: "arm", ptr: "&arm"}
	expected := variantExpected(sc.t.WireName, a.Name, len(active))

	if err := f.decodePositional(c, sc, t, a.Shape, expected); err != nil {
		return err
	}

	c.line("")
	c.line("*x = %s", ref)

	return nil
}
