package gen

import (
	"fmt"
	"go/types"

	"seeded-generator/internal/plan"
)

// target is the value whose fields are being read or written.
type target struct {
	// sel is an expression fields can be selected from.
	sel string
	// ptr is a pointer to the value.
	ptr string
}

var (
	selfTarget = target{sel: "x", ptr: "x"}
	outTarget  = target{sel: "out", ptr: "&out"}
)

// armTarget is the type switch variable of a union arm.
func armTarget(a plan.Arm) target {
	if a.Pointer {
		return target{sel: "arm", ptr: "arm"}
	}

	return target{sel: "arm", ptr: "&arm"}
}

// addr is a pointer to the field, typed as the field's declared type.
func (f *file) addr(t target, fld plan.Field) string {
	if fld.Convert {
		return fmt.Sprintf("(*%s)(%s)", f.typeString(fld.Type), t.ptr)
	}

	return "&" + t.sel + "." + fld.GoName
}

// value is the operand handed to the seeded codec for a field. Unnamed
// slices, maps and pointers are viewed through the matching container so
// their elements receive the seed.
func (f *file) value(t target, fld plan.Field) string {
	base := func() string {
		if fld.Convert {
			return t.ptr
		}

		return "&" + t.sel + "." + fld.GoName
	}

	switch u := fld.Type.(type) {
	case *types.Slice:
		if isByte(u.Elem()) {
			break
		}

		return fmt.Sprintf("(*%s[%s])(%s)", f.sd("Slice"), f.typeString(u.Elem()), base())
	case *types.Map:
		container := "HashMap"
		if ordered(u.Key()) {
			container = "SortedMap"
		}

		return fmt.Sprintf("(*%s[%s, %s])(%s)",
			f.sd(container), f.typeString(u.Key()), f.typeString(u.Elem()), base())
	case *types.Pointer:
		if !fld.Convert {
			return fmt.Sprintf("%s(%s)", f.sd("Ptr"), base())
		}
	}

	return f.addr(t, fld)
}

func isByte(t types.Type) bool {
	b, ok := t.(*types.Basic)
	return ok && b.Kind() == types.Byte
}

// ordered reports whether a map key satisfies cmp.Ordered.
func ordered(t types.Type) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Info()&types.IsOrdered != 0
}

// marshaler is the wire.Marshaler writing a field with the seed in scope.
func (f *file) marshaler(sc *specContext, t target, fld plan.Field) (string, error) {
	if fld.Attrs.With != nil {
		with, err := f.expr(sc.t.Decl, fld.Attrs.With)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s(func(e %s) error { return %s.EncodeWith(%s, seed, e) })",
			f.sd("MarshalFunc"), f.wr("Encoder"), with, f.addr(t, fld)), nil
	}

	return fmt.Sprintf("%s(seed, %s)", f.sd("New"), f.value(t, fld)), nil
}

// routine is the decode closure of a field with a custom routine, or "".
func (f *file) routine(sc *specContext, t target, fld plan.Field) (string, error) {
	if fld.Attrs.With == nil {
		return "", nil
	}

	with, err := f.expr(sc.t.Decl, fld.Attrs.With)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("func(d %s) error { return %s.DecodeWith(%s, seed, d) }",
		f.wr("Decoder"), with, f.addr(t, fld)), nil
}

// predicate is the skip_serializing_if call of a field, or "".
func (f *file) predicate(sc *specContext, t target, fld plan.Field) (string, error) {
	if fld.Attrs.SkipIf == nil {
		return "", nil
	}

	pred, err := f.expr(sc.t.Decl, fld.Attrs.SkipIf)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s(%s)", pred, f.addr(t, fld)), nil
}
