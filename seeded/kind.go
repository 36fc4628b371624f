package seeded

import (
	"reflect"
)

//go:generate go tool stringer -type=kindEnum -output=kind_string.go

// kindEnum classifies the types the reflection fallback knows how to walk.
type kindEnum int

const (
	_ kindEnum = iota // no built-in handling

	kindBool
	kindInt
	kindUint
	kindFloat
	kindString
	kindBytes
	kindSeq
	kindArray
	kindMap
	kindPointer
)

func kindOf(t reflect.Type) kindEnum {
	switch t.Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return kindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return kindUint
	case reflect.Float32, reflect.Float64:
		return kindFloat
	case reflect.String:
		return kindString
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return kindBytes
		}

		return kindSeq
	case reflect.Array:
		return kindArray
	case reflect.Map:
		return kindMap
	case reflect.Pointer:
		return kindPointer
	default:
		return 0
	}
}

func (k kindEnum) isPrimitive() bool {
	switch k {
	case kindBool, kindInt, kindUint, kindFloat, kindString, kindBytes:
		return true
	default:
		return false
	}
}

// isOrdered reports whether map keys of this kind are sorted on encode.
func (k kindEnum) isOrdered() bool {
	switch k {
	case kindInt, kindUint, kindFloat, kindString:
		return true
	default:
		return false
	}
}
