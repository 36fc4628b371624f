// Package value is a self-describing, in-memory wire format.
//
// Encoding produces a tree of Value nodes shaped the way a JSON-like format
// would shape them: structs become maps keyed by field name, unit variants
// become their name, and the other variant forms become a single-entry map
// from variant name to payload. Decoding accepts field keys and discriminants
// as names, indices or raw bytes.
package value

import (
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind identifies the variant of a Value.
type Kind int

const (
	KindUnit Kind = iota
	KindNone
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindSeq
	KindMap
)

// Value is a node of the wire tree. Only the field matching Kind is
// meaningful.
type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Uint    uint64
	Float   float64
	Str     string
	Bytes   []byte
	Items   []Value
	Entries []Entry
}

// Entry is one key/value pair of a map node. Entries keep insertion order.
type Entry struct {
	Key   Value
	Value Value
}

func Unit() Value { return Value{Kind: KindUnit} }

func None() Value { return Value{Kind: KindNone} }

func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

func Int(v int64) Value { return Value{Kind: KindInt, Int: v} }

func Uint(v uint64) Value { return Value{Kind: KindUint, Uint: v} }

func Float(v float64) Value { return Value{Kind: KindFloat, Float: v} }

func String(v string) Value { return Value{Kind: KindString, Str: v} }

func Bytes(v []byte) Value { return Value{Kind: KindBytes, Bytes: v} }

func Seq(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{Kind: KindSeq, Items: items}
}

func Map(entries ...Entry) Value {
	if entries == nil {
		entries = []Entry{}
	}

	return Value{Kind: KindMap, Entries: entries}
}

// Pair builds a map entry.
func Pair(k, v Value) Entry {
	return Entry{Key: k, Value: v}
}

// Named builds a map entry with a string key.
func Named(name string, v Value) Entry {
	return Entry{Key: String(name), Value: v}
}

// Get returns the value stored under a string key of a map node.
func (v Value) Get(name string) (Value, bool) {
	for _, e := range v.Entries {
		if e.Key.Kind == KindString && e.Key.Str == name {
			return e.Value, true
		}
	}

	return Value{}, false
}

// String renders the tree in a compact JSON-like notation.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)

	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.Kind {
	case KindUnit:
		sb.WriteString("()")
	case KindNone:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.Int, 10))
	case KindUint:
		sb.WriteString(strconv.FormatUint(v.Uint, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.Str))
	case KindBytes:
		sb.WriteString("b")
		sb.WriteString(strconv.Quote(string(v.Bytes)))
	case KindSeq:
		sb.WriteByte('[')

		for i, item := range v.Items {
			if i > 0 {
				sb.WriteString(", ")
			}

			item.write(sb)
		}

		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')

		for i, e := range v.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}

			e.Key.write(sb)
			sb.WriteString(": ")
			e.Value.write(sb)
		}

		sb.WriteByte('}')
	default:
		sb.WriteString(v.Kind.String())
	}
}
