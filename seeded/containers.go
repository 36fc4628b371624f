package seeded

import (
	"cmp"
	"maps"
	"slices"

	"seeded-generator/wire"
)

// Slice encodes as a sequence of seeded elements. Generated code converts
// slice fields to it: (*seeded.Slice[T])(&x.Items).
type Slice[T any] []T

func (s *Slice[T]) EncodeSeeded(seed any, e wire.Encoder) error {
	items := *s

	se, err := e.EncodeSeq(len(items))
	if err != nil {
		return err
	}

	for i := range items {
		if err := se.Element(element{seed: seed, v: &items[i]}); err != nil {
			return err
		}
	}

	return se.End()
}

func (s *Slice[T]) DecodeSeeded(seed any, d wire.Decoder) error {
	sd, err := d.DecodeSeq()
	if err != nil {
		return err
	}

	out := Slice[T]{}

	for {
		ed, ok, err := sd.Next()
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		var v T
		if err := decode(seed, ed, &v); err != nil {
			return err
		}

		out = append(out, v)
	}

	if err := sd.End(); err != nil {
		return err
	}

	*s = out

	return nil
}

// SortedMap encodes as a map whose entries are written in key order.
type SortedMap[K cmp.Ordered, V any] map[K]V

func (m *SortedMap[K, V]) EncodeSeeded(seed any, e wire.Encoder) error {
	entries := *m
	keys := slices.Sorted(maps.Keys(entries))

	me, err := e.EncodeMap(len(keys))
	if err != nil {
		return err
	}

	for _, k := range keys {
		v := entries[k]
		if err := me.Entry(element{seed: seed, v: &k}, element{seed: seed, v: &v}); err != nil {
			return err
		}
	}

	return me.End()
}

func (m *SortedMap[K, V]) DecodeSeeded(seed any, d wire.Decoder) error {
	out, err := decodeEntries[K, V](seed, d)
	if err != nil {
		return err
	}

	*m = out

	return nil
}

// HashMap encodes as a map in iteration order.
type HashMap[K comparable, V any] map[K]V

func (m *HashMap[K, V]) EncodeSeeded(seed any, e wire.Encoder) error {
	entries := *m

	me, err := e.EncodeMap(len(entries))
	if err != nil {
		return err
	}

	for k, v := range entries {
		if err := me.Entry(element{seed: seed, v: &k}, element{seed: seed, v: &v}); err != nil {
			return err
		}
	}

	return me.End()
}

func (m *HashMap[K, V]) DecodeSeeded(seed any, d wire.Decoder) error {
	out, err := decodeEntries[K, V](seed, d)
	if err != nil {
		return err
	}

	*m = out

	return nil
}

// decodeEntries reads one key then one value per entry; a repeated key keeps
// the last value.
func decodeEntries[K comparable, V any](seed any, d wire.Decoder) (map[K]V, error) {
	md, err := d.DecodeMap()
	if err != nil {
		return nil, err
	}

	out := make(map[K]V)

	for {
		kd, ok, err := md.NextKey()
		if err != nil {
			return nil, err
		}

		if !ok {
			return out, nil
		}

		var k K
		if err := decode(seed, kd, &k); err != nil {
			return nil, err
		}

		vd, err := md.NextValue()
		if err != nil {
			return nil, err
		}

		var v V
		if err := decode(seed, vd, &v); err != nil {
			return nil, err
		}

		out[k] = v
	}
}

// PtrOf forwards to the value behind a pointer. A nil pointer is written as
// the wire's none and none decodes to nil.
type PtrOf[T any] struct {
	p **T
}

// Ptr wraps the address of a pointer field: seeded.Ptr(&x.Next).
func Ptr[T any](p **T) PtrOf[T] {
	return PtrOf[T]{p: p}
}

func (b PtrOf[T]) EncodeSeeded(seed any, e wire.Encoder) error {
	if *b.p == nil {
		return e.EncodeNone()
	}

	return encode(seed, e, *b.p)
}

func (b PtrOf[T]) DecodeSeeded(seed any, d wire.Decoder) error {
	inner, ok, err := d.DecodeOption()
	if err != nil {
		return err
	}

	if !ok {
		*b.p = nil
		return nil
	}

	v := new(T)
	if err := decode(seed, inner, v); err != nil {
		return err
	}

	*b.p = v

	return nil
}
