package msgpack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeded-generator/wire"
)

type pair struct {
	A uint64
	B string
}

func (p *pair) MarshalWire(e wire.Encoder) error {
	s, err := e.EncodeStruct("Pair", 2)
	if err != nil {
		return err
	}

	if err := s.Field(0, "a", uintValue(p.A)); err != nil {
		return err
	}

	if err := s.Field(1, "b", stringValue(p.B)); err != nil {
		return err
	}

	return s.End()
}

type uintValue uint64

func (v uintValue) MarshalWire(e wire.Encoder) error { return e.EncodeUint(uint64(v)) }

type stringValue string

func (v stringValue) MarshalWire(e wire.Encoder) error { return e.EncodeString(string(v)) }

type keys struct {
	seen []uint64
}

func (k *keys) VisitIndex(v uint64) error {
	k.seen = append(k.seen, v)
	return nil
}

func (k *keys) VisitString(string) error { return errors.New("unexpected text key") }
func (k *keys) VisitBytes([]byte) error  { return errors.New("unexpected byte key") }

func TestStructKeyedByIndex(t *testing.T) {
	data, err := Marshal(&pair{A: 7, B: "x"})
	require.NoError(t, err)

	// fixmap(2) 0 7 1 fixstr("x")
	assert.Equal(t, []byte{0x82, 0x00, 0x07, 0x01, 0xa1, 'x'}, data)

	d := NewDecoder(bytes.NewReader(data))
	m, err := d.DecodeStruct("Pair", []string{"a", "b"})
	require.NoError(t, err)

	k := &keys{}

	kd, ok, err := m.NextKey()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, kd.DecodeIdentifier(k))

	vd, err := m.NextValue()
	require.NoError(t, err)

	a, err := vd.DecodeUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), a)

	kd, ok, err = m.NextKey()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, kd.DecodeIdentifier(k))

	vd, err = m.NextValue()
	require.NoError(t, err)

	b, err := vd.DecodeString()
	require.NoError(t, err)
	assert.Equal(t, "x", b)

	_, ok, err = m.NextKey()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []uint64{0, 1}, k.seen)
}

func TestVariantLayout(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)

	require.NoError(t, e.EncodeUnitVariant("E", 2, "C"))
	require.NoError(t, e.EncodeNewtypeVariant("E", 1, "B", uintValue(5)))
	assert.Equal(t, []byte{0x02, 0x92, 0x01, 0x05}, buf.Bytes())

	d := NewDecoder(bytes.NewReader(buf.Bytes()))

	k := &keys{}
	vd, err := d.DecodeEnum("E", []string{"A", "B", "C"}, k)
	require.NoError(t, err)
	require.NoError(t, vd.Unit())

	vd, err = d.DecodeEnum("E", []string{"A", "B", "C"}, k)
	require.NoError(t, err)

	nd, err := vd.Newtype()
	require.NoError(t, err)

	n, err := nd.DecodeUint()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
	assert.Equal(t, []uint64{2, 1}, k.seen)
}

func TestCountMismatch(t *testing.T) {
	var buf bytes.Buffer

	s, err := NewEncoder(&buf).EncodeTupleStruct("T", 2)
	require.NoError(t, err)
	require.NoError(t, s.Element(uintValue(1)))
	assert.Error(t, s.End())
}

func TestOptionPeeksNil(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte{0xc0, 0x03}))

	_, ok, err := d.DecodeOption()
	require.NoError(t, err)
	assert.False(t, ok)

	inner, ok, err := d.DecodeOption()
	require.NoError(t, err)
	require.True(t, ok)

	n, err := inner.DecodeInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
