package seeded_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeded-generator/seeded"
	"seeded-generator/wire/msgpack"
	"seeded-generator/wire/value"
)

func TestOption_RoundTrip(t *testing.T) {
	seed := &scale{factor: 3}

	some := seeded.Some(Scaled(2))
	assert.Equal(t, value.Int(6), encodeValue(t, seed, &some))

	none := seeded.None[Scaled]()
	assert.Equal(t, value.None(), encodeValue(t, seed, &none))

	var back seeded.Option[Scaled]
	require.NoError(t, value.Unmarshal(value.Int(6), seeded.Into(seed, &back)))
	assert.Equal(t, some, back)

	require.NoError(t, value.Unmarshal(value.None(), seeded.Into(seed, &back)))
	v, ok := back.Get()
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestSlice_RoundTrip(t *testing.T) {
	seed := &scale{factor: 2}
	in := seeded.Slice[Scaled]{1, 2, 3}

	got := encodeValue(t, seed, &in)
	assert.Equal(t, value.Seq(value.Int(2), value.Int(4), value.Int(6)), got)

	var back seeded.Slice[Scaled]
	require.NoError(t, value.Unmarshal(got, seeded.Into(seed, &back)))
	assert.Equal(t, in, back)
}

func TestSortedMap_EncodesInKeyOrder(t *testing.T) {
	seed := &scale{factor: 1}
	in := seeded.SortedMap[int, Scaled]{3: 30, 1: 10, 2: 20}

	got := encodeValue(t, seed, &in)
	want := value.Map(
		value.Pair(value.Int(1), value.Int(10)),
		value.Pair(value.Int(2), value.Int(20)),
		value.Pair(value.Int(3), value.Int(30)),
	)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("encode mismatch (-want +got):\n%s", diff)
	}
}

func TestMaps_LastDuplicateWins(t *testing.T) {
	seed := &scale{factor: 1}
	in := value.Map(
		value.Named("k", value.Int(1)),
		value.Named("k", value.Int(2)),
	)

	var sorted seeded.SortedMap[string, Scaled]
	require.NoError(t, value.Unmarshal(in, seeded.Into(seed, &sorted)))
	assert.Equal(t, seeded.SortedMap[string, Scaled]{"k": 2}, sorted)

	var hashed seeded.HashMap[string, Scaled]
	require.NoError(t, value.Unmarshal(in, seeded.Into(seed, &hashed)))
	assert.Equal(t, seeded.HashMap[string, Scaled]{"k": 2}, hashed)
}

func TestPtr_ForwardsAndMapsNilToNone(t *testing.T) {
	seed := &scale{factor: 5}

	n := Scaled(2)
	p := &n
	assert.Equal(t, value.Int(10), encodeValue(t, seed, seeded.Ptr(&p)))

	var empty *Scaled
	assert.Equal(t, value.None(), encodeValue(t, seed, seeded.Ptr(&empty)))

	var back *Scaled
	require.NoError(t, value.Unmarshal(value.Int(10), seeded.Into(seed, seeded.Ptr(&back))))
	require.NotNil(t, back)
	assert.Equal(t, Scaled(2), *back)
}

func TestContainers_MsgpackRoundTrip(t *testing.T) {
	seed := &scale{factor: 2}
	in := seeded.HashMap[string, seeded.Slice[Scaled]]{"a": {1, 2}}

	data, err := msgpack.Marshal(seeded.New(seed, &in))
	require.NoError(t, err)

	var back seeded.HashMap[string, seeded.Slice[Scaled]]
	require.NoError(t, msgpack.Unmarshal(data, seeded.Into(seed, &back)))
	assert.Equal(t, in, back)
}

func TestPredicates(t *testing.T) {
	none := seeded.None[int]()
	assert.True(t, seeded.IsNone(&none))

	var p *int
	assert.True(t, seeded.IsNil(&p))

	zero := 0
	assert.True(t, seeded.IsZero(&zero))

	tags := []string{"x"}
	assert.False(t, seeded.IsEmpty(&tags))
}
