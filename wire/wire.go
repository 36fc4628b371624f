package wire

// Marshaler is implemented by values that encode themselves without a seed.
type Marshaler interface {
	MarshalWire(e Encoder) error
}

// Unmarshaler is implemented by values that decode themselves without a seed.
type Unmarshaler interface {
	UnmarshalWire(d Decoder) error
}

// Encoder is the write side of a wire format.
//
// The name arguments carry the wire type name; index and variant identify a
// union arm by its zero-based position and its wire name. Counts passed to the
// compound encoders are exact: formats that need a length prefix rely on them.
type Encoder interface {
	EncodeBool(v bool) error
	EncodeInt(v int64) error
	EncodeUint(v uint64) error
	EncodeFloat(v float64) error
	EncodeString(v string) error
	EncodeBytes(v []byte) error

	EncodeNone() error
	EncodeSome(v Marshaler) error
	EncodeUnit() error

	EncodeUnitStruct(name string) error
	EncodeUnitVariant(name string, index uint32, variant string) error
	EncodeNewtypeStruct(name string, v Marshaler) error
	EncodeNewtypeVariant(name string, index uint32, variant string, v Marshaler) error

	EncodeSeq(n int) (SeqEncoder, error)
	EncodeTupleStruct(name string, n int) (SeqEncoder, error)
	EncodeTupleVariant(name string, index uint32, variant string, n int) (SeqEncoder, error)

	EncodeMap(n int) (MapEncoder, error)
	EncodeStruct(name string, n int) (StructEncoder, error)
	EncodeStructVariant(name string, index uint32, variant string, n int) (StructEncoder, error)
}

// SeqEncoder writes the elements of a sequence or tuple.
type SeqEncoder interface {
	Element(v Marshaler) error
	End() error
}

// MapEncoder writes the entries of a map.
type MapEncoder interface {
	Entry(k, v Marshaler) error
	End() error
}

// StructEncoder writes the fields of a struct or struct variant.
//
// The index is the field's position among the fields that can appear on the
// wire. Skip reports a field that was elided at encode time; formats that key
// by index may use it to keep their bookkeeping straight, most ignore it.
type StructEncoder interface {
	Field(index int, name string, v Marshaler) error
	Skip(index int, name string) error
	End() error
}

// Decoder is the read side of a wire format.
type Decoder interface {
	DecodeBool() (bool, error)
	DecodeInt() (int64, error)
	DecodeUint() (uint64, error)
	DecodeFloat() (float64, error)
	DecodeString() (string, error)
	DecodeBytes() ([]byte, error)

	// DecodeOption reports whether a value is present. When it is, the
	// returned Decoder reads it.
	DecodeOption() (Decoder, bool, error)
	DecodeUnit() error

	DecodeUnitStruct(name string) error
	DecodeNewtypeStruct(name string) (Decoder, error)
	DecodeSeq() (SeqDecoder, error)
	DecodeTupleStruct(name string, n int) (SeqDecoder, error)
	DecodeMap() (MapDecoder, error)
	DecodeStruct(name string, fields []string) (MapDecoder, error)

	// DecodeEnum reads a discriminant through id and returns access to the
	// payload of the selected variant.
	DecodeEnum(name string, variants []string, id IdentifierVisitor) (VariantDecoder, error)
	DecodeIdentifier(id IdentifierVisitor) error
}

// SeqDecoder reads the elements of a sequence or tuple in order.
type SeqDecoder interface {
	// Next returns a Decoder for the next element, or false once the
	// sequence is exhausted.
	Next() (Decoder, bool, error)
	// End fails if elements remain unread.
	End() error
}

// MapDecoder reads alternating keys and values.
type MapDecoder interface {
	NextKey() (Decoder, bool, error)
	NextValue() (Decoder, error)
}

// VariantDecoder reads the payload of the variant selected by DecodeEnum.
type VariantDecoder interface {
	Unit() error
	Newtype() (Decoder, error)
	Tuple(n int) (SeqDecoder, error)
	Struct(fields []string) (MapDecoder, error)
}

// IdentifierVisitor resolves a field key or variant discriminant. Exactly one
// method is called per identifier, depending on how the format stored it.
type IdentifierVisitor interface {
	VisitIndex(v uint64) error
	VisitString(v string) error
	VisitBytes(v []byte) error
}
