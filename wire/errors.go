package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sentinel errors matched with errors.Is.
var (
	ErrMissingField   = errors.New("missing field")
	ErrUnknownField   = errors.New("unknown field")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrInvalidLength  = errors.New("invalid length")
	ErrInvalidValue   = errors.New("invalid value")
	ErrInvalidType    = errors.New("invalid type")
)

// Error is a decoding failure raised by generated code or by a format.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error
	// Name is the offending field or variant name, when there is one.
	Name string
	// Expected lists the known names for unknown field and variant errors.
	Expected []string
	// Len is the element count reached for invalid length errors.
	Len int

	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// MissingField reports a required field absent from the input.
func MissingField(name string) error {
	return &Error{
		Kind: ErrMissingField,
		Name: name,
		msg:  "missing field `" + name + "`",
	}
}

// UnknownField reports a field key that names none of the expected fields.
func UnknownField(name string, expected []string) error {
	var msg string
	if len(expected) == 0 {
		msg = fmt.Sprintf("unknown field `%s`, there are no fields", name)
	} else {
		msg = fmt.Sprintf("unknown field `%s`, expected %s", name, oneOf(expected))
	}

	return &Error{Kind: ErrUnknownField, Name: name, Expected: expected, msg: msg}
}

// UnknownVariant reports a discriminant that names none of the expected
// variants.
func UnknownVariant(name string, expected []string) error {
	var msg string
	if len(expected) == 0 {
		msg = fmt.Sprintf("unknown variant `%s`, there are no variants", name)
	} else {
		msg = fmt.Sprintf("unknown variant `%s`, expected %s", name, oneOf(expected))
	}

	return &Error{Kind: ErrUnknownVariant, Name: name, Expected: expected, msg: msg}
}

// UnknownFieldBytes is UnknownField for a key stored as raw bytes. Bytes that
// are not valid UTF-8 are reported as an invalid value instead.
func UnknownFieldBytes(name []byte, expected []string) error {
	if !utf8.Valid(name) {
		return InvalidValue(Bytes(name), "field identifier")
	}

	return UnknownField(string(name), expected)
}

// UnknownVariantBytes is UnknownVariant for a discriminant stored as raw
// bytes.
func UnknownVariantBytes(name []byte, expected []string) error {
	if !utf8.Valid(name) {
		return InvalidValue(Bytes(name), "variant identifier")
	}

	return UnknownVariant(string(name), expected)
}

// InvalidLength reports a sequence that ended after n elements.
func InvalidLength(n int, expected string) error {
	return &Error{
		Kind: ErrInvalidLength,
		Len:  n,
		msg:  fmt.Sprintf("invalid length %d, expected %s", n, expected),
	}
}

// InvalidValue reports a value of the right type but outside the accepted
// set.
func InvalidValue(got Unexpected, expected string) error {
	return &Error{
		Kind: ErrInvalidValue,
		msg:  fmt.Sprintf("invalid value: %s, expected %s", got, expected),
	}
}

// InvalidFieldIndex reports a numeric field key past the last field.
func InvalidFieldIndex(v uint64) error {
	return InvalidValue(Unsigned(v), "field index")
}

// InvalidVariantIndex reports a numeric discriminant past the last variant.
func InvalidVariantIndex(v uint64) error {
	return InvalidValue(Unsigned(v), "variant index")
}

// InvalidType reports input of the wrong kind.
func InvalidType(got Unexpected, expected string) error {
	return &Error{
		Kind: ErrInvalidType,
		msg:  fmt.Sprintf("invalid type: %s, expected %s", got, expected),
	}
}

func oneOf(names []string) string {
	switch len(names) {
	case 1:
		return "`" + names[0] + "`"
	case 2:
		return "`" + names[0] + "` or `" + names[1] + "`"
	default:
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = "`" + n + "`"
		}

		return "one of " + strings.Join(quoted, ", ")
	}
}

// Unexpected describes the input found where something else was expected.
type Unexpected struct {
	desc string
}

func (u Unexpected) String() string {
	return u.desc
}

// Bool describes an unexpected boolean.
func Bool(v bool) Unexpected {
	return Unexpected{desc: "boolean `" + strconv.FormatBool(v) + "`"}
}

// Unsigned describes an unexpected unsigned integer.
func Unsigned(v uint64) Unexpected {
	return Unexpected{desc: "integer `" + strconv.FormatUint(v, 10) + "`"}
}

// Signed describes an unexpected signed integer.
func Signed(v int64) Unexpected {
	return Unexpected{desc: "integer `" + strconv.FormatInt(v, 10) + "`"}
}

// Float describes an unexpected floating point number.
func Float(v float64) Unexpected {
	return Unexpected{desc: "floating point `" + strconv.FormatFloat(v, 'g', -1, 64) + "`"}
}

// Str describes an unexpected string.
func Str(v string) Unexpected {
	return Unexpected{desc: "string " + strconv.Quote(v)}
}

// Bytes describes an unexpected byte array.
func Bytes(_ []byte) Unexpected {
	return Unexpected{desc: "byte array"}
}

// Other describes any other unexpected input, e.g. "map" or "sequence".
func Other(desc string) Unexpected {
	return Unexpected{desc: desc}
}
