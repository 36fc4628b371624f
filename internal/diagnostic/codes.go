package diagnostic

// Generation-time diagnostic codes.
const (
	// CodeExpectedAttributeList: a directive or tag is not a parenthesized list.
	CodeExpectedAttributeList = "ExpectedAttributeList"

	// CodeAttributeParseError: the list, or a value inside it, does not parse.
	CodeAttributeParseError = "AttributeParseError"

	// CodeUnrecognizedKey: an option name that does not exist at that level.
	CodeUnrecognizedKey = "UnrecognizedKey"

	// CodeMissingSeed: a ser/de/serde spec without seed(...).
	CodeMissingSeed = "MissingSeed"

	// CodeDuplicateSeed: two specs of one direction share a seed type.
	CodeDuplicateSeed = "DuplicateSeed"

	// CodeUnsupportedUnionType: a type-set or generic interface.
	CodeUnsupportedUnionType = "UnsupportedUnionType"

	// CodeEmptyUnion: a union interface no type in its package implements.
	CodeEmptyUnion = "EmptyUnion"

	// CodeUnsupportedShape: a declaration that maps onto no shape.
	CodeUnsupportedShape = "UnsupportedShape"

	CodeTransparentOnEnum     = "TransparentOnEnum"
	CodeTransparentOnUnit     = "TransparentOnUnit"
	CodeTransparentFieldCount = "TransparentFieldCount"

	// CodeExtraParamsSpec notes a spec reachable only through its typed
	// entry point because it declares params(...).
	CodeExtraParamsSpec = "ExtraParamsSpec"

	// CodeDuplicateParam: params(...) redeclares a type parameter.
	CodeDuplicateParam = "DuplicateParam"

	// CodeIgnoredAttribute: an option that has no effect where it is used.
	CodeIgnoredAttribute = "IgnoredAttribute"

	// CodeUncheckedBound: a bound whose constraint is not a basic
	// interface and so cannot be verified by the generated code.
	CodeUncheckedBound = "UncheckedBound"

	// CodeUnknownOverride: the overrides file names a type or field the
	// package does not declare.
	CodeUnknownOverride = "UnknownOverride"
)
