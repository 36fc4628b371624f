// Package wire defines the data model shared by seeded codecs and the wire
// formats they drive.
//
// A format implements Encoder and Decoder. Values describe themselves to an
// Encoder as one of a small set of shapes (primitive, unit, newtype, tuple,
// struct, map, sequence, and the variant forms of the first four), and pull
// the same shapes back out of a Decoder. Formats decide the concrete
// representation: a self-describing format keys struct fields and variants by
// name, a compact one by numeric index.
//
// Identifiers (field keys and variant discriminants) are decoded through an
// IdentifierVisitor so that a single decoder accepts the numeric, text and
// raw-byte forms regardless of the format that produced them.
package wire
