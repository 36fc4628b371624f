// Package diagnostic provides structured errors, warnings and notes raised
// while turning annotated declarations into seeded codecs.
//
// Every diagnostic carries a stable code (see codes.go), the source position
// of the offending directive, field or type, and optionally suggestions such
// as the closest known attribute key.
package diagnostic
