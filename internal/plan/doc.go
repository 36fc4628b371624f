// Package plan turns analyzed declarations into a generation plan.
//
// Resolution pipeline:
//  1. Parse the directives of every declaration, then the overrides
//  2. Keep the declarations with at least one ser/de spec
//  3. Normalize fields into a Shape (unit, positional or named)
//  4. Validate the combination of shape and options
//  5. Name each spec and synthesize its bounds
//
// Problems are collected as diagnostics; a plan with error diagnostics must
// not be generated.
package plan
