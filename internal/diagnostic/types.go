package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

const unknownStr = "unknown"

// Diagnostics holds everything reported while processing one package.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos locates the directive, tag, field or type at fault.
	Pos token.Position
	// Type names the declaration this relates to (if any).
	Type string
	// Field names the field or union arm this relates to (if any).
	Field string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return unknownStr
	}
}

// Add appends d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, pos token.Position, typ, field string) {
	d.Add(Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Type:     typ,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, pos token.Position, typ, field string) {
	d.Add(Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Type:     typ,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, pos token.Position, typ, field string) {
	d.Add(Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Pos:      pos,
		Type:     typ,
		Field:    field,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string such as
// "a.go:3:2: Struct.foo: [UnrecognizedKey] unknown field attribute `renam` (did you mean `rename`?)".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String()+":")
	}

	switch {
	case d.Type != "" && d.Field != "":
		prefix = append(prefix, d.Type+"."+d.Field+":")
	case d.Type != "":
		prefix = append(prefix, d.Type+":")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean `" + strings.Join(d.Suggestions, "`, `") + "`?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}
