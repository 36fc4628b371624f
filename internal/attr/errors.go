package attr

import (
	"fmt"
	"go/token"
)

// Error is a malformed directive or tag. Code is one of the diagnostic codes
// ExpectedAttributeList, AttributeParseError or UnrecognizedKey.
type Error struct {
	Code       string
	Pos        token.Position
	Msg        string
	Suggestion string
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean `%s`?)", e.Suggestion)
	}

	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + msg
	}

	return msg
}
