package definition

import (
	"fmt"
	"strings"
)

// Error describes a static validation failure for a wrapper definition.
// Generation fails before any output is produced, mirroring a compile error
// rather than a runtime condition.
type Error struct {
	// Wrapper names the definition that failed, when known.
	Wrapper string
	// Field names the offending configuration entry (element, variant name,
	// derive, ...).
	Field string
	// Reason is a human readable explanation.
	Reason string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("definition: ")
	if e.Wrapper != "" {
		fmt.Fprintf(&b, "wrapper %q: ", e.Wrapper)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Reason)
	return b.String()
}

func newError(wrapper, field, format string, args ...any) *Error {
	return &Error{
		Wrapper: wrapper,
		Field:   field,
		Reason:  fmt.Sprintf(format, args...),
	}
}
