package openhours

import (
	"fmt"
	"strings"
	"time"
)

// ErrorKind represents the type of error that occurred.
type ErrorKind string

const (
	ErrorKindMalformed ErrorKind = "malformed"
	ErrorKindNoFit     ErrorKind = "nofit"
)

// Sentinel errors for use with errors.Is.
var (
	ErrMalformedInput = &Error{Kind: ErrorKindMalformed, Message: "malformed input"}
	ErrNoFit          = &Error{Kind: ErrorKindNoFit, Message: "no open interval is long enough"}
)

// Span represents a range of byte positions in the cleaned input.
type Span struct {
	Start int
	End   int
}

// Error represents a failure to parse a schedule or to place an activity in it.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    *Span
	Input   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrNoFit) matches every no-fit failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// MalformedError creates a new parse error pointing at span within input.
func MalformedError(message string, span Span, input string) *Error {
	return &Error{
		Kind:    ErrorKindMalformed,
		Message: message,
		Span:    &span,
		Input:   input,
	}
}

// NoFitError creates the error returned by When when d fits nowhere.
func NoFitError(d time.Duration) *Error {
	return &Error{
		Kind:    ErrorKindNoFit,
		Message: fmt.Sprintf("no open interval can hold %s", d),
	}
}

// DisplayRich formats a rich error message with an underline below the
// offending token.
func (e *Error) DisplayRich() string {
	if e.Kind == ErrorKindMalformed && e.Span != nil && e.Input != "" {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("error: %s\n", e.Message))
		sb.WriteString(fmt.Sprintf("  %s\n", e.Input))

		padding := strings.Repeat(" ", e.Span.Start+2)
		underlineLen := e.Span.End - e.Span.Start
		if underlineLen < 1 {
			underlineLen = 1
		}
		sb.WriteString(padding)
		sb.WriteString(strings.Repeat("^", underlineLen))
		return sb.String()
	}

	return fmt.Sprintf("error: %s", e.Message)
}
