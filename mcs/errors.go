package mcs

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-mcs/record"
)

// ErrMissingEndOfFile is returned when the input ends before an End of File record.
var ErrMissingEndOfFile = errors.New("missing end of file record")

// StreamError reports the line at which a stream stopped.
type StreamError struct {
	// Line is the 1-based line number of the offending line
	Line int

	// Err is a *record.DecodeError, a *DiagnosticError, an I/O error
	// or ErrMissingEndOfFile
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// DiagnosticError is a record diagnostic promoted to a failure by WithStrict.
type DiagnosticError struct {
	Diagnostic record.Diagnostic
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("strict mode: %s", e.Diagnostic.Message)
}

// LineOf returns the line number carried by a *StreamError in err's chain,
// or 0 when there is none.
func LineOf(err error) int {
	var se *StreamError
	if errors.As(err, &se) {
		return se.Line
	}
	return 0
}
