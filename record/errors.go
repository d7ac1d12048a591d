package record

import (
	"errors"
	"fmt"
)

// ErrorKind classifies structural decode failures.
type ErrorKind uint8

const (
	// MalformedHeader means the start code or one of the 8 header digits is missing or not hex
	MalformedHeader ErrorKind = iota + 1

	// TruncatedPayload means the line ends before the declared payload and checksum
	TruncatedPayload

	// MalformedPayload means a non-hex character appears inside the payload or checksum
	MalformedPayload
)

// Sentinel errors matched by DecodeError through errors.Is.
var (
	ErrMalformedHeader  = errors.New("malformed header")
	ErrTruncatedPayload = errors.New("truncated payload")
	ErrMalformedPayload = errors.New("malformed payload")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case MalformedHeader:
		return ErrMalformedHeader
	case TruncatedPayload:
		return ErrTruncatedPayload
	case MalformedPayload:
		return ErrMalformedPayload
	default:
		return nil
	}
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("decode error %d", uint8(k))
}

// DecodeError describes why a line could not be decoded.
// A DecodeError leaves the position of everything after it untrustworthy,
// so stream consumers treat it as fatal.
type DecodeError struct {
	// Kind classifies the failure
	Kind ErrorKind

	// Offset is the zero-based character offset in the line where decoding stopped
	Offset int

	// Reason is a human-readable explanation
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at column %d: %s", e.Kind, e.Offset+1, e.Reason)
}

// Unwrap returns the sentinel matching Kind.
func (e *DecodeError) Unwrap() error {
	return e.Kind.sentinel()
}

// IsDecodeError returns true if err is or wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

func newDecodeError(kind ErrorKind, offset int, format string, args ...interface{}) error {
	return &DecodeError{Kind: kind, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
