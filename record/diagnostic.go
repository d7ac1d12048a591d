package record

import "fmt"

// DiagnosticKind classifies non-fatal problems attached to a decoded record.
type DiagnosticKind uint8

const (
	// ChecksumInvalid means the stored checksum differs from the computed one
	ChecksumInvalid DiagnosticKind = iota + 1

	// UnknownRecordType means the type tag has no dedicated decoder
	UnknownRecordType

	// UnexpectedLength means the byte count disagrees with what the type requires
	// (0 for End of File, 2 for extended address records)
	UnexpectedLength

	// TrailingData means hex digits follow the checksum byte
	TrailingData
)

func (k DiagnosticKind) String() string {
	switch k {
	case ChecksumInvalid:
		return "checksum invalid"
	case UnknownRecordType:
		return "unknown record type"
	case UnexpectedLength:
		return "unexpected length"
	case TrailingData:
		return "trailing data"
	default:
		return fmt.Sprintf("diagnostic %d", uint8(k))
	}
}

// Diagnostic is a data-integrity or semantic warning. It never stops decoding.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return d.Message
}
