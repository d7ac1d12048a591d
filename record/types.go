package record

import "fmt"

// Type is the record type tag found in the header.
type Type uint8

// String returns the human-readable name of the record type.
func (t Type) String() string {
	switch t {
	case TypeData:
		return "Data"
	case TypeEndOfFile:
		return "End of File"
	case TypeExtendedSegmentAddress:
		return "Extended Segment Address"
	case TypeStartSegmentAddress:
		return "Start Segment Address"
	case TypeExtendedLinearAddress:
		return "Extended Linear Address"
	case TypeStartLinearAddress:
		return "Start Linear Address"
	default:
		return fmt.Sprintf("Unknown (0x%02X)", uint8(t))
	}
}

// Known reports whether records of this type are decoded into a dedicated variant.
func (t Type) Known() bool {
	switch t {
	case TypeData, TypeEndOfFile, TypeExtendedSegmentAddress, TypeExtendedLinearAddress:
		return true
	}
	return false
}

// Header holds the fixed fields present in every record.
type Header struct {
	// ByteCount is the declared payload length in bytes
	ByteCount uint8

	// Address is the record-local 16-bit offset (big-endian on the wire)
	Address uint16

	// Type selects the payload variant
	Type Type
}

// Bytes returns the header as it is encoded on the wire.
func (h Header) Bytes() [HeaderSize]byte {
	return [HeaderSize]byte{h.ByteCount, byte(h.Address >> 8), byte(h.Address), byte(h.Type)}
}

// Checksum pairs the checksum read from the line with the one computed from its bytes.
type Checksum struct {
	// Stored is the checksum byte read from the line
	Stored byte

	// Computed is the 2's complement sum of the header and payload bytes
	Computed byte

	// Present is false when no checksum byte could be located,
	// which only happens for unrecognized records with inconsistent lengths
	Present bool
}

// Valid reports whether the stored checksum matches the computed one.
func (c Checksum) Valid() bool {
	return c.Present && c.Stored == c.Computed
}

func (c Checksum) String() string {
	if !c.Present {
		return "Absent"
	}
	if c.Valid() {
		return "Valid"
	}
	return fmt.Sprintf("Invalid (%02X != %02X)", c.Computed, c.Stored)
}

// Record is a single decoded line.
//
// The concrete type is one of *Data, *EndOfFile, *ExtendedSegmentAddress,
// *ExtendedLinearAddress or *Unrecognized. The set is closed: only this
// package can add variants.
type Record interface {
	// Header returns the fixed header fields
	Header() Header

	// Checksum returns the stored and computed checksums
	Checksum() Checksum

	// Diagnostics returns the non-fatal problems found while decoding
	Diagnostics() []Diagnostic

	// Line returns the decoded line with trailing whitespace removed
	Line() string

	isRecord()
}

// AddressBase is implemented by records that change the base address
// applied to subsequent data records.
type AddressBase interface {
	Record

	// Base returns the absolute base address the record selects
	Base() uint32
}

type envelope struct {
	header      Header
	checksum    Checksum
	diagnostics []Diagnostic
	line        string
}

func (e *envelope) Header() Header            { return e.header }
func (e *envelope) Checksum() Checksum        { return e.checksum }
func (e *envelope) Diagnostics() []Diagnostic { return e.diagnostics }
func (e *envelope) Line() string              { return e.line }
func (*envelope) isRecord()                   {}

func (e *envelope) addDiagnostic(kind DiagnosticKind, format string, args ...interface{}) {
	e.diagnostics = append(e.diagnostics, Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Data is a type 0x00 record.
type Data struct {
	envelope

	// Bytes holds exactly Header().ByteCount payload bytes
	Bytes []byte
}

// EndOfFile is a type 0x01 record. It must be the last record of a stream.
type EndOfFile struct {
	envelope
}

// ExtendedSegmentAddress is a type 0x02 record.
type ExtendedSegmentAddress struct {
	envelope

	// Segment is the 16-bit segment value
	Segment uint16
}

// Base returns Segment * 16.
func (r *ExtendedSegmentAddress) Base() uint32 {
	return uint32(r.Segment) << 4
}

// ExtendedLinearAddress is a type 0x04 record.
type ExtendedLinearAddress struct {
	envelope

	// Segment holds the upper 16 bits of the linear address
	Segment uint16
}

// Base returns Segment << 16.
func (r *ExtendedLinearAddress) Base() uint32 {
	return uint32(r.Segment) << 16
}

// Unrecognized is any record whose type has no dedicated variant,
// including the start address records 0x03 and 0x05.
type Unrecognized struct {
	envelope

	// Payload holds the declared payload bytes when the line length agrees
	// with the byte count, nil otherwise. Line() always has the verbatim text.
	Payload []byte
}

// HasDiagnostic reports whether r carries a diagnostic of the given kind.
func HasDiagnostic(r Record, kind DiagnosticKind) bool {
	for _, d := range r.Diagnostics() {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
