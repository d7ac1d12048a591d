package record

// StartCode is the character that starts every record line.
const StartCode = ':'

// Record types understood by the decoder.
const (
	// TypeData carries payload bytes destined for the record address
	TypeData Type = 0x00

	// TypeEndOfFile terminates the stream
	TypeEndOfFile Type = 0x01

	// TypeExtendedSegmentAddress sets the base to segment * 16
	TypeExtendedSegmentAddress Type = 0x02

	// TypeStartSegmentAddress is named for reporting only; it decodes as Unrecognized
	TypeStartSegmentAddress Type = 0x03

	// TypeExtendedLinearAddress sets the base to segment << 16
	TypeExtendedLinearAddress Type = 0x04

	// TypeStartLinearAddress is named for reporting only; it decodes as Unrecognized
	TypeStartLinearAddress Type = 0x05
)

// Wire layout constants.
const (
	// HeaderSize is the number of header bytes (count, address hi, address lo, type)
	HeaderSize = 4

	// HeaderDigits is the number of hex digits making up the header
	HeaderDigits = 2 * HeaderSize

	// ChecksumSize is the size of the trailing checksum field
	ChecksumSize = 1

	// ExtendedAddressSize is the payload size of extended address records
	ExtendedAddressSize = 2

	// MaxByteCount is the largest payload a record can declare
	MaxByteCount = 0xFF

	// MaxLineLength is the longest well-formed record line in characters
	MaxLineLength = 1 + 2*(HeaderSize+MaxByteCount+ChecksumSize)
)
