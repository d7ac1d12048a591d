package record

import (
	"encoding/hex"
	"strings"
)

// Decode parses a single record line.
//
// Line format:
//
//	:[ByteCount(1 byte)][Address(2 bytes)][Type(1 byte)][Payload(N bytes)][Checksum(1 byte)]
//
// All fields are hex-encoded (either case) and multi-byte fields are big-endian.
// Trailing spaces, tabs and carriage returns are ignored.
//
// Structural failures are returned as *DecodeError. A checksum mismatch is not
// an error: the record is returned with a ChecksumInvalid diagnostic.
//
// Example:
//
//	rec, err := record.Decode(":00000001FF")
//	// rec is *record.EndOfFile, rec.Checksum().Valid() == true
func Decode(line string) (Record, error) {
	line = strings.TrimRight(line, " \t\r\n")

	if line == "" || line[0] != StartCode {
		return nil, newDecodeError(MalformedHeader, 0, "line must start with '%c'", StartCode)
	}

	c := &cursor{s: line, pos: 1, read: make([]byte, 0, len(line)/2)}
	h, err := c.header()
	if err != nil {
		return nil, err
	}

	env := envelope{header: h, line: line}

	if !h.Type.Known() {
		env.addDiagnostic(UnknownRecordType, "unknown record type 0x%02X", uint8(h.Type))
		return decodeUnrecognized(c, env), nil
	}

	var rec Record
	switch h.Type {
	case TypeData:
		data, err := c.payload(int(h.ByteCount))
		if err != nil {
			return nil, err
		}
		if err := c.finish(&env); err != nil {
			return nil, err
		}
		rec = &Data{envelope: env, Bytes: data}

	case TypeEndOfFile:
		if h.ByteCount != 0 {
			env.addDiagnostic(UnexpectedLength, "end of file record declares %d bytes, expected 0", h.ByteCount)
			// The declared bytes are only consumed when they are on the line.
			if c.remaining() != 2*ChecksumSize {
				if _, err := c.payload(int(h.ByteCount)); err != nil {
					return nil, err
				}
			}
		}
		if err := c.finish(&env); err != nil {
			return nil, err
		}
		rec = &EndOfFile{envelope: env}

	case TypeExtendedSegmentAddress, TypeExtendedLinearAddress:
		if h.ByteCount != ExtendedAddressSize {
			env.addDiagnostic(UnexpectedLength, "%s record declares %d bytes, expected %d",
				h.Type, h.ByteCount, ExtendedAddressSize)
		}
		seg, err := c.payload(ExtendedAddressSize)
		if err != nil {
			return nil, err
		}
		if err := c.finish(&env); err != nil {
			return nil, err
		}
		segment := uint16(seg[0])<<8 | uint16(seg[1])
		if h.Type == TypeExtendedSegmentAddress {
			rec = &ExtendedSegmentAddress{envelope: env, Segment: segment}
		} else {
			rec = &ExtendedLinearAddress{envelope: env, Segment: segment}
		}
	}

	return rec, nil
}

// decodeUnrecognized consumes ByteCount payload bytes and a checksum when the
// line length agrees exactly with the header. Otherwise only the header and
// the verbatim line are kept.
func decodeUnrecognized(c *cursor, env envelope) *Unrecognized {
	n := int(env.header.ByteCount)
	if c.remaining() != 2*(n+ChecksumSize) {
		return &Unrecognized{envelope: env}
	}

	payload, err := c.payload(n)
	if err != nil {
		return &Unrecognized{envelope: env}
	}
	if err := c.checksum(&env); err != nil {
		return &Unrecognized{envelope: env}
	}
	return &Unrecognized{envelope: env, Payload: payload}
}

// cursor walks the hex digits of a line while keeping the bytes covered by the checksum.
type cursor struct {
	s    string
	pos  int
	read []byte
}

func (c *cursor) remaining() int {
	return len(c.s) - c.pos
}

// next decodes the next two hex digits. On failure bad is -1 when the line
// is too short, otherwise the offset of the first non-hex character.
func (c *cursor) next() (b byte, bad int, ok bool) {
	if c.remaining() < 2 {
		return 0, -1, false
	}
	var dst [1]byte
	if _, err := hex.Decode(dst[:], []byte(c.s[c.pos:c.pos+2])); err != nil {
		bad = c.pos
		if isHexDigit(c.s[c.pos]) {
			bad++
		}
		return 0, bad, false
	}
	c.pos += 2
	return dst[0], 0, true
}

func (c *cursor) header() (Header, error) {
	if c.remaining() < HeaderDigits {
		return Header{}, newDecodeError(MalformedHeader, len(c.s),
			"header needs %d hex digits, got %d", HeaderDigits, c.remaining())
	}

	var hb [HeaderSize]byte
	for i := range hb {
		b, bad, ok := c.next()
		if !ok {
			return Header{}, newDecodeError(MalformedHeader, bad,
				"invalid hex digit %q in header", c.s[bad])
		}
		hb[i] = b
		c.read = append(c.read, b)
	}

	return Header{
		ByteCount: hb[0],
		Address:   uint16(hb[1])<<8 | uint16(hb[2]),
		Type:      Type(hb[3]),
	}, nil
}

func (c *cursor) payload(n int) ([]byte, error) {
	data := make([]byte, n)
	for i := range data {
		b, bad, ok := c.next()
		if !ok {
			if bad < 0 {
				return nil, newDecodeError(TruncatedPayload, len(c.s),
					"got %d of %d payload bytes", i, n)
			}
			return nil, newDecodeError(MalformedPayload, bad,
				"invalid hex digit %q in payload byte %d", c.s[bad], i)
		}
		data[i] = b
		c.read = append(c.read, b)
	}
	return data, nil
}

func (c *cursor) checksum(env *envelope) error {
	b, bad, ok := c.next()
	if !ok {
		if bad < 0 {
			return newDecodeError(TruncatedPayload, len(c.s), "missing checksum byte")
		}
		return newDecodeError(MalformedPayload, bad, "invalid hex digit %q in checksum", c.s[bad])
	}

	env.checksum = Checksum{Stored: b, Computed: Sum(c.read...), Present: true}
	if !env.checksum.Valid() {
		env.addDiagnostic(ChecksumInvalid, "checksum invalid (%02X != %02X)", env.checksum.Computed, b)
	}
	return nil
}

// finish reads the checksum and flags anything left on the line.
func (c *cursor) finish(env *envelope) error {
	if err := c.checksum(env); err != nil {
		return err
	}
	if c.remaining() > 0 {
		env.addDiagnostic(TrailingData, "%d characters after checksum", c.remaining())
	}
	return nil
}

func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
