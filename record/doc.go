// Package record decodes individual Intel HEX (MCS-86) records.
//
// # Record Format
//
// Every record is a single ASCII line made of hex digit pairs:
//
//	:[ByteCount(2)][Address(4)][Type(2)][Payload(2*ByteCount)][Checksum(2)]
//
// Example data record:
//
//	:0300300002337A1E
//	  03 = Byte Count (3 payload bytes)
//	  0030 = Address (big-endian)
//	  00 = Record Type (Data)
//	  02337A = Payload
//	  1E = Checksum (2's complement of the sum of all preceding bytes)
//
// Supported record types:
//
//	0x00  Data
//	0x01  End of File
//	0x02  Extended Segment Address (base = segment * 16)
//	0x04  Extended Linear Address  (base = segment << 16)
//
// Any other type decodes as *Unrecognized so that newer or vendor specific
// records do not stop extraction of the data around them.
//
// # Usage
//
//	rec, err := record.Decode(":0300300002337A1E")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	switch r := rec.(type) {
//	case *record.Data:
//	    fmt.Printf("%d bytes at 0x%04X\n", len(r.Bytes), r.Header().Address)
//	case *record.EndOfFile:
//	    fmt.Println("end of file")
//	}
//
// # Errors and Diagnostics
//
// Decode fails only on structural damage: a missing start code, a short or
// non-hex header, or a payload that ends before the declared byte count.
// Such failures are returned as *DecodeError and match ErrMalformedHeader,
// ErrTruncatedPayload or ErrMalformedPayload with errors.Is.
//
// Integrity problems do not fail decoding. A checksum mismatch, an unknown
// record type, an unexpected byte count or trailing digits are attached to
// the returned record as Diagnostics and the caller decides what to do.
package record
