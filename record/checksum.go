package record

// Sum computes the 8-bit record checksum of data.
// Uses basic summation with 2's complement, so that adding the result to
// the byte sum of data yields zero modulo 256.
func Sum(data ...byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	// Return 2's complement: invert and add 1
	return ^sum + 1
}

// ComputeChecksum returns the checksum of a record with the given header and payload.
//
// The checksum covers the wire encoding of the header (byte count, address
// high byte, address low byte, type) followed by every payload byte.
//
// Example:
//
//	cs := record.ComputeChecksum(record.Header{Type: record.TypeEndOfFile}, nil)
//	// cs == 0xFF
func ComputeChecksum(h Header, payload []byte) byte {
	hb := h.Bytes()
	return Sum(append(hb[:], payload...)...)
}
