// Package mcs drives the record decoder across a whole Intel HEX (MCS-86) stream.
//
// # Addressing
//
// Data records carry a 16-bit offset. The absolute address of a data record
// is the current base plus that offset, where the base starts at zero and is
// replaced by every address record:
//
//	:020000021000EC   Extended Segment Address, base = 0x1000 * 16 = 0x00010000
//	:020000040800F2   Extended Linear Address,  base = 0x0800 << 16 = 0x08000000
//
// # Usage
//
// Pull records one at a time with a Scanner:
//
//	s := mcs.NewScanner(r)
//	for s.Scan() {
//	    e := s.Entry()
//	    if d, ok := e.Record.(*record.Data); ok {
//	        fmt.Printf("line %d: %d bytes at 0x%08X\n", e.Line, len(d.Bytes), e.Address)
//	    }
//	}
//	if err := s.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Or range over the same sequence:
//
//	for e, err := range mcs.NewScanner(r).All() {
//	    if err != nil {
//	        return err
//	    }
//	    // ...
//	}
//
// Parse a whole file into memory:
//
//	f, err := mcs.Parse(ctx, "firmware.mcs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Total records: %d\n", len(f.Entries))
//
// # Error Handling
//
// A line that fails to decode stops the stream with a *StreamError carrying
// the line number and the underlying *record.DecodeError. Reaching the end
// of input without an End of File record yields ErrMissingEndOfFile after
// the last valid record. Checksum mismatches and unknown record types are
// only diagnostics on the record, unless WithStrict is set.
package mcs
