package main

import (
	"fmt"
	"io"

	"github.com/moffa90/go-mcs/mcs"
	"github.com/moffa90/go-mcs/record"
)

// reporter prints a human-readable description of every entry.
type reporter struct {
	w           io.Writer
	records     int
	dataBytes   int
	diagnostics int
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w}
}

func (r *reporter) entry(e mcs.Entry) {
	rec := e.Record
	h := rec.Header()
	r.records++

	fmt.Fprintf(r.w, "* Element is %d bytes\n", h.ByteCount)

	switch v := rec.(type) {
	case *record.Data:
		r.dataBytes += len(v.Bytes)
		fmt.Fprintf(r.w, "* Found an Input Data Record\n")
		fmt.Fprintf(r.w, "* Destination Offset 0x%04X (absolute 0x%08X)\n", h.Address, e.Address)
	case *record.EndOfFile:
		fmt.Fprintf(r.w, "* Found an End of File Record\n")
	case *record.ExtendedSegmentAddress:
		fmt.Fprintf(r.w, "* Found an Extended Segment Address Record\n")
		fmt.Fprintf(r.w, "* Segment Address = 0x%04X (base 0x%08X)\n", v.Segment, v.Base())
	case *record.ExtendedLinearAddress:
		fmt.Fprintf(r.w, "* Found an Extended Linear Address Record\n")
		fmt.Fprintf(r.w, "* Base Address = 0x%04X (base 0x%08X)\n", v.Segment, v.Base())
	case *record.Unrecognized:
		fmt.Fprintf(r.w, "! Unknown Record Type Found %d\n", uint8(h.Type))
	}

	if cs := rec.Checksum(); cs.Present {
		if cs.Valid() {
			fmt.Fprintf(r.w, "* Checksum Valid\n")
		} else {
			fmt.Fprintf(r.w, "! Invalid Checksum (%02X != %02X)\n", cs.Computed, cs.Stored)
		}
	}

	for _, d := range rec.Diagnostics() {
		r.diagnostics++
		switch d.Kind {
		case record.ChecksumInvalid, record.UnknownRecordType:
			// already reported above
		default:
			fmt.Fprintf(r.w, "! %s: %s\n", d.Kind, d.Message)
		}
	}
}

func (r *reporter) summary() {
	fmt.Fprintf(r.w, "\n%d records, %d data bytes, %d diagnostics\n", r.records, r.dataBytes, r.diagnostics)
}
