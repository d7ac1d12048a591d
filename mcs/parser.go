package mcs

import (
	"context"
	"fmt"
	"io"

	"github.com/moffa90/go-mcs/record"
	"github.com/moffa90/go-mcs/source"
)

// DefaultEntryCapacity is the default initial capacity for the entries slice.
const DefaultEntryCapacity = 256

// File is a fully parsed MCS stream.
type File struct {
	// Entries holds every record in stream order
	Entries []Entry
}

// Data returns the data record entries in stream order.
func (f *File) Data() []Entry {
	var out []Entry
	for _, e := range f.Entries {
		if _, ok := e.Record.(*record.Data); ok {
			out = append(out, e)
		}
	}
	return out
}

// Complete reports whether the last entry is an End of File record.
func (f *File) Complete() bool {
	if len(f.Entries) == 0 {
		return false
	}
	_, ok := f.Entries[len(f.Entries)-1].Record.(*record.EndOfFile)
	return ok
}

// Diagnostics returns the number of diagnostics of each kind across all entries.
func (f *File) Diagnostics() map[record.DiagnosticKind]int {
	counts := make(map[record.DiagnosticKind]int)
	for _, e := range f.Entries {
		for _, d := range e.Record.Diagnostics() {
			counts[d.Kind]++
		}
	}
	return counts
}

// Parse parses the MCS file at location, which may be anything source.Open
// accepts. The input is always closed before Parse returns.
//
// Example:
//
//	f, err := mcs.Parse(ctx, "firmware.mcs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Data records: %d\n", len(f.Data()))
func Parse(ctx context.Context, location string, opts ...Option) (*File, error) {
	rc, err := source.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = rc.Close() }()

	return ParseReader(rc, opts...)
}

// ParseReader parses an MCS stream from any io.Reader.
//
// On failure the returned File still holds every record decoded before
// the failing line, so data ahead of a missing End of File record or a
// damaged line can be recovered.
//
// Example:
//
//	data := strings.NewReader(":0300300002337A1E\n:00000001FF\n")
//	f, err := mcs.ParseReader(data)
func ParseReader(r io.Reader, opts ...Option) (*File, error) {
	s := NewScanner(r, opts...)
	f := &File{Entries: make([]Entry, 0, DefaultEntryCapacity)}

	for s.Scan() {
		f.Entries = append(f.Entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return f, err
	}
	return f, nil
}
