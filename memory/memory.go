// Package memory folds the data records of an MCS stream into a memory image.
//
// Data records resolved to absolute addresses by package mcs are merged into
// contiguous segments. Writing the same address twice is an error, which
// catches images assembled from overlapping inputs.
//
// # Usage
//
//	f, err := mcs.Parse(ctx, "firmware.mcs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	img, err := memory.FromFile(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, seg := range img.Segments() {
//	    fmt.Printf("0x%08X: %d bytes\n", seg.Address, len(seg.Data))
//	}
//	rom := img.ToBinary(0, 0x10000, 0xFF)
package memory

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/moffa90/go-mcs/mcs"
	"github.com/moffa90/go-mcs/record"
)

// addressSpace is the size of the 32-bit address space.
const addressSpace = uint64(1) << 32

// ErrAddressOverflow is returned when data would extend past 0xFFFFFFFF.
var ErrAddressOverflow = errors.New("data extends past the 32-bit address space")

// OverlapError indicates that a write touches addresses already populated.
type OverlapError struct {
	// Address is the first address written twice
	Address uint32

	// Start and Length describe the rejected write
	Start  uint32
	Length int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("data segments overlap at 0x%08X (write of %d bytes at 0x%08X)",
		e.Address, e.Length, e.Start)
}

// Segment is a run of contiguous bytes.
type Segment struct {
	// Address is the absolute address of Data[0]
	Address uint32

	// Data holds the segment bytes
	Data []byte
}

// end returns the address one past the last byte.
func (s *Segment) end() uint64 {
	return uint64(s.Address) + uint64(len(s.Data))
}

// Image is a sparse 32-bit memory image.
type Image struct {
	segments []*Segment
	used     *roaring.Bitmap
}

// New returns an empty Image.
func New() *Image {
	return &Image{used: roaring.New()}
}

// Add writes data at addr, merging it with adjacent segments.
// The data is copied.
func (m *Image) Add(addr uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	end := uint64(addr) + uint64(len(data))
	if end > addressSpace {
		return fmt.Errorf("write of %d bytes at 0x%08X: %w", len(data), addr, ErrAddressOverflow)
	}

	span := roaring.New()
	span.AddRange(uint64(addr), end)
	if m.used.Intersects(span) {
		return &OverlapError{
			Address: roaring.And(m.used, span).Minimum(),
			Start:   addr,
			Length:  len(data),
		}
	}
	m.used.Or(span)

	var before, after *Segment
	afterIndex := -1
	for i, s := range m.segments {
		if s.end() == uint64(addr) {
			before = s
		}
		if uint64(s.Address) == end {
			after, afterIndex = s, i
		}
	}

	switch {
	case before != nil && after != nil:
		before.Data = append(before.Data, data...)
		before.Data = append(before.Data, after.Data...)
		m.segments = slices.Delete(m.segments, afterIndex, afterIndex+1)
	case before != nil:
		before.Data = append(before.Data, data...)
	case after != nil:
		merged := make([]byte, 0, len(data)+len(after.Data))
		merged = append(merged, data...)
		after.Data = append(merged, after.Data...)
		after.Address = addr
	default:
		m.segments = append(m.segments, &Segment{Address: addr, Data: slices.Clone(data)})
		slices.SortFunc(m.segments, func(a, b *Segment) int {
			switch {
			case a.Address < b.Address:
				return -1
			case a.Address > b.Address:
				return 1
			}
			return 0
		})
	}
	return nil
}

// Segments returns a copy of the segments ordered by address.
func (m *Image) Segments() []Segment {
	segs := make([]Segment, 0, len(m.segments))
	for _, s := range m.segments {
		segs = append(segs, Segment{Address: s.Address, Data: slices.Clone(s.Data)})
	}
	return segs
}

// Contains reports whether addr holds data.
func (m *Image) Contains(addr uint32) bool {
	return m.used.Contains(addr)
}

// Len returns the number of populated addresses.
func (m *Image) Len() uint64 {
	return m.used.GetCardinality()
}

// Bounds returns the lowest and highest populated addresses.
// ok is false for an empty image.
func (m *Image) Bounds() (lo, hi uint32, ok bool) {
	if m.used.IsEmpty() {
		return 0, 0, false
	}
	return m.used.Minimum(), m.used.Maximum(), true
}

// ToBinary returns size bytes starting at address, with gaps filled by padding.
func (m *Image) ToBinary(address uint32, size uint32, padding byte) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = padding
	}

	lo := uint64(address)
	hi := lo + uint64(size)
	for _, s := range m.segments {
		start := max(lo, uint64(s.Address))
		stop := min(hi, s.end())
		if start >= stop {
			continue
		}
		copy(data[start-lo:stop-lo], s.Data[start-uint64(s.Address):stop-uint64(s.Address)])
	}
	return data
}

// Load adds every data entry of seq to a new Image. It stops at the first
// stream error or write conflict and returns the image built so far.
//
// Example:
//
//	img, err := memory.Load(mcs.NewScanner(r).All())
func Load(seq iter.Seq2[mcs.Entry, error]) (*Image, error) {
	m := New()
	for e, err := range seq {
		if err != nil {
			return m, err
		}
		if err := m.addEntry(e); err != nil {
			return m, err
		}
	}
	return m, nil
}

// FromFile builds an Image from the data entries of a parsed file.
func FromFile(f *mcs.File) (*Image, error) {
	m := New()
	for _, e := range f.Entries {
		if err := m.addEntry(e); err != nil {
			return m, err
		}
	}
	return m, nil
}

func (m *Image) addEntry(e mcs.Entry) error {
	d, ok := e.Record.(*record.Data)
	if !ok {
		return nil
	}
	if err := m.Add(e.Address, d.Bytes); err != nil {
		return fmt.Errorf("line %d: %w", e.Line, err)
	}
	return nil
}
