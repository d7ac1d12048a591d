package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x00,
		},
		{
			name:     "single byte",
			data:     []byte{0x01},
			expected: 0xFF, // 2's complement of 0x01
		},
		{
			name:     "multiple bytes",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0xF6, // 2's complement of 0x0A
		},
		{
			name:     "all ones",
			data:     []byte{0xFF, 0xFF, 0xFF, 0xFF},
			expected: 0x04, // overflow and 2's complement
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sum(tt.data...))
		})
	}
}

func TestComputeChecksum(t *testing.T) {
	tests := []struct {
		name     string
		header   Header
		payload  []byte
		expected byte
	}{
		{
			name:     "end of file",
			header:   Header{Type: TypeEndOfFile},
			expected: 0xFF,
		},
		{
			name:     "data record",
			header:   Header{ByteCount: 3, Address: 0x0030, Type: TypeData},
			payload:  []byte{0x02, 0x33, 0x7A},
			expected: 0x1E,
		},
		{
			name:     "extended segment address",
			header:   Header{ByteCount: 2, Type: TypeExtendedSegmentAddress},
			payload:  []byte{0x10, 0x00},
			expected: 0xEC,
		},
		{
			name:     "address high byte counts",
			header:   Header{ByteCount: 0, Address: 0x0100, Type: TypeEndOfFile},
			expected: 0xFE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeChecksum(tt.header, tt.payload))
		})
	}
}

func TestChecksumString(t *testing.T) {
	assert.Equal(t, "Valid", Checksum{Stored: 0x1E, Computed: 0x1E, Present: true}.String())
	assert.Equal(t, "Invalid (1E != 1F)", Checksum{Stored: 0x1F, Computed: 0x1E, Present: true}.String())
	assert.Equal(t, "Absent", Checksum{}.String())
	assert.False(t, Checksum{}.Valid())
}
