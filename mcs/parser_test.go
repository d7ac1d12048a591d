package mcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-mcs/record"
)

const sampleFile = ":020000040000FA\n" +
	":0300300002337A1E\n" +
	":0100000955A1\n" +
	":020000021000EC\n" +
	":01001000559A\n" +
	":00000001FF\n"

func TestParseReader(t *testing.T) {
	f, err := ParseReader(strings.NewReader(sampleFile))
	require.NoError(t, err)
	require.Len(t, f.Entries, 6)
	assert.True(t, f.Complete())

	data := f.Data()
	require.Len(t, data, 2)
	assert.Equal(t, uint32(0x00000030), data[0].Address)
	assert.Equal(t, uint32(0x00010010), data[1].Address)
	assert.Equal(t, []byte{0x55}, data[1].Record.(*record.Data).Bytes)

	assert.Equal(t, map[record.DiagnosticKind]int{record.UnknownRecordType: 1}, f.Diagnostics())
}

func TestParseReaderPartialResult(t *testing.T) {
	input := ":0300300002337A1E\n" +
		":01001000559A\n"

	f, err := ParseReader(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingEndOfFile))

	require.NotNil(t, f)
	assert.Len(t, f.Entries, 2)
	assert.False(t, f.Complete())
}

func TestParse(t *testing.T) {
	p := filepath.Join(t.TempDir(), "rom.mcs")
	require.NoError(t, os.WriteFile(p, []byte(sampleFile), 0o600))

	f, err := Parse(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, f.Entries, 6)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "missing.mcs"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to open input")
	assert.Equal(t, 0, LineOf(err))
}

func TestFileEmpty(t *testing.T) {
	f := &File{}
	assert.False(t, f.Complete())
	assert.Empty(t, f.Data())
	assert.Empty(t, f.Diagnostics())
}
