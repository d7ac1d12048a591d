package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rom.mcs")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunReport(t *testing.T) {
	p := writeInput(t, ":0300300002337A1E\n:00000001FF\n")

	code, stdout, stderr := runCLI(t, "", p)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stderr)
	assert.Equal(t,
		"* Element is 3 bytes\n"+
			"* Found an Input Data Record\n"+
			"* Destination Offset 0x0030 (absolute 0x00000030)\n"+
			"* Checksum Valid\n"+
			"* Element is 0 bytes\n"+
			"* Found an End of File Record\n"+
			"* Checksum Valid\n"+
			"\n2 records, 3 data bytes, 0 diagnostics\n",
		stdout)
}

func TestRunAddressRecords(t *testing.T) {
	p := writeInput(t, ":020000021000EC\n:020000040800F2\n:01001000559A\n:00000001FF\n")

	code, stdout, _ := runCLI(t, "", p)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "* Segment Address = 0x1000 (base 0x00010000)\n")
	assert.Contains(t, stdout, "* Base Address = 0x0800 (base 0x08000000)\n")
	assert.Contains(t, stdout, "* Destination Offset 0x0010 (absolute 0x08000010)\n")
}

func TestRunDiagnostics(t *testing.T) {
	p := writeInput(t, ":0300300002337A1F\n:0100000955A1\n:00000001FF00\n")

	code, stdout, stderr := runCLI(t, "", p)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "! Invalid Checksum (1E != 1F)\n")
	assert.Contains(t, stdout, "! Unknown Record Type Found 9\n")
	assert.Contains(t, stdout, "! trailing data: 2 characters after checksum\n")
	assert.Contains(t, stdout, "3 records, 3 data bytes, 3 diagnostics\n")
	assert.Contains(t, stderr, "record diagnostic")
}

func TestRunStdin(t *testing.T) {
	code, stdout, _ := runCLI(t, ":00000001FF\n", "-")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "* Found an End of File Record\n")
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "two files", args: []string{"a.mcs", "b.mcs"}},
		{name: "unknown flag", args: []string{"-nope", "a.mcs"}},
		{name: "pad out of range", args: []string{"-pad", "256", "a.mcs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "", tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Empty(t, stdout)
			assert.NotEmpty(t, stderr)
		})
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		args   []string
		image  bool
		errMsg string
	}{
		{
			name:   "missing end of file",
			input:  ":0300300002337A1E\n",
			errMsg: "line 1: missing end of file record",
		},
		{
			name:   "truncated payload",
			input:  ":0300300002337A1E\n:05000000010203\n",
			errMsg: "line 2: truncated payload",
		},
		{
			name:   "strict checksum",
			input:  ":0300300002337A1F\n:00000001FF\n",
			args:   []string{"-strict"},
			errMsg: "line 1: strict mode: checksum invalid",
		},
		{
			name:   "overlapping image data",
			input:  ":01001000559A\n:01001000559A\n:00000001FF\n",
			image:  true,
			errMsg: "line 2: data segments overlap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeInput(t, tt.input)
			args := append([]string{}, tt.args...)
			if tt.image {
				args = append(args, "-image", filepath.Join(t.TempDir(), "rom.bin"))
			}
			args = append(args, p)

			code, _, stderr := runCLI(t, "", args...)
			assert.Equal(t, exitFailure, code)
			assert.Contains(t, stderr, tt.errMsg)
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	code, stdout, stderr := runCLI(t, "", filepath.Join(t.TempDir(), "missing.mcs"))
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "missing.mcs")
}

func TestRunImage(t *testing.T) {
	input := ":0300300002337A1E\n" +
		":010034005576\n" +
		":00000001FF\n"

	tests := []struct {
		name string
		pad  string
		want []byte
	}{
		{name: "default padding", want: []byte{0x02, 0x33, 0x7A, 0xFF, 0x55}},
		{name: "zero padding", pad: "0x00", want: []byte{0x02, 0x33, 0x7A, 0x00, 0x55}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeInput(t, input)
			out := filepath.Join(t.TempDir(), "rom.bin")

			args := []string{"-image", out}
			if tt.pad != "" {
				args = append(args, "-pad", tt.pad)
			}
			args = append(args, p)

			code, _, stderr := runCLI(t, "", args...)
			require.Equal(t, exitOK, code, stderr)

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunImageWithoutData(t *testing.T) {
	p := writeInput(t, ":00000001FF\n")
	out := filepath.Join(t.TempDir(), "rom.bin")

	code, _, stderr := runCLI(t, "", "-image", out, p)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "no data records")
}

func TestRunVerboseJSON(t *testing.T) {
	p := writeInput(t, ":00000001FF\n")

	code, _, stderr := runCLI(t, "", "-v", "-json", p)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, `"msg":"end of file"`)
	assert.Contains(t, stderr, `"level":"DEBUG"`)
}
