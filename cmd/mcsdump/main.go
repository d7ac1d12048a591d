// Command mcsdump prints every record of an Intel HEX (MCS-86) file.
//
// Usage:
//
//	mcsdump [flags] <file.mcs | - | s3://bucket/key>
//
// Exit status is 0 on success, 1 when the input cannot be read or parsed,
// and 2 on a usage error.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/moffa90/go-mcs/mcs"
	"github.com/moffa90/go-mcs/memory"
	"github.com/moffa90/go-mcs/record"
	"github.com/moffa90/go-mcs/source"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// maxImageSize bounds the flattened image written by -image.
const maxImageSize = 256 << 20

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mcsdump", flag.ContinueOnError)
	fs.SetOutput(stderr)

	strict := fs.Bool("strict", false, "fail on checksum mismatches and unknown record types")
	verbose := fs.Bool("v", false, "log every decoded record")
	jsonLogs := fs.Bool("json", false, "write logs as JSON")
	imagePath := fs.String("image", "", "write the flattened memory image to `file`")
	pad := fs.Uint("pad", 0xFF, "padding byte for gaps in the -image output")
	endpoint := fs.String("s3-endpoint", "", "S3 endpoint for s3:// inputs (default $"+source.EnvS3Endpoint+")")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mcsdump [flags] <file.mcs>\n\n")
		fmt.Fprintf(stderr, "Must hand an MCS file as an argument.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	if *pad > 0xFF {
		fmt.Fprintf(stderr, "mcsdump: -pad must be a byte value, got %d\n", *pad)
		return exitUsage
	}

	logger := newLogger(stderr, *verbose, *jsonLogs)
	location := fs.Arg(0)

	rc, err := source.Open(ctx, location, source.WithStdin(stdin), source.WithEndpoint(*endpoint))
	if err != nil {
		logger.Error("open input failed", "location", location, "error", err)
		fmt.Fprintf(stderr, "mcsdump: %v\n", err)
		return exitFailure
	}
	defer func() { _ = rc.Close() }()

	var img *memory.Image
	if *imagePath != "" {
		img = memory.New()
	}

	out := bufio.NewWriter(stdout)
	rep := newReporter(out)

	s := mcs.NewScanner(rc, mcs.WithLogger(logger), mcs.WithStrict(*strict))
	for s.Scan() {
		e := s.Entry()
		rep.entry(e)

		if d, ok := e.Record.(*record.Data); ok && img != nil {
			if err := img.Add(e.Address, d.Bytes); err != nil {
				_ = out.Flush()
				fmt.Fprintf(stderr, "mcsdump: line %d: %v\n", e.Line, err)
				return exitFailure
			}
		}
	}
	if err := s.Err(); err != nil {
		_ = out.Flush()
		fmt.Fprintf(stderr, "mcsdump: %s: %v\n", location, err)
		return exitFailure
	}

	rep.summary()
	if err := out.Flush(); err != nil {
		fmt.Fprintf(stderr, "mcsdump: write output: %v\n", err)
		return exitFailure
	}

	if img != nil {
		if err := writeImage(*imagePath, img, byte(*pad)); err != nil {
			fmt.Fprintf(stderr, "mcsdump: %v\n", err)
			return exitFailure
		}
		logger.Info("image written", "path", *imagePath, "bytes", img.Len())
	}

	return exitOK
}

// newLogger builds the slog logger used for diagnostics on stderr.
// Only warnings and errors are shown unless verbose is set.
func newLogger(w io.Writer, verbose, asJSON bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// writeImage flattens img from its lowest to its highest populated address.
func writeImage(path string, img *memory.Image, pad byte) error {
	lo, hi, ok := img.Bounds()
	if !ok {
		return errors.New("no data records to write")
	}

	size := uint64(hi) - uint64(lo) + 1
	if size > maxImageSize {
		return fmt.Errorf("image spans %d bytes (0x%08X-0x%08X), limit is %d", size, lo, hi, maxImageSize)
	}

	if err := os.WriteFile(path, img.ToBinary(lo, uint32(size), pad), 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
