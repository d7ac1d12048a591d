package mcs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/moffa90/go-mcs/record"
)

// State is the position of a Scanner in its lifecycle.
type State uint8

const (
	// StateStart means no line has been read yet
	StateStart State = iota

	// StateStreaming means at least one line was read and the stream is still open
	StateStreaming

	// StateDone means an End of File record was yielded
	StateDone

	// StateFailed means the stream stopped with an error
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state %d", uint8(s))
	}
}

// Entry is one decoded record together with its position in the stream.
type Entry struct {
	// Line is the 1-based line number the record was read from
	Line int

	// Record is the decoded record
	Record record.Record

	// Base is the base address in effect when the record was read
	Base uint32

	// Address is the resolved absolute address: Base plus the header offset
	// for data records, the newly selected base for address records, and
	// zero for everything else
	Address uint32
}

// Scanner reads records from an input stream one line at a time.
//
// Scanner keeps the base address between records and stops at the End of
// File record, at the first structural error, or at the end of input.
// It is not safe for concurrent use.
type Scanner struct {
	lines *bufio.Scanner
	cfg   Config
	state State
	base  uint32
	line  int
	entry Entry
	err   error
}

// NewScanner returns a Scanner reading from r.
//
// Example:
//
//	s := mcs.NewScanner(os.Stdin, mcs.WithStrict(true))
func NewScanner(r io.Reader, opts ...Option) *Scanner {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, min(4096, cfg.MaxLineLength)), cfg.MaxLineLength)

	return &Scanner{
		lines: lines,
		cfg:   cfg,
	}
}

// Scan advances to the next record, which is then available through Entry.
// It returns false when the stream is done or failed; Err tells which.
func (s *Scanner) Scan() bool {
	if s.state == StateDone || s.state == StateFailed {
		return false
	}

	for s.lines.Scan() {
		s.line++
		s.state = StateStreaming

		text := strings.TrimRight(s.lines.Text(), " \t\r")
		if text == "" {
			continue
		}

		rec, err := record.Decode(text)
		if err != nil {
			return s.fail(err)
		}

		for _, d := range rec.Diagnostics() {
			if s.cfg.Strict {
				return s.fail(&DiagnosticError{Diagnostic: d})
			}
			s.logWarn("record diagnostic",
				"line", s.line,
				"kind", d.Kind.String(),
				"message", d.Message,
			)
		}

		s.entry = s.resolve(rec)

		s.logDebug("record",
			"line", s.line,
			"type", rec.Header().Type.String(),
			"length", rec.Header().ByteCount,
			"address", fmt.Sprintf("0x%08X", s.entry.Address),
		)
		return true
	}

	if err := s.lines.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			// the offending line was never returned, so it was not counted
			s.line++
		}
		return s.fail(fmt.Errorf("read input: %w", err))
	}
	return s.fail(ErrMissingEndOfFile)
}

// resolve applies rec to the addressing state and builds its Entry.
func (s *Scanner) resolve(rec record.Record) Entry {
	e := Entry{Line: s.line, Record: rec, Base: s.base}

	switch r := rec.(type) {
	case *record.Data:
		e.Address = s.base + uint32(r.Header().Address)
	case *record.ExtendedSegmentAddress, *record.ExtendedLinearAddress:
		s.base = r.(record.AddressBase).Base()
		e.Address = s.base
	case *record.EndOfFile:
		s.state = StateDone
		s.logInfo("end of file", "line", s.line)
	case *record.Unrecognized:
		// passed through; the base is unchanged
	}
	return e
}

func (s *Scanner) fail(err error) bool {
	s.state = StateFailed
	s.err = &StreamError{Line: s.line, Err: err}
	s.entry = Entry{}
	s.logError("stream failed", "line", s.line, "error", err)
	return false
}

// Entry returns the record produced by the last successful call to Scan.
func (s *Scanner) Entry() Entry {
	return s.entry
}

// Err returns the error that stopped the stream, or nil after an End of File record.
func (s *Scanner) Err() error {
	return s.err
}

// State returns the current lifecycle state.
func (s *Scanner) State() State {
	return s.state
}

// Base returns the base address that applies to the next data record.
func (s *Scanner) Base() uint32 {
	return s.base
}

// Line returns the number of lines read so far.
func (s *Scanner) Line() int {
	return s.line
}

// All returns the remaining records as a single-use sequence. A failure is
// yielded once, with a zero Entry, as the last element. Stopping the range
// early leaves the rest of the input unread.
//
// Example:
//
//	for e, err := range s.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(e.Line, e.Record.Header().Type)
//	}
func (s *Scanner) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for s.Scan() {
			if !yield(s.Entry(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(Entry{}, err)
		}
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Scanner) logDebug(msg string, keysAndValues ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Scanner) logInfo(msg string, keysAndValues ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info(msg, keysAndValues...)
	}
}

// logWarn logs a warning message if a logger is configured.
func (s *Scanner) logWarn(msg string, keysAndValues ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Warn(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Scanner) logError(msg string, keysAndValues ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Error(msg, keysAndValues...)
	}
}
