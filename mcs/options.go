package mcs

import "github.com/moffa90/go-mcs/record"

// DefaultMaxLineLength bounds the line buffer when no option overrides it.
const DefaultMaxLineLength = 64 * 1024

// Config holds the stream driver configuration.
type Config struct {
	// Logger is used for logging decoded records and failures (optional)
	Logger Logger

	// Strict turns every record diagnostic into a stream failure
	Strict bool

	// MaxLineLength is the longest line accepted before the stream fails
	MaxLineLength int
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		MaxLineLength: DefaultMaxLineLength,
	}
}

// Option is a functional option for configuring the Scanner.
type Option func(*Config)

// WithLogger sets a logger for the stream driver.
//
// Example:
//
//	s := mcs.NewScanner(r, mcs.WithLogger(slog.Default()))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithStrict fails the stream on the first checksum mismatch, unknown
// record type, unexpected length or trailing data instead of reporting
// them as diagnostics.
//
// Example:
//
//	f, err := mcs.ParseReader(r, mcs.WithStrict(true))
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.Strict = strict
	}
}

// WithMaxLineLength sets the longest line accepted.
// Values below record.MaxLineLength are ignored.
func WithMaxLineLength(n int) Option {
	return func(c *Config) {
		if n >= record.MaxLineLength {
			c.MaxLineLength = n
		}
	}
}
