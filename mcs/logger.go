package mcs

// Logger is an optional logging interface that can be provided to the Scanner.
// *slog.Logger satisfies it directly.
//
// Example with log/slog:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	s := mcs.NewScanner(r, mcs.WithLogger(logger))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning message with optional key-value pairs
	Warn(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...any)
}
