// Package logging provides concrete implementations of the dlmeta.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes formatted messages to stderr (or any io.Writer)
//   - NullLogger: discards all messages, the library default
//   - Recorder: keeps messages in memory for assertions in tests
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
