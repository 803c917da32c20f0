package logging

import "github.com/datalake-metadata/dlmeta/pkg/dlmeta"

// Discard is the logger the engine and the metadata client fall back to
// when the caller does not supply one.
var Discard dlmeta.Logger = NullLogger{}

// NullLogger drops every message. The zero value is ready to use.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() NullLogger { return NullLogger{} }

func (NullLogger) Verbose(string, ...interface{}) {}

func (NullLogger) Info(string, ...interface{}) {}

func (NullLogger) Error(string, ...interface{}) {}
