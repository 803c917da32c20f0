package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/datalake-metadata/dlmeta/internal/cli"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(dlmeta.ExitPanic)
		}
	}()

	if os.Getenv("DLMETA_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(dlmeta.ExitCodeForError(err))
	}
}
