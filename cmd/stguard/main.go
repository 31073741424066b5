package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/stguard/internal/cli"
	"github.com/vvka-141/stguard/pkg/stguard"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(stguard.ExitPanic)
		}
	}()

	if os.Getenv("STGUARD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(stguard.ExitCodeForError(err))
	}
}
