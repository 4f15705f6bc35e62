package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

// crashReset hands the terminal back before the trace is printed
var crashReset atomic.Pointer[func()]

// SetCrashReset installs the terminal restore hook, nil clears it
func SetCrashReset(fn func()) {
	if fn == nil {
		crashReset.Store(nil)
		return
	}
	crashReset.Store(&fn)
}

// HandleCrash restores the terminal, prints r with its stack and exits
// No-op for a nil recover value
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if reset := crashReset.Swap(nil); reset != nil {
		(*reset)()
	}

	// Raw mode may still be half-restored, so lines end in \r\n
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mbroadside crashed: %v\x1b[0m\r\n", r)
	for _, line := range strings.Split(strings.TrimRight(string(debug.Stack()), "\n"), "\n") {
		fmt.Fprintf(os.Stderr, "%s\r\n", line)
	}
	os.Exit(2)
}

// Go starts fn on a new goroutine that routes panics through HandleCrash
// Every background goroutine (asset workers) starts here so a crash never leaves the terminal raw
func Go(fn func()) {
	go func() {
		defer func() { HandleCrash(recover()) }()
		fn()
	}()
}
