package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash restores the terminal, prints the panic and its stack trace to stderr, and exits
// who names the crashed component in the banner; a nil r is ignored
func HandleCrash(who string, r any) {
	if r == nil {
		return
	}

	EmergencyReset(os.Stdout)
	_ = os.Stderr.Sync()

	// \r\n in case raw mode survived the reset
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", who, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	_ = os.Stderr.Sync()

	os.Exit(1)
}
