// Command mtsmux converts one camcorder MTS/AVCHD clip into an MP4 that
// plays on iOS devices, falling back from a fast remux to a full re-encode.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cc := &commandContext{}
	err := newRootCommand(cc).ExecuteContext(ctx)
	cc.close()
	stop()

	if err != nil {
		var rep *reportedError
		if !errors.As(err, &rep) && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "mtsmux: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}
