// Command urlparse parses, normalizes and edits URLs following the WHATWG URL Standard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghettovoice/gourl/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
