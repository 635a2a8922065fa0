package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-tzformat/cmd/tzformat/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, os.Stdout, os.Stderr, os.Args[1:], app.Deps{})
	stop()
	if err != nil {
		os.Exit(1)
	}
}
