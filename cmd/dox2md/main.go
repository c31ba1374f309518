package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/canton7/Dox2Word-sub000/internal/cli"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
