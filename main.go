package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/DevMountain/dmget/pkg/cli"
)

func main() {
	// Cancel on interrupt so an in-flight download unwinds through cleanup
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Run(ctx, os.Args)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
