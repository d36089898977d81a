// Tutorsync - offline-tolerant sync client for ThinkFirst tutoring.
//
// Caches chat and quiz activity locally and reconciles queued work with
// the backend when connectivity allows.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thinkfirst/tutorsync/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
