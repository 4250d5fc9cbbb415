package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shandysiswandi/authkit/internal/app"
	"github.com/shandysiswandi/authkit/internal/pkg/goerror"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, app.Options{Args: os.Args[1:]})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return goerror.ExitCode(err)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		application.Stop(ctx) // flush telemetry before exit
	}()

	return application.Run(ctx)
}
