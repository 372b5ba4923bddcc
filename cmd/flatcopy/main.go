package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

var (
	version = "dev"
)

// Process exit codes.
const (
	exitOK       = 0
	exitAllFail  = 1
	exitFatal    = 2
	exitCanceled = 1
)

// Entry point for the application
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	cmd := app.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		return app.fail(err)
	}
	return app.exitCode
}
