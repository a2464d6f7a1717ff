// codedstopwatch blinks out color-coded digits representing elapsed time,
// repeating until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ticalc-travis/hue-lighting-toys/internal/cli"
	"github.com/ticalc-travis/hue-lighting-toys/internal/coded"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	app := cli.New("codedstopwatch")
	if err := app.Parse(args); err != nil {
		return cli.ExitCode(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, coded.NewStopwatchSource(os.Stdout)); err != nil {
		cli.Fail(err)
		return cli.ExitCode(err)
	}
	return 0
}
