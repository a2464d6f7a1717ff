// codeddigits blinks out a series of digits encoded as light colors.
package main

import (
	"context"
	"fmt"
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
	app := cli.New("codeddigits")
	if err := app.Parse(args); err != nil {
		return cli.ExitCode(err)
	}

	if len(app.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument: the sequence of digits to flash")
		return 2
	}
	digits, err := coded.ParseDigits(app.Args()[0])
	if err != nil {
		cli.Fail(err)
		return cli.ExitCode(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, coded.NewLiteralSource(digits)); err != nil {
		cli.Fail(err)
		return cli.ExitCode(err)
	}
	return 0
}
