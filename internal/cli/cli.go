// Package cli carries the flag surface, bridge configuration, and run loop
// shared by the coded-digit front-ends. The front-ends differ only in the
// digit source they plug in.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"go.uber.org/zap"

	"github.com/ticalc-travis/hue-lighting-toys/internal/coded"
	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
	"github.com/ticalc-travis/hue-lighting-toys/internal/lights/hue"
	"github.com/ticalc-travis/hue-lighting-toys/internal/lights/lifx"
	"github.com/ticalc-travis/hue-lighting-toys/internal/logging"
)

var logger = logging.New("cli")

// releaseTimeout bounds state restoration after the run context is gone.
const releaseTimeout = 15 * time.Second

// BridgeConfig holds the connection parameters read from the environment.
// Flags override the address and username per invocation.
type BridgeConfig struct {
	Address   string `env:"HUE_BRIDGE"`
	Username  string `env:"HUE_USERNAME"`
	LightType string `env:"LIGHT_TYPE" envDefault:"HUE"`
}

// App ties a digit source to the transmission engine behind the shared flag
// surface.
type App struct {
	Flags Flags

	fs *flag.FlagSet

	// connect resolves the lighting backend; replaceable so the run loop
	// can be driven against in-memory lights.
	connect func(ctx context.Context) (lights.Service, error)
}

func New(name string) *App {
	a := &App{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	a.Flags.register(a.fs)
	a.connect = a.connectFromEnv
	return a
}

// Parse reads the command line. Bad flags are reported as configuration
// errors so the front-ends exit with a usage status; an explicit help
// request passes through and exits cleanly.
func (a *App) Parse(args []string) error {
	if err := a.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return coded.ConfigErrorf("%v", err)
	}
	return nil
}

// Args returns the positional arguments left after flag parsing.
func (a *App) Args() []string {
	return a.fs.Args()
}

// Run validates the configuration, connects to the lighting backend, and
// transmits every sequence the source yields. The lights' prior state is
// captured first and released exactly once on the way out, including when
// the context is canceled mid-plan.
func (a *App) Run(ctx context.Context, source coded.Source) error {
	if a.Flags.Verbose {
		logging.SetAllLevels(zap.DebugLevel)
	}

	opts, err := a.Flags.PlanOptions()
	if err != nil {
		return err
	}
	scheme, err := coded.SchemeByName(a.Flags.Scheme)
	if err != nil {
		return err
	}

	service, err := a.connect(ctx)
	if err != nil {
		return err
	}

	fixtures, err := service.List(ctx, a.Flags.Selector())
	if err != nil {
		return err
	}
	if len(fixtures) == 0 {
		return coded.ConfigErrorf("no lights available")
	}
	for _, f := range fixtures {
		logger.With(zap.String("id", f.ID()), zap.String("name", f.Name())).Debug("Using light")
	}

	guard, err := coded.Capture(ctx, fixtures)
	if err != nil {
		return err
	}
	defer func() {
		// Restoration must still run when ctx was canceled by an interrupt.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		if err := guard.Release(releaseCtx, a.Flags.ReleaseMode()); err != nil {
			logger.With(zap.Error(err)).Warn("Some lights were not restored")
		}
	}()

	transmitter := coded.NewTransmitter(fixtures)
	for {
		digits, err := source.Next(ctx)
		if errors.Is(err, coded.ErrDone) {
			return nil
		}
		if err != nil {
			return err
		}

		plan, err := coded.BuildPlan(digits, len(fixtures), scheme, opts)
		if err != nil {
			return err
		}
		if err := transmitter.Run(ctx, plan); err != nil {
			return err
		}
	}
}

func (a *App) connectFromEnv(ctx context.Context) (lights.Service, error) {
	cfg := BridgeConfig{}
	if err := env.Parse(&cfg); err != nil {
		return nil, coded.ConfigErrorf("parsing environment: %v", err)
	}
	if a.Flags.BridgeAddress != "" {
		cfg.Address = a.Flags.BridgeAddress
	}
	if a.Flags.BridgeUsername != "" {
		cfg.Username = a.Flags.BridgeUsername
	}

	switch strings.ToUpper(cfg.LightType) {
	case "HUE":
		return hue.Connect(ctx, hue.Config{Address: cfg.Address, Username: cfg.Username})
	case "LIFX":
		return lifx.Discover(ctx)
	default:
		return nil, coded.ConfigErrorf("unknown light type: %v", cfg.LightType)
	}
}

// ExitCode maps a run error onto the process exit status: 0 for success,
// 2 for configuration errors, 130 after an interrupt, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case isUsageError(err):
		return 2
	default:
		return 1
	}
}

// isUsageError covers everything the user typed wrong: engine configuration
// errors and light selections that match nothing.
func isUsageError(err error) bool {
	return coded.IsConfigError(err) || lights.IsSelectionError(err)
}

// Fail reports a fatal error the way the front-ends present it.
func Fail(err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if isUsageError(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	logger.With(zap.Error(err)).Error("Transmission failed")
}
