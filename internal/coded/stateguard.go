package coded

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
)

// ReleaseMode selects what happens to the lights when a transmission ends.
type ReleaseMode int

const (
	// Restore puts every light back to its captured appearance.
	Restore ReleaseMode = iota
	// Leave keeps whatever the last step or pad left showing.
	Leave
)

// restoreTransition softens restoration instead of snapping, matching the
// bridge's customary default.
const restoreTransition lights.Deciseconds = 4

// StateGuard remembers each light's appearance from before a transmission
// so it can be put back afterward. Capture it before the first step runs and
// release it exactly once when the plan finishes or is interrupted.
type StateGuard struct {
	fixtures []lights.Fixture
	saved    []lights.ColorValue
	released bool
}

// Capture reads every light's current appearance. A light that cannot be
// read fails the capture; nothing has been commanded yet at that point.
func Capture(ctx context.Context, fixtures []lights.Fixture) (*StateGuard, error) {
	saved := make([]lights.ColorValue, len(fixtures))
	for i, fixture := range fixtures {
		color, err := fixture.Appearance(ctx)
		if err != nil {
			return nil, fmt.Errorf("capturing state of light %s: %w", fixture.Name(), err)
		}
		saved[i] = color
	}
	return &StateGuard{fixtures: fixtures, saved: saved}, nil
}

// Release applies the end-of-transmission policy. Only the first call has
// any effect. Under Restore, a light that fails to take its old state back
// is logged and does not stop restoration of the rest; the combined error is
// returned as a warning.
func (g *StateGuard) Release(ctx context.Context, mode ReleaseMode) error {
	if g.released {
		return nil
	}
	g.released = true

	if mode != Restore {
		return nil
	}

	var errs error
	for i, fixture := range g.fixtures {
		if err := fixture.SetAppearance(ctx, g.saved[i], restoreTransition); err != nil {
			logger.With(zap.String("light", fixture.Name()), zap.Error(err)).
				Warn("Failed to restore light state")
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
