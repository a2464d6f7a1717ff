package coded

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
	"github.com/ticalc-travis/hue-lighting-toys/internal/logging"
)

var logger = logging.New("coded")

// Transmitter executes transmission plans against an ordered set of lights
// with real-time pacing. It owns the lights for the duration of a run;
// nothing else may command them concurrently.
type Transmitter struct {
	fixtures []lights.Fixture
}

func NewTransmitter(fixtures []lights.Fixture) *Transmitter {
	return &Transmitter{fixtures: fixtures}
}

// Run executes the plan step by step: all of a step's assignments are
// dispatched concurrently and joined, then the step's hold elapses before
// the next step starts. A light that rejects its command is logged and does
// not abort the step or the plan. Cancellation is honored between steps and
// during holds; a step that has started dispatching is always issued as a
// unit.
func (t *Transmitter) Run(ctx context.Context, plan Plan) error {
	for _, step := range plan {
		if err := ctx.Err(); err != nil {
			return err
		}
		t.apply(ctx, step)
		if err := hold(ctx, step.Hold); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transmitter) apply(ctx context.Context, step Step) {
	// Dispatches are detached from cancellation so an interrupt arriving
	// mid-step cannot leave the step half-applied; each backend bounds its
	// own commands with a timeout.
	dispatchCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for idx, color := range step.Assignments {
		fixture := t.fixtures[idx]
		wg.Add(1)
		go func(fixture lights.Fixture, color lights.ColorValue) {
			defer wg.Done()
			if err := fixture.SetAppearance(dispatchCtx, color, 0); err != nil {
				logger.With(zap.String("light", fixture.Name()), zap.Error(err)).
					Error("Failed to set light color")
			}
		}(fixture, color)
	}
	wg.Wait()
}

func hold(ctx context.Context, d lights.Deciseconds) error {
	duration := d.Duration()
	if duration <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
