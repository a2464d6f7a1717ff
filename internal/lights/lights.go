package lights

import (
	"context"
	"time"
)

// Deciseconds is the duration unit used throughout: it is the native unit of
// the Hue API's transition times and of all hold/switch timing options.
type Deciseconds int

// SwitchDisabled is the sentinel switch-time value that suppresses switch
// steps entirely.
const SwitchDisabled Deciseconds = -1

func (d Deciseconds) Duration() time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(d) * 100 * time.Millisecond
}

// Fixture is a single controllable light. Implementations are expected to
// bound each call with their own per-command timeout.
type Fixture interface {
	ID() string
	Name() string
	Appearance(ctx context.Context) (ColorValue, error)
	SetAppearance(ctx context.Context, color ColorValue, transition Deciseconds) error
}

// Selector names the lights to use. Both lists empty means every light the
// backend knows about, in the backend's stable order. Explicit lists are
// authoritative for ordering: numbered lights first, then named ones, each in
// the order given.
type Selector struct {
	IDs   []int
	Names []string
}

func (s Selector) Empty() bool {
	return len(s.IDs) == 0 && len(s.Names) == 0
}

// Service resolves a selector against a connected lighting backend.
type Service interface {
	List(ctx context.Context, sel Selector) ([]Fixture, error)
}
