package coded

import (
	"context"
	"errors"
	"sync"

	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
)

// fakeFixture is an in-memory light that records every command it receives.
type fakeFixture struct {
	name    string
	failSet bool
	failGet bool
	onSet   func()

	mu      sync.Mutex
	current lights.ColorValue
	sets    []lights.ColorValue
}

var _ lights.Fixture = (*fakeFixture)(nil)

func (f *fakeFixture) ID() string   { return f.name }
func (f *fakeFixture) Name() string { return f.name }

func (f *fakeFixture) Appearance(ctx context.Context) (lights.ColorValue, error) {
	if f.failGet {
		return lights.ColorValue{}, errors.New("light unreachable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeFixture) SetAppearance(ctx context.Context, color lights.ColorValue, transition lights.Deciseconds) error {
	if f.failSet {
		return errors.New("light rejected command")
	}
	f.mu.Lock()
	f.current = color
	f.sets = append(f.sets, color)
	f.mu.Unlock()
	if f.onSet != nil {
		f.onSet()
	}
	return nil
}

func (f *fakeFixture) history() []lights.ColorValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]lights.ColorValue(nil), f.sets...)
}

func (f *fakeFixture) appearance() lights.ColorValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}
