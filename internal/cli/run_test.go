package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticalc-travis/hue-lighting-toys/internal/coded"
	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
)

// stubFixture is an in-memory light for driving the run loop end to end.
type stubFixture struct {
	name  string
	onSet func()

	mu      sync.Mutex
	current lights.ColorValue
	sets    int
}

var _ lights.Fixture = (*stubFixture)(nil)

func (f *stubFixture) ID() string   { return f.name }
func (f *stubFixture) Name() string { return f.name }

func (f *stubFixture) Appearance(ctx context.Context) (lights.ColorValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *stubFixture) SetAppearance(ctx context.Context, color lights.ColorValue, transition lights.Deciseconds) error {
	f.mu.Lock()
	f.current = color
	f.sets++
	f.mu.Unlock()
	if f.onSet != nil {
		f.onSet()
	}
	return nil
}

func (f *stubFixture) appearance() lights.ColorValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

type stubService struct {
	fixtures []lights.Fixture
}

func (s *stubService) List(ctx context.Context, sel lights.Selector) ([]lights.Fixture, error) {
	return s.fixtures, nil
}

func stubApp(t *testing.T, fixtures []lights.Fixture, args ...string) *App {
	t.Helper()
	app := New("test")
	require.NoError(t, app.Parse(args))
	app.connect = func(ctx context.Context) (lights.Service, error) {
		return &stubService{fixtures: fixtures}, nil
	}
	return app
}

func TestRunFailsWithNoLights(t *testing.T) {
	app := stubApp(t, nil)

	err := app.Run(context.Background(), coded.NewLiteralSource([]coded.Digit{1}))
	require.Error(t, err)
	assert.True(t, coded.IsConfigError(err))
	assert.Equal(t, 2, ExitCode(err))
}

func TestRunTransmitsAndRestores(t *testing.T) {
	before := lights.HSB(1000, 100, 200)
	f := &stubFixture{name: "only", current: before}
	app := stubApp(t, []lights.Fixture{f}, "-t", "1", "-s", "-1")

	err := app.Run(context.Background(), coded.NewLiteralSource([]coded.Digit{4}))
	require.NoError(t, err)
	assert.Equal(t, before, f.appearance(), "the light comes back to its pre-transmission state")
	assert.Equal(t, 2, f.sets, "one digit flash plus the restore")
}

func TestRunLeavesLightsWithNoRestore(t *testing.T) {
	f := &stubFixture{name: "only", current: lights.HSB(1000, 100, 200)}
	app := stubApp(t, []lights.Fixture{f}, "-t", "1", "-nr")

	err := app.Run(context.Background(), coded.NewLiteralSource([]coded.Digit{4}))
	require.NoError(t, err)

	scheme, err := coded.SchemeByName(coded.DefaultScheme)
	require.NoError(t, err)
	assert.Equal(t, scheme.Digit(4), f.appearance())
}

func TestRunRestoresAfterCancelDuringHold(t *testing.T) {
	before := lights.HSB(1000, 100, 200)
	applied := make(chan struct{})
	var once sync.Once
	f := &stubFixture{name: "only", current: before, onSet: func() {
		once.Do(func() { close(applied) })
	}}
	// A long cycle time so cancellation lands inside the hold wait.
	app := stubApp(t, []lights.Fixture{f}, "-t", "600")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(ctx, coded.NewLiteralSource([]coded.Digit{4}))
	}()

	<-applied
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 130, ExitCode(err))
	case <-time.After(30 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	assert.Equal(t, before, f.appearance(), "interruption mid-hold must still restore the light")
}
