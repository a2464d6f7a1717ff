package hue

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/amimof/huego"
	"go.uber.org/zap"

	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
	"github.com/ticalc-travis/hue-lighting-toys/internal/logging"
)

var logger = logging.New("hue")

// deviceType is the application identifier sent when registering a new
// username with the bridge.
const deviceType = "hue-lighting-toys"

// commandTimeout bounds each REST call to the bridge. The huego HTTP client
// has no timeout of its own.
const commandTimeout = 5 * time.Second

type Config struct {
	Address  string
	Username string
}

// Bridge is a lights.Service backed by a Philips Hue bridge.
type Bridge struct {
	bridge *huego.Bridge
}

var _ lights.Service = (*Bridge)(nil)

// Connect locates the bridge and ensures a usable API username. With no
// address configured it falls back to N-UPnP discovery; with no username it
// attempts to register one, which only succeeds if the bridge's link button
// was pressed recently.
func Connect(ctx context.Context, cfg Config) (*Bridge, error) {
	var bridge *huego.Bridge
	if cfg.Address == "" {
		b, err := huego.DiscoverContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("hue bridge discovery failed: %w", err)
		}
		bridge = b
		logger.With(zap.String("address", b.Host)).Info("Discovered Hue bridge")
	} else {
		bridge = huego.New(cfg.Address, cfg.Username)
	}

	if cfg.Username == "" {
		user, err := bridge.CreateUserContext(ctx, deviceType)
		if err != nil {
			return nil, fmt.Errorf("hue bridge registration failed (press the bridge's link button and retry): %w", err)
		}
		logger.With(zap.String("username", user)).
			Info("Registered with Hue bridge; set HUE_USERNAME to reuse this registration")
		bridge = bridge.Login(user)
	} else {
		bridge = bridge.Login(cfg.Username)
	}

	return &Bridge{bridge: bridge}, nil
}

// List resolves the selector against the bridge's lights. The default
// selection is every light in ascending id order.
func (b *Bridge) List(ctx context.Context, sel lights.Selector) ([]lights.Fixture, error) {
	all, err := b.bridge.GetLightsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hue lights: %w", err)
	}

	if sel.Empty() {
		sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
		fixtures := make([]lights.Fixture, 0, len(all))
		for _, l := range all {
			fixtures = append(fixtures, &fixture{bridge: b.bridge, id: l.ID, name: l.Name})
		}
		return fixtures, nil
	}

	byID := make(map[int]huego.Light, len(all))
	byName := make(map[string]huego.Light, len(all))
	for _, l := range all {
		byID[l.ID] = l
		byName[l.Name] = l
	}

	fixtures := make([]lights.Fixture, 0, len(sel.IDs)+len(sel.Names))
	for _, id := range sel.IDs {
		l, ok := byID[id]
		if !ok {
			return nil, lights.SelectionErrorf("no such light: %d", id)
		}
		fixtures = append(fixtures, &fixture{bridge: b.bridge, id: l.ID, name: l.Name})
	}
	for _, name := range sel.Names {
		l, ok := byName[name]
		if !ok {
			return nil, lights.SelectionErrorf("no such light: %q", name)
		}
		fixtures = append(fixtures, &fixture{bridge: b.bridge, id: l.ID, name: l.Name})
	}
	return fixtures, nil
}

type fixture struct {
	bridge *huego.Bridge
	id     int
	name   string
}

func (f *fixture) ID() string   { return strconv.Itoa(f.id) }
func (f *fixture) Name() string { return f.name }

func (f *fixture) Appearance(ctx context.Context) (lights.ColorValue, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	l, err := f.bridge.GetLightContext(ctx, f.id)
	if err != nil {
		return lights.ColorValue{}, fmt.Errorf("reading state of light %d: %w", f.id, err)
	}
	st := l.State
	return lights.ColorValue{Hue: st.Hue, Sat: st.Sat, Bri: st.Bri, On: st.On}, nil
}

func (f *fixture) SetAppearance(ctx context.Context, color lights.ColorValue, transition lights.Deciseconds) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	// The bridge substitutes its 400ms default when transitiontime is absent,
	// and the client omits zero values from the request body, so the shortest
	// transition expressible through this backend is one decisecond.
	if transition < 1 {
		transition = 1
	}
	state := huego.State{On: color.On, TransitionTime: uint16(transition)}
	if color.On {
		state.Hue = color.Hue
		state.Sat = color.Sat
		state.Bri = color.Bri
	}

	logger.With(zap.String("light", f.name), zap.Any("color", color)).Debug("Setting Hue light state")
	if _, err := f.bridge.SetLightStateContext(ctx, f.id, state); err != nil {
		return fmt.Errorf("setting state of light %d: %w", f.id, err)
	}
	return nil
}
