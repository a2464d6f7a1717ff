package lifx

import (
	"context"
	"fmt"
	"math"
	"net"
	"sort"
	"time"

	"go.uber.org/zap"
	"go.yhsif.com/lifxlan"
	"go.yhsif.com/lifxlan/light"

	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
	"github.com/ticalc-travis/hue-lighting-toys/internal/logging"
)

var logger = logging.New("lifx")

const (
	discoverTimeout = 5 * time.Second
	commandTimeout  = time.Second
)

// Service is a lights.Service backed by LIFX lights on the local network,
// keyed by device label. LIFX devices have no numeric ids, so selection by
// number is rejected.
type Service struct {
	devices map[string]*lifxLight
}

var _ lights.Service = (*Service)(nil)

// lightDevice is the slice of the lifxlan light API the fixtures drive,
// narrowed from light.Device so a test double can stand in for hardware.
type lightDevice interface {
	GetColor(ctx context.Context, conn net.Conn) (*lifxlan.Color, error)
	SetColor(ctx context.Context, conn net.Conn, color *lifxlan.Color, transition time.Duration, ack bool) error
	GetPower(ctx context.Context, conn net.Conn) (lifxlan.Power, error)
	SetPower(ctx context.Context, conn net.Conn, power lifxlan.Power, ack bool) error
}

type lifxLight struct {
	device lightDevice
	conn   net.Conn
}

// Discover runs a single LAN discovery round and connects to every light
// that answers.
func Discover(ctx context.Context) (*Service, error) {
	s := &Service{devices: make(map[string]*lifxLight)}

	ctx, cancel := context.WithTimeout(ctx, discoverTimeout)
	defer cancel()

	logger.Info("LIFX discovery starting...")
	devices := make(chan lifxlan.Device)
	go func() {
		if err := lifxlan.Discover(ctx, devices, ""); err != nil {
			if err != context.DeadlineExceeded && ctx.Err() == nil {
				logger.With(zap.Error(err)).Error("Failed to discover LIFX devices")
			}
		}
	}()

	for device := range devices {
		wrapped, err := light.Wrap(ctx, device, false)
		if err != nil {
			logger.With(zap.Any("device", device), zap.Error(err)).Warn("Failed to wrap LIFX device as Light")
			continue
		}
		label := wrapped.Label().String()
		conn, err := wrapped.Dial()
		if err != nil {
			logger.With(zap.String("deviceName", label), zap.Error(err)).Error("Could not connect to LIFX light")
			continue
		}
		logger.With(zap.String("deviceName", label)).Info("Found LIFX light")
		s.devices[label] = &lifxLight{device: wrapped, conn: conn}
	}
	logger.Info("LIFX discovery complete")

	return s, nil
}

// Close disconnects from every discovered light.
func (s *Service) Close() {
	for _, d := range s.devices {
		if d.conn != nil {
			d.conn.Close()
			d.conn = nil
		}
	}
}

// List resolves the selector against the discovered lights. The default
// selection is every light in ascending label order.
func (s *Service) List(ctx context.Context, sel lights.Selector) ([]lights.Fixture, error) {
	if len(sel.IDs) > 0 {
		return nil, lights.SelectionErrorf("LIFX lights have no numeric ids; select them by name")
	}

	if sel.Empty() {
		labels := make([]string, 0, len(s.devices))
		for label := range s.devices {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		fixtures := make([]lights.Fixture, 0, len(labels))
		for _, label := range labels {
			fixtures = append(fixtures, &fixture{label: label, dev: s.devices[label]})
		}
		return fixtures, nil
	}

	fixtures := make([]lights.Fixture, 0, len(sel.Names))
	for _, name := range sel.Names {
		dev, ok := s.devices[name]
		if !ok {
			return nil, lights.SelectionErrorf("no such light: %q", name)
		}
		fixtures = append(fixtures, &fixture{label: name, dev: dev})
	}
	return fixtures, nil
}

type fixture struct {
	label string
	dev   *lifxLight
}

func (f *fixture) ID() string   { return f.label }
func (f *fixture) Name() string { return f.label }

func (f *fixture) Appearance(ctx context.Context) (lights.ColorValue, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	color, err := f.dev.device.GetColor(ctx, f.dev.conn)
	if err != nil {
		return lights.ColorValue{}, fmt.Errorf("reading color of light %q: %w", f.label, err)
	}
	power, err := f.dev.device.GetPower(ctx, f.dev.conn)
	if err != nil {
		return lights.ColorValue{}, fmt.Errorf("reading power of light %q: %w", f.label, err)
	}

	return lights.ColorValue{
		Hue: color.Hue,
		Sat: scaleTo254(color.Saturation),
		Bri: scaleTo254(color.Brightness),
		On:  power != lifxlan.PowerOff,
	}, nil
}

func (f *fixture) SetAppearance(ctx context.Context, color lights.ColorValue, transition lights.Deciseconds) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	logger.With(zap.String("deviceName", f.label), zap.Any("color", color)).Debug("Setting LIFX device color")

	if !color.On {
		// When the caller supplied a color along with off (a captured
		// appearance being restored), push it first so the device's stored
		// color survives an external power-on. Blank flashes carry none.
		if color.Bri > 0 {
			if err := f.dev.device.SetColor(ctx, f.dev.conn, toLifxColor(color), transition.Duration(), false); err != nil {
				return fmt.Errorf("setting color of light %q: %w", f.label, err)
			}
		}
		if err := f.dev.device.SetPower(ctx, f.dev.conn, lifxlan.PowerOff, false); err != nil {
			return fmt.Errorf("powering off light %q: %w", f.label, err)
		}
		return nil
	}

	if err := f.dev.device.SetColor(ctx, f.dev.conn, toLifxColor(color), transition.Duration(), false); err != nil {
		return fmt.Errorf("setting color of light %q: %w", f.label, err)
	}
	if err := f.dev.device.SetPower(ctx, f.dev.conn, lifxlan.PowerOn, false); err != nil {
		return fmt.Errorf("powering on light %q: %w", f.label, err)
	}
	return nil
}

func toLifxColor(color lights.ColorValue) *lifxlan.Color {
	return &lifxlan.Color{
		Hue:        color.Hue,
		Saturation: scaleTo16(color.Sat),
		Brightness: scaleTo16(color.Bri),
		Kelvin:     3500,
	}
}

func scaleTo16(v uint8) uint16 {
	return uint16(math.Round(float64(v) / 254 * 0xFFFF))
}

func scaleTo254(v uint16) uint8 {
	return uint8(math.Round(float64(v) / 0xFFFF * 254))
}
