package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/ticalc-travis/hue-lighting-toys/internal/coded"
	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
)

// splitList breaks a comma-separated flag value into trimmed items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}

// intList is a repeatable comma-separated flag of light numbers.
type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	for _, item := range splitList(s) {
		v, err := strconv.Atoi(item)
		if err != nil {
			return fmt.Errorf("invalid light number %q", item)
		}
		*l = append(*l, v)
	}
	return nil
}

// stringList is a repeatable comma-separated flag of light names.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(s string) error {
	*l = append(*l, splitList(s)...)
	return nil
}

// Flags is the option surface shared by all coded-digit front-ends.
type Flags struct {
	Verbose        bool
	BridgeAddress  string
	BridgeUsername string
	LightNumbers   intList
	LightNames     stringList
	CycleTime      int
	SwitchTime     int
	ForceSwitch    bool
	Pad            bool
	NoPad          bool
	Scheme         string
	NoRestore      bool
}

func (f *Flags) register(fs *flag.FlagSet) {
	fs.BoolVar(&f.Verbose, "v", false, "output extra info/debugging log messages")
	fs.StringVar(&f.BridgeAddress, "b", "", "Hue bridge IP or hostname (overrides HUE_BRIDGE)")
	fs.StringVar(&f.BridgeUsername, "bu", "", "Hue bridge username (overrides HUE_USERNAME)")
	fs.Var(&f.LightNumbers, "ln", "use light(s) with these comma-separated numbers, in order")
	fs.Var(&f.LightNames, "l",
		"use light(s) with these comma-separated names, in order (sequenced after any -ln lights)")
	fs.IntVar(&f.CycleTime, "t", 10, "deciseconds to display each digit flash")
	fs.IntVar(&f.SwitchTime, "s", 2,
		"deciseconds to blank all lights before each digit flash when there are more digits than lights (0 = as short as possible, -1 = disabled)")
	fs.BoolVar(&f.ForceSwitch, "fs", false,
		"always blank around the digit flashes, even when one flash fits all digits")
	fs.BoolVar(&f.Pad, "p", false, "always blank all lights when the sequence finishes")
	fs.BoolVar(&f.NoPad, "np", false, "never blank lights when the sequence finishes")
	fs.StringVar(&f.Scheme, "c", coded.DefaultScheme,
		fmt.Sprintf("color scheme to encode digits with (%s)", strings.Join(coded.SchemeNames(), ", ")))
	fs.BoolVar(&f.NoRestore, "nr", false, "do not restore lights to their previous state when finished")
}

// PlanOptions validates the timing and padding flags and converts them into
// engine options. Conflicting pad flags are a configuration error.
func (f *Flags) PlanOptions() (coded.PlanOptions, error) {
	pad := coded.PadAuto
	switch {
	case f.Pad && f.NoPad:
		return coded.PlanOptions{}, coded.ConfigErrorf("-p and -np are mutually exclusive")
	case f.Pad:
		pad = coded.PadAlways
	case f.NoPad:
		pad = coded.PadNever
	}

	if f.CycleTime <= 0 {
		return coded.PlanOptions{}, coded.ConfigErrorf("cycle time must be positive, got %d", f.CycleTime)
	}
	if f.SwitchTime < -1 {
		return coded.PlanOptions{}, coded.ConfigErrorf("switch time must be >= -1, got %d", f.SwitchTime)
	}

	return coded.PlanOptions{
		CycleTime:   lights.Deciseconds(f.CycleTime),
		SwitchTime:  lights.Deciseconds(f.SwitchTime),
		ForceSwitch: f.ForceSwitch,
		Pad:         pad,
	}, nil
}

// Selector returns the light selection the flags describe.
func (f *Flags) Selector() lights.Selector {
	return lights.Selector{IDs: f.LightNumbers, Names: f.LightNames}
}

// ReleaseMode returns the end-of-run policy the flags describe.
func (f *Flags) ReleaseMode() coded.ReleaseMode {
	if f.NoRestore {
		return coded.Leave
	}
	return coded.Restore
}
