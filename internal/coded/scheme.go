package coded

import (
	"sort"
	"strings"

	"github.com/ticalc-travis/hue-lighting-toys/internal/lights"
)

// DefaultScheme is the scheme used when none is requested.
const DefaultScheme = "bright"

// Scheme maps each digit to the light appearance that encodes it, plus the
// blank appearance used for switch and pad steps. Within a scheme every
// digit is distinguishable from every other by hue, saturation, or
// brightness, and blank (light off) is distinguishable from all ten.
type Scheme struct {
	name   string
	digits [10]lights.ColorValue
	blank  lights.ColorValue
}

func (s *Scheme) Name() string { return s.name }

// Digit returns the appearance encoding d. Digits outside 0-9 cannot be
// constructed through ParseDigits; out-of-range values map to blank.
func (s *Scheme) Digit(d Digit) lights.ColorValue {
	if d > 9 {
		return s.blank
	}
	return s.digits[d]
}

func (s *Scheme) Blank() lights.ColorValue { return s.blank }

var schemes = map[string]*Scheme{
	"bright": {
		name: "bright",
		digits: [10]lights.ColorValue{
			lights.HSB(0, 0, 92), // neutral white
			lights.HSB(46014, 254, 64),
			lights.HSB(7500, 180, 64),
			lights.HSB(24155, 254, 128),
			lights.HSB(10434, 254, 192),
			lights.HSB(0, 254, 92),
			lights.HSB(3901, 254, 128),
			lights.HSB(48913, 218, 64),
			lights.HSB(39280, 236, 128),
			lights.HSB(58368, 254, 128),
		},
		blank: lights.Off(),
	},
	"dim": {
		name: "dim",
		digits: [10]lights.ColorValue{
			lights.HSB(0, 0, 1),
			lights.HSB(46014, 254, 1),
			lights.HSB(7500, 180, 1),
			lights.HSB(24155, 254, 1),
			lights.HSB(10434, 254, 32),
			lights.HSB(0, 254, 1),
			lights.HSB(3901, 254, 32),
			lights.HSB(48913, 218, 1),
			lights.HSB(39280, 236, 32),
			lights.HSB(58368, 254, 1),
		},
		blank: lights.Off(),
	},
}

// SchemeByName looks up a color scheme. An unknown name is a configuration
// error, never a silent fallback.
func SchemeByName(name string) (*Scheme, error) {
	s, ok := schemes[name]
	if !ok {
		return nil, ConfigErrorf("unknown color scheme %q (choose from: %s)",
			name, strings.Join(SchemeNames(), ", "))
	}
	return s, nil
}

// SchemeNames returns the available scheme names, sorted.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
