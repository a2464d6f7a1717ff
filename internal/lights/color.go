package lights

// ColorValue is a fixture's commanded appearance in the Hue API's native
// hue/saturation/brightness ranges. On=false means the light is off and the
// other fields are ignored.
type ColorValue struct {
	Hue uint16 // 0-65535
	Sat uint8  // 0-254
	Bri uint8  // 1-254
	On  bool
}

// Off is the appearance of a light that is switched off.
func Off() ColorValue {
	return ColorValue{On: false}
}

// HSB builds an On appearance, clamping saturation and brightness into the
// ranges the bridge accepts.
func HSB(hue int, sat int, bri int) ColorValue {
	return ColorValue{
		Hue: uint16(clamp(hue, 0, 65535)),
		Sat: uint8(clamp(sat, 0, 254)),
		Bri: uint8(clamp(bri, 1, 254)),
		On:  true,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
