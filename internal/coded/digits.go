// Package coded implements the digit-to-light transmission engine: color
// schemes that encode decimal digits as light appearances, a deterministic
// plan builder that batches a digit sequence across a fixed set of lights,
// a transmitter that executes plans with real-time pacing, and a state guard
// that puts the lights back afterward.
package coded

// Digit is a single decimal digit to transmit.
type Digit uint8

// ParseDigits converts a string of decimal digits into a sequence. An empty
// string is a valid empty sequence.
func ParseDigits(s string) ([]Digit, error) {
	digits := make([]Digit, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, ConfigErrorf("invalid digit %q in sequence %q", r, s)
		}
		digits = append(digits, Digit(r-'0'))
	}
	return digits, nil
}
