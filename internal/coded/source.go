package coded

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// ErrDone signals that a digit source has nothing further to transmit.
var ErrDone = errors.New("digit source exhausted")

// Source yields successive digit sequences to transmit. The front-ends
// differ only in how they produce digits; everything downstream is shared.
type Source interface {
	Next(ctx context.Context) ([]Digit, error)
}

// LiteralSource transmits a fixed digit sequence once.
type LiteralSource struct {
	digits []Digit
	done   bool
}

func NewLiteralSource(digits []Digit) *LiteralSource {
	return &LiteralSource{digits: digits}
}

func (s *LiteralSource) Next(ctx context.Context) ([]Digit, error) {
	if s.done {
		return nil, ErrDone
	}
	s.done = true
	return s.digits, nil
}

// ClockSource yields the current wall-clock time as four HHMM digits,
// indefinitely.
type ClockSource struct {
	now func() time.Time
}

func NewClockSource() *ClockSource {
	return &ClockSource{now: time.Now}
}

func (s *ClockSource) Next(ctx context.Context) ([]Digit, error) {
	return ParseDigits(s.now().Format("1504"))
}

// StopwatchSource yields the time elapsed since its creation, indefinitely:
// hours followed by two-digit minutes once an hour has passed, bare minutes
// before that. Each reading also writes an H:MM progress line to out.
type StopwatchSource struct {
	start time.Time
	now   func() time.Time
	out   io.Writer
}

func NewStopwatchSource(out io.Writer) *StopwatchSource {
	return &StopwatchSource{start: time.Now(), now: time.Now, out: out}
}

func (s *StopwatchSource) Next(ctx context.Context) ([]Digit, error) {
	elapsed := int(s.now().Sub(s.start) / time.Second)
	hrs, mins := elapsed/3600, (elapsed/60)%60

	var digits string
	if hrs > 0 {
		digits = fmt.Sprintf("%d%02d", hrs, mins)
	} else {
		digits = strconv.Itoa(mins)
	}

	if s.out != nil {
		fmt.Fprintf(s.out, "\r%d:%02d    ", hrs, mins)
	}
	return ParseDigits(digits)
}
