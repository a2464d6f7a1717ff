package coded

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDigits(t *testing.T) {
	digits, err := ParseDigits("0942")
	require.NoError(t, err)
	assert.Equal(t, []Digit{0, 9, 4, 2}, digits)

	digits, err = ParseDigits("")
	require.NoError(t, err)
	assert.Empty(t, digits)

	_, err = ParseDigits("12a4")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestLiteralSource(t *testing.T) {
	src := NewLiteralSource([]Digit{4, 2})

	digits, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Digit{4, 2}, digits)

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, ErrDone)
}

func TestClockSource(t *testing.T) {
	tests := []struct {
		clock string
		want  []Digit
	}{
		{"15:04", []Digit{1, 5, 0, 4}},
		{"00:07", []Digit{0, 0, 0, 7}},
		{"23:59", []Digit{2, 3, 5, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			now, err := time.Parse("15:04", tt.clock)
			require.NoError(t, err)

			src := &ClockSource{now: func() time.Time { return now }}
			digits, err := src.Next(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, digits)
		})
	}
}

func TestStopwatchSource(t *testing.T) {
	start := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		elapsed  time.Duration
		want     []Digit
		progress string
	}{
		{"under a minute", 30 * time.Second, []Digit{0}, "\r0:00    "},
		{"minutes only", 5 * time.Minute, []Digit{5}, "\r0:05    "},
		{"first hour", 62 * time.Minute, []Digit{1, 0, 2}, "\r1:02    "},
		{"many hours", 11*time.Hour + 5*time.Minute, []Digit{1, 1, 0, 5}, "\r11:05    "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			src := &StopwatchSource{
				start: start,
				now:   func() time.Time { return start.Add(tt.elapsed) },
				out:   &out,
			}

			digits, err := src.Next(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, digits)
			assert.Equal(t, tt.progress, out.String())
		})
	}
}
