package coded

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeByNameUnknown(t *testing.T) {
	_, err := SchemeByName("strobe")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestSchemeNames(t *testing.T) {
	assert.Equal(t, []string{"bright", "dim"}, SchemeNames())
}

func TestSchemeDigitsAreOnAndBlankIsOff(t *testing.T) {
	for _, name := range SchemeNames() {
		t.Run(name, func(t *testing.T) {
			scheme, err := SchemeByName(name)
			require.NoError(t, err)

			for d := Digit(0); d <= 9; d++ {
				assert.True(t, scheme.Digit(d).On, "digit %d must light up", d)
			}
			assert.False(t, scheme.Blank().On)
		})
	}
}

func TestSchemeDigitsPairwiseDistinguishable(t *testing.T) {
	for _, name := range SchemeNames() {
		t.Run(name, func(t *testing.T) {
			scheme, err := SchemeByName(name)
			require.NoError(t, err)

			seen := make(map[string]Digit)
			for d := Digit(0); d <= 9; d++ {
				c := scheme.Digit(d)
				key := fmt.Sprintf("%d/%d/%d", c.Hue, c.Sat, c.Bri)
				if prev, dup := seen[key]; dup {
					t.Errorf("digits %d and %d share appearance %s", prev, d, key)
				}
				seen[key] = d
			}
		})
	}
}
