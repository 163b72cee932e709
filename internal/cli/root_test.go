package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTraits(t *testing.T) {
	got, err := parseTraits("optimism=9, urgency=3 ,skepticism=0")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"optimism": 9, "urgency": 3, "skepticism": 0}, got)
}

func TestParseTraitsEmpty(t *testing.T) {
	got, err := parseTraits("  ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseTraitsInvalid(t *testing.T) {
	for _, spec := range []string{"optimism", "optimism=eleven", "optimism=11", "optimism=-1"} {
		_, err := parseTraits(spec)
		assert.Error(t, err, spec)
	}
}
