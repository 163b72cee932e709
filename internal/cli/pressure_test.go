package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBurgo/omni/internal/audience"
)

func TestResolveScope(t *testing.T) {
	scope, err := resolveScope("first-n", "")
	require.NoError(t, err)
	assert.Equal(t, audience.ScopeFirstN, scope)

	scope, err = resolveScope("full", "")
	require.NoError(t, err)
	assert.Equal(t, audience.ScopeFullCapped, scope)

	scope, err = resolveScope("custom", "excerpt.txt")
	require.NoError(t, err)
	assert.Equal(t, audience.ScopeCustom, scope)
}

func TestResolveScopeCustomNeedsExcerpt(t *testing.T) {
	_, err := resolveScope("custom", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--excerpt")
}

func TestResolveScopeInvalid(t *testing.T) {
	_, err := resolveScope("most", "")
	assert.Error(t, err)
}
