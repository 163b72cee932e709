package creative

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bandCfg = TraitConfig{
	"optimism": {
		HighRule: "Be very optimistic.",
		MidRule:  "Balance optimism with caution.",
		LowRule:  "Be cautious.",
	},
}

func TestTraitRulesBandBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{10, "Be very optimistic."},
		{8, "Be very optimistic."}, // high threshold is inclusive
		{7, "Balance optimism with caution."},
		{4, "Balance optimism with caution."},
		{3, "Be cautious."}, // low threshold is inclusive
		{0, "Be cautious."},
	}
	for _, tc := range cases {
		got := TraitRules(map[string]int{"optimism": tc.score}, bandCfg)
		require.Len(t, got, 1, "score %d", tc.score)
		assert.Equal(t, tc.want, got[0], "score %d", tc.score)
	}
}

func TestTraitRulesCustomThresholds(t *testing.T) {
	cfg := TraitConfig{
		"urgency": {HighThreshold: 6, LowThreshold: 2, HighRule: "H", MidRule: "M", LowRule: "L"},
	}
	assert.Equal(t, []string{"H"}, TraitRules(map[string]int{"urgency": 6}, cfg))
	assert.Equal(t, []string{"M"}, TraitRules(map[string]int{"urgency": 5}, cfg))
	assert.Equal(t, []string{"L"}, TraitRules(map[string]int{"urgency": 2}, cfg))
}

func TestTraitRulesSkipsAndOrders(t *testing.T) {
	cfg := TraitConfig{
		"b_trait": {HighRule: "B high"},
		"a_trait": {HighRule: "A high"},
	}
	got := TraitRules(map[string]int{"b_trait": 9, "a_trait": 9, "unknown": 9}, cfg)
	assert.Equal(t, []string{"A high", "B high"}, got, "stable name order, unknown traits skipped")

	// Empty mid rule drops the line entirely.
	got = TraitRules(map[string]int{"a_trait": 5}, cfg)
	assert.Empty(t, got)
}

func TestLoadTraitConfigMissingFile(t *testing.T) {
	cfg, err := LoadTraitConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestLoadTraitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traits.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"optimism": {"high_threshold": 7, "high_rule": "x"}}`), 0o644))
	cfg, err := LoadTraitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg["optimism"].HighThreshold)
	assert.Equal(t, "x", cfg["optimism"].HighRule)
}
