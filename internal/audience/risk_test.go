package audience

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskFlags(t *testing.T) {
	text := "GUARANTEED returns! Act now - this could be the next NVIDIA. Everyone wins."
	got := RiskFlags(text)
	assert.Equal(t, []string{
		"Guaranteed / certainty language",
		"Urgency pressure",
		"Implied future performance",
		"Overly absolute claims",
	}, got, "all four categories, in fixed order, case-insensitive")
}

func TestRiskFlagsSingleHitPerCategory(t *testing.T) {
	got := RiskFlags("risk-free and no risk and 100% guaranteed")
	assert.Equal(t, []string{"Guaranteed / certainty language"}, got)
}

func TestRiskFlagsClean(t *testing.T) {
	assert.Empty(t, RiskFlags("A considered look at dividend investing."))
	assert.Empty(t, RiskFlags(""))
	assert.Empty(t, RiskFlags("   "))
}
