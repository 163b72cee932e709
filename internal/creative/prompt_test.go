package creative

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MBurgo/omni/internal/brief"
)

func TestLengthFor(t *testing.T) {
	assert.Equal(t, LengthRule{100, 220}, LengthFor("Short (100-200 words)"))
	assert.Equal(t, LengthRule{3000, 0}, LengthFor("Scrolling Monster (3000+ words)"))
	assert.Equal(t, LengthRules[DefaultLengthChoice], LengthFor("bogus"))
	assert.Equal(t, LengthRules[DefaultLengthChoice], LengthFor(""))
}

func TestSystemPrompt(t *testing.T) {
	p := SystemPrompt("United Kingdom")
	assert.Contains(t, p, "British English")
	assert.Contains(t, p, DisclaimerLine)

	// Unknown countries fall back to the home market.
	assert.Contains(t, SystemPrompt("Mars"), "Australian English")
}

func TestBuildUserPrompt(t *testing.T) {
	p := BuildUserPrompt(PromptInput{
		CopyType: "Email",
		Brief:    brief.Brief{Hook: "Beat the market", OfferPrice: "$99", RetailPrice: "$199"},
		Traits:   map[string]int{"optimism": 9, "urgency": 2},
		TraitConfig: TraitConfig{
			"optimism": {HighRule: "Lean into upside."},
			"urgency":  {LowRule: "No countdown timers."},
		},
		LengthChoice: "Short (100-200 words)",
	})

	assert.Contains(t, p, "- optimism: 9/10")
	assert.Contains(t, p, "- urgency: 2/10")
	assert.Contains(t, p, "### Subject Line")
	assert.Contains(t, p, "Lean into upside.")
	assert.Contains(t, p, "No countdown timers.")
	assert.Contains(t, p, "- Hook: Beat the market")
	assert.Contains(t, p, "Special $99, Retail $199")
	assert.Contains(t, p, "Write between 100 and 220 words.")
	assert.Contains(t, p, "[Insert % Return]")
	assert.NotContains(t, p, "ORIGINAL COPY TO REVISE")
}

func TestBuildUserPromptUnboundedLength(t *testing.T) {
	p := BuildUserPrompt(PromptInput{LengthChoice: "Scrolling Monster (3000+ words)"})
	assert.Contains(t, p, "Write at least 3000 words.")
}

func TestBuildUserPromptRevision(t *testing.T) {
	p := BuildUserPrompt(PromptInput{
		CopyType:          "Sales Page",
		OriginalCopy:      "## Old Headline\nBody text.",
		ExtraInstructions: "Keep the PS.",
	})
	assert.Contains(t, p, "### ORIGINAL COPY TO REVISE")
	assert.Contains(t, p, "## Old Headline")
	assert.Contains(t, p, "preserve the Markdown structure")
	assert.Contains(t, p, "Keep the PS.")
	assert.Contains(t, p, "## Headline")
}

func TestBriefBlockEmpty(t *testing.T) {
	p := BuildUserPrompt(PromptInput{})
	assert.Contains(t, p, "- (none provided)")
}
