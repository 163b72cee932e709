// Package creative builds copywriting prompts and runs the generation
// and QA pipelines. Prompt builders are pure string assembly — fully
// deterministic given their inputs.
package creative

import (
	"fmt"
	"strings"
)

// DisclaimerLine must appear verbatim at the end of every piece; the
// QA gate checks for it as a literal substring.
const DisclaimerLine = "*Past performance is not a reliable indicator of future results.*"

const maxOutputTokens = 4096

// LengthRule is a word-count bucket. Max of 0 means unbounded.
type LengthRule struct {
	Min int
	Max int
}

const DefaultLengthChoice = "Medium (200-500 words)"

var LengthRules = map[string]LengthRule{
	"Short (100-200 words)":           {100, 220},
	"Medium (200-500 words)":          {200, 550},
	"Long (500-1500 words)":           {500, 1600},
	"Extra Long (1500-3000 words)":    {1500, 3200},
	"Scrolling Monster (3000+ words)": {3000, 0},
}

// LengthFor resolves a bucket label, defaulting to Medium.
func LengthFor(choice string) LengthRule {
	if r, ok := LengthRules[choice]; ok {
		return r
	}
	return LengthRules[DefaultLengthChoice]
}

var CountryRules = map[string]string{
	"Australia":      "Use Australian English, prices in AUD, reference the ASX.",
	"United Kingdom": "Use British English, prices in GBP, reference the FTSE.",
	"Canada":         "Use Canadian English, prices in CAD, reference the TSX.",
	"United States":  "Use American English, prices in USD, reference the S&P 500.",
}

func countryRule(country string) string {
	if r, ok := CountryRules[country]; ok {
		return r
	}
	return "Use Australian English."
}

const emailStructure = `### Subject Line
### Greeting
### Body (benefits, urgency, proofs)
### Call-to-Action
### Sign-off`

const salesPageStructure = `## Headline
### Introduction
### Key Benefit Paragraphs
### Detailed Body
### Call-to-Action`

const adsStructure = `### Ad Headline
### Primary Text
### CTA`

func structureFor(copyType string) string {
	switch copyType {
	case "Email":
		return emailStructure
	case "Sales Page":
		return salesPageStructure
	default:
		return adsStructure
	}
}

// SystemPrompt is the copy chief's standing instruction, parameterised
// by country rules and the mandatory disclaimer.
func SystemPrompt(country string) string {
	return fmt.Sprintf(`You are The Motley Fool's senior direct-response copy chief.

- Voice: plain English, optimistic, inclusive, lightly playful but always expert.
- Use Markdown headings (##, ###) and standard '-' bullets for lists.
- Never promise guaranteed returns; keep compliance in mind.
- Return ONLY the requested copy - no meta commentary.

%s

At the very end of the piece, append this italic line (no quotes):
%s`, countryRule(country), DisclaimerLine)
}

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
