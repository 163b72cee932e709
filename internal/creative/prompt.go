package creative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MBurgo/omni/internal/brief"
)

func line(label, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	return fmt.Sprintf("- %s: %s\n", label, v)
}

func offerLine(b brief.Brief) string {
	var parts []string
	if v := strings.TrimSpace(b.OfferPrice); v != "" {
		parts = append(parts, "Special "+v)
	}
	if v := strings.TrimSpace(b.RetailPrice); v != "" {
		parts = append(parts, "Retail "+v)
	}
	if v := strings.TrimSpace(b.OfferTerm); v != "" {
		parts = append(parts, "Term "+v)
	}
	if len(parts) == 0 {
		return ""
	}
	return line("Offer", strings.Join(parts, ", "))
}

func briefBlock(b brief.Brief) string {
	block := strings.TrimSpace(
		line("Hook", b.Hook) +
			line("Details", b.Details) +
			offerLine(b) +
			line("Reports", b.Reports) +
			line("Stocks to Tease", b.StocksToTease) +
			line("Quotes/News", b.QuotesNews))
	if block == "" {
		return "- (none provided)"
	}
	return block
}

// PromptInput collects everything the copy prompt is assembled from.
type PromptInput struct {
	CopyType          string
	Brief             brief.Brief
	Traits            map[string]int
	LengthChoice      string
	TraitConfig       TraitConfig
	OriginalCopy      string
	ExtraInstructions string
}

// BuildUserPrompt assembles the full copywriting task prompt: trait
// dials, structure template, hard requirements from the trait bands,
// the brief block, and the length requirement. When OriginalCopy is
// set the prompt becomes a structure-preserving revision task.
func BuildUserPrompt(in PromptInput) string {
	hardBlock := ""
	if rules := TraitRules(in.Traits, in.TraitConfig); len(rules) > 0 {
		hardBlock = "Hard Requirements:\n" + strings.Join(rules, "\n")
	}

	rule := LengthFor(in.LengthChoice)
	lengthBlock := fmt.Sprintf("Write between %d and %d words.", rule.Min, rule.Max)
	if rule.Max == 0 {
		lengthBlock = fmt.Sprintf("Write at least %d words.", rule.Min)
	}

	traitNames := make([]string, 0, len(in.Traits))
	for name := range in.Traits {
		traitNames = append(traitNames, name)
	}
	sort.Strings(traitNames)
	traitLines := make([]string, 0, len(traitNames))
	for _, name := range traitNames {
		traitLines = append(traitLines, fmt.Sprintf("- %s: %d/10", name, in.Traits[name]))
	}

	editBlock := ""
	if strings.TrimSpace(in.OriginalCopy) != "" {
		extra := strings.TrimSpace(in.ExtraInstructions)
		if extra != "" {
			extra = "\n\nAdditional revision instructions:\n" + extra
		}
		editBlock = fmt.Sprintf(`

### ORIGINAL COPY TO REVISE
%s

### INSTRUCTION
Rewrite the copy above using the trait requirements and the structure rules.
IMPORTANT: You MUST preserve the Markdown structure (headings, bullets) used in the original.%s`,
			strings.TrimSpace(in.OriginalCopy), extra)
	}

	return strings.TrimSpace(fmt.Sprintf(`Linguistic settings:
%s

Structure to follow:
%s

%s

Campaign brief:
%s

Length requirement:
%s

IMPORTANT:
- Do not invent fake names, fake doctors, or precise performance numbers unless explicitly provided.
- If you need a number, use a placeholder like [Insert %% Return].
- Focus on persuasion psychology without overstating certainty.

Please limit bullet lists to three or fewer and favour full-sentence paragraphs elsewhere.%s`,
		strings.Join(traitLines, "\n"),
		structureFor(in.CopyType),
		hardBlock,
		briefBlock(in.Brief),
		lengthBlock,
		editBlock))
}
