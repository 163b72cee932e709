package creative

import (
	"context"
	"fmt"
	"strings"

	"github.com/MBurgo/omni/internal/llm"
)

// QAStatus is the outcome of a QA-and-patch run.
type QAStatus string

const (
	StatusPass    QAStatus = "PASS"
	StatusPatched QAStatus = "PATCHED"
	StatusError   QAStatus = "ERROR"
)

// QAResult carries the final copy alongside the critique that shaped
// it. On ERROR the original draft is returned unchanged, not discarded.
type QAResult struct {
	Status   QAStatus
	Critique string
	Copy     string
}

// QAInput parameterises the QA loop.
type QAInput struct {
	Draft        string
	CopyType     string
	Country      string
	LengthChoice string
	Traits       map[string]int
	TraitConfig  TraitConfig
	Model        string
}

// QAAndPatch runs a two-phase QA pass with at most one repair call.
//
// Phase 1 is deterministic: word-count bounds (flag below 50% of the
// bucket minimum or above 125% of its maximum) and a literal check for
// the disclaimer line. Any hit skips the model critique entirely —
// these checks are cheaper and more reliable than asking a model to
// find the same problems.
//
// Phase 2 asks a cheap model for "PASS" or a bullet list of fixes.
// If not approved, exactly one patch call is issued; there is no
// second attempt.
func QAAndPatch(ctx context.Context, cli llm.Client, in QAInput) QAResult {
	text := strings.TrimSpace(in.Draft)
	if text == "" {
		return QAResult{Status: StatusError, Critique: "Empty draft"}
	}

	rule := LengthFor(in.LengthChoice)
	wc := WordCount(text)

	var issues []string
	if rule.Min > 0 && wc < rule.Min/2 {
		issues = append(issues, fmt.Sprintf("Draft is only %d words (target min: %d). Expand significantly.", wc, rule.Min))
	}
	if !strings.Contains(text, DisclaimerLine) {
		issues = append(issues, "Disclaimer line is missing or not exact. Append the italic disclaimer at the end.")
	}
	if rule.Max > 0 && wc > rule.Max*125/100 {
		issues = append(issues, fmt.Sprintf("Draft is %d words (target max: %d). Tighten to fit the length bucket.", wc, rule.Max))
	}

	var critique string
	if len(issues) > 0 {
		var sb strings.Builder
		for _, issue := range issues {
			sb.WriteString("- " + issue + "\n")
		}
		critique = strings.TrimRight(sb.String(), "\n")
	} else {
		hardBlock := strings.Join(TraitRules(in.Traits, in.TraitConfig), "\n")
		if hardBlock == "" {
			hardBlock = "(none)"
		}

		user := fmt.Sprintf(`Check the copy for:
- Structure matches %s
- Hard requirements are satisfied
- Length fits: %s
- Disclaimer line present exactly: %s
- Compliance: no guaranteed outcomes, no invented performance numbers

Hard requirements:
%s

TARGET COUNTRY:
%s

Return ONLY:
- "PASS" if everything is acceptable
- Otherwise, a short bullet list of fixes (no more than 8 bullets)

--- COPY ---
%s`, in.CopyType, in.LengthChoice, DisclaimerLine, hardBlock, in.Country, text)

		req := llm.NewRequest("You are an obsessive editorial QA bot for direct-response copy.", user)
		req.Model = in.Model
		req.Temperature = 0.2
		req.MaxTokens = 1200

		out, err := cli.Call(ctx, req)
		if err != nil {
			return QAResult{Status: StatusError, Critique: err.Error(), Copy: text}
		}
		critique = out
	}

	if len(issues) == 0 && strings.Contains(strings.ToUpper(critique), "PASS") {
		return QAResult{Status: StatusPass, Critique: "PASS", Copy: text}
	}

	patchUser := fmt.Sprintf(`Apply the fixes below while preserving the overall intent.
- Keep compliance in mind.
- Do not invent performance numbers.

FIXES:
%s

ORIGINAL:
%s`, strings.TrimSpace(critique), text)

	req := llm.NewRequest("Revise copy to address QA feedback. Output the full revised copy ONLY.", patchUser)
	req.Model = in.Model
	req.Temperature = 0.4
	req.MaxTokens = maxOutputTokens

	patched, err := cli.Call(ctx, req)
	patched = strings.TrimSpace(patched)
	if err != nil || patched == "" {
		return QAResult{Status: StatusError, Critique: strings.TrimSpace(critique), Copy: text}
	}
	return QAResult{Status: StatusPatched, Critique: strings.TrimSpace(critique), Copy: patched}
}
