package creative

import (
	"context"
	"strconv"
	"strings"

	"github.com/MBurgo/omni/internal/brief"
	"github.com/MBurgo/omni/internal/jsonx"
	"github.com/MBurgo/omni/internal/llm"
)

// PlanResult carries the outline and the finished copy. Err is set on
// degraded outcomes; Copy is still populated with the best available
// text so the output is never silently empty.
type PlanResult struct {
	Plan string
	Copy string
	Raw  string
	Err  string
}

// GenerateInput parameterises a generate or rewrite call.
type GenerateInput struct {
	CopyType          string
	Country           string
	Traits            map[string]int
	Brief             brief.Brief
	LengthChoice      string
	TraitConfig       TraitConfig
	Model             string
	OriginalCopy      string
	ExtraInstructions string
}

const planTask = `TASK
1) Create a concise INTERNAL bullet plan covering:
   - Hook & opening flow
   - Placement of proof, urgency, CTA
   - Structure checkpoints (headings)
2) Then write the final copy.

Respond ONLY as valid JSON with exactly two keys:
{
  "plan": "<the bullet outline>",
  "copy": "<the finished marketing copy>"
}`

const reviseTask = `TASK
1) Create a concise INTERNAL bullet plan for the revision.
2) Then output the revised copy.

Respond ONLY as valid JSON with exactly two keys:
{
  "plan": "<the bullet outline>",
  "copy": "<the revised marketing copy>"
}`

// GenerateWithPlan asks for an internal outline and the final copy in
// one JSON response. Forcing the plan first measurably improves
// structural adherence.
func GenerateWithPlan(ctx context.Context, cli llm.Client, in GenerateInput) PlanResult {
	return planCall(ctx, cli, in, planTask, 0.7)
}

// RewritePreserveStructure revises an existing draft under the current
// trait rules while keeping its Markdown structure intact.
func RewritePreserveStructure(ctx context.Context, cli llm.Client, in GenerateInput) PlanResult {
	return planCall(ctx, cli, in, reviseTask, 0.6)
}

func planCall(ctx context.Context, cli llm.Client, in GenerateInput, task string, temperature float64) PlanResult {
	user := task + "\n\n" + BuildUserPrompt(PromptInput{
		CopyType:          in.CopyType,
		Brief:             in.Brief,
		Traits:            in.Traits,
		LengthChoice:      in.LengthChoice,
		TraitConfig:       in.TraitConfig,
		OriginalCopy:      in.OriginalCopy,
		ExtraInstructions: in.ExtraInstructions,
	})

	req := llm.NewRequest(SystemPrompt(in.Country), user)
	req.Model = in.Model
	req.Temperature = temperature
	req.MaxTokens = maxOutputTokens
	req.ExpectJSON = true

	raw, err := cli.Call(ctx, req)
	if err != nil {
		return PlanResult{Err: err.Error(), Raw: raw}
	}

	cleaned := strings.TrimSpace(jsonx.StripFences(raw))
	obj := jsonx.ExtractObject(raw)
	plan := jsonx.String(obj, "plan")
	copyText := jsonx.String(obj, "copy")
	if copyText == "" {
		// Model ignored the JSON contract; use its whole response.
		copyText = cleaned
	}
	// Gemini sometimes returns literal "\n" sequences inside strings.
	copyText = strings.ReplaceAll(copyText, `\n`, "\n")

	return PlanResult{Plan: plan, Copy: copyText, Raw: raw}
}

// ReviseForGoal rewrites existing copy toward a stated goal, keeping
// structure and compliance intact. Returns the revised copy only.
func ReviseForGoal(ctx context.Context, cli llm.Client, model, targetCountry, goal, existingCopy, extraNotes string) (string, error) {
	system := `You are a senior direct-response editor at The Motley Fool.

Rewrite the copy to achieve the goal, while staying compliant:
- no guaranteed outcomes
- no invented performance numbers
- no invented authorities

IMPORTANT:
- Preserve Markdown structure (headings, bullets) where possible.
- Ensure the piece ends with the exact italic disclaimer line:
  ` + DisclaimerLine + `

Return ONLY the revised copy.`

	notes := strings.TrimSpace(extraNotes)
	if notes == "" {
		notes = "(none)"
	}
	user := "GOAL:\n" + goal + "\n\nTARGET COUNTRY:\n" + targetCountry +
		"\n\nEXTRA NOTES:\n" + notes + "\n\nCOPY:\n" + strings.TrimSpace(existingCopy)

	req := llm.NewRequest(system, user)
	req.Model = model
	req.Temperature = 0.5
	req.MaxTokens = maxOutputTokens
	return cli.Call(ctx, req)
}

// AdaptCountry localises copy from one market to another without
// adding factual claims.
func AdaptCountry(ctx context.Context, cli llm.Client, model, sourceCountry, targetCountry, copyText, briefNotes string) (string, error) {
	system := "You are a senior direct-response editor at The Motley Fool.\n\n" +
		"Task:\n" +
		"- Adapt marketing copy written for " + sourceCountry + " so it works for " + targetCountry + ".\n" +
		"- Keep the underlying offer and persuasive structure, but localise language, references, spelling, and cultural cues.\n" +
		"- Do not add new factual claims or performance numbers.\n\n" +
		"Target country rules:\n" + countryRule(targetCountry) + "\n\n" +
		"Output:\n- Return the adapted copy only.\n- Keep Markdown formatting if present.\n\n" +
		"Compliance:\n- Avoid guaranteed outcomes.\n- If the original contains risky claims, soften them."

	user := "Optional brief notes (context):\n" + strings.TrimSpace(briefNotes) +
		"\n\nCopy to adapt (verbatim):\n" + strings.TrimSpace(copyText)

	req := llm.NewRequest(system, user)
	req.Model = model
	req.Temperature = 0.4
	req.MaxTokens = maxOutputTokens
	return cli.Call(ctx, req)
}

// VariantsResult holds alternative headline/subject and CTA ideas.
// Lists are empty, never nil errors, on parse failure.
type VariantsResult struct {
	Headlines []string
	CTAs      []string
	Raw       string
}

// Variants generates n headline/subject ideas and n CTA labels for an
// existing piece of copy.
func Variants(ctx context.Context, cli llm.Client, model, baseCopy string, n int) VariantsResult {
	if n <= 0 {
		n = 5
	}
	user := strings.TrimSpace(strings.ReplaceAll(`Write {n} alternative subject-line/headline ideas AND {n} alternative CTA button labels
for the copy below, preserving tone and urgency.

Rules:
- Keep headlines short and punchy (ideally <= 12 words)
- Keep CTAs short (ideally <= 6 words)
- Avoid guaranteed outcomes and financial advice phrasing

Return ONLY JSON:
{
  "headlines": ["..."],
  "ctas": ["..."]
}

--- COPY ---
`, "{n}", strconv.Itoa(n))) + "\n" + strings.TrimSpace(baseCopy) + "\n--- END COPY ---"

	req := llm.NewRequest("You are a world-class direct-response copywriter.", user)
	req.Model = model
	req.Temperature = 0.8
	req.MaxTokens = 1200
	req.ExpectJSON = true

	raw, err := cli.Call(ctx, req)
	if err != nil {
		return VariantsResult{Raw: raw}
	}
	obj := jsonx.ExtractObject(raw)
	return VariantsResult{
		Headlines: clipStrings(obj["headlines"], n),
		CTAs:      clipStrings(obj["ctas"], n),
		Raw:       raw,
	}
}

func clipStrings(v any, n int) []string {
	items, _ := v.([]any)
	out := make([]string, 0, n)
	for _, it := range items {
		s, _ := it.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}
