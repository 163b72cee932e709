package brief

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MBurgo/omni/internal/jsonx"
	"github.com/MBurgo/omni/internal/llm"
)

// historyWindow bounds token usage; only the most recent turns matter
// for updating the brief.
const historyWindow = 12

// FallbackQuestion is surfaced when the model's reply has no usable
// JSON; the dialogue must keep moving rather than crash.
const FallbackQuestion = "Could you rephrase that in one sentence?"

const defaultQuestion = "What are you promoting, and who is it for?"

const extractSystem = `You convert messy campaign notes into a structured direct-response marketing brief.

Return ONLY valid JSON.

Rules:
- Do not invent facts.
- If information is missing, use an empty string.
- Keep fields concise but usable by a copywriter.`

// ExtractResult is the degraded-friendly outcome of a one-shot brief
// extraction: Err is set instead of returning an error so callers can
// show Raw next to the failure.
type ExtractResult struct {
	Brief Brief
	Raw   string
	Err   string
}

// Extract runs a single JSON-mode call that pulls the 8 brief fields
// out of free-form notes.
func Extract(ctx context.Context, cli llm.Client, model, text string) ExtractResult {
	src := strings.TrimSpace(text)
	if src == "" {
		return ExtractResult{Err: "No input text provided."}
	}

	user := fmt.Sprintf(`Extract these fields from the input:

%s

Input:
---
%s
---

Return a single JSON object with exactly those keys.`, strings.Join(Keys, ", "), src)

	req := llm.NewRequest(extractSystem, user)
	req.Model = model
	req.Temperature = 0.1
	req.MaxTokens = 1400
	req.ExpectJSON = true

	raw, err := cli.Call(ctx, req)
	if err != nil {
		return ExtractResult{Err: err.Error(), Raw: raw}
	}

	obj := jsonx.ExtractObject(raw)
	if obj == nil {
		return ExtractResult{Err: "Could not parse JSON from the model response.", Raw: raw}
	}
	return ExtractResult{Brief: Coerce(obj), Raw: raw}
}

const builderSystem = `You are a senior direct-response marketing strategist helping a marketer build a campaign brief.
Your job is to meet them halfway.

Return ONLY valid JSON with this schema:
{
  "brief": { ... },
  "next_question": "string",
  "is_ready": true|false
}

Constraints:
- Ask at most ONE question at a time.
- Keep questions short and specific.
- Do not ask for everything; focus on the 3-6 most important missing pieces.
- Do not invent facts; keep unknown fields as empty strings.
- Avoid financial advice.`

// TurnInput is one round of the dialogue-first brief builder.
type TurnInput struct {
	History      []llm.Message
	Current      Brief
	CopyType     string
	LengthChoice string
	Country      string
	Model        string
}

// TurnResult mirrors the model contract: the returned brief REPLACES
// the current one (fields the model omits collapse to empty — a known
// sharp edge), and NextQuestion of "Ready" means done.
type TurnResult struct {
	Brief        Brief
	NextQuestion string
	IsReady      bool
	Raw          string
	Err          string
}

// Ready reports completion; the prompt asks for the literal "Ready"
// but the comparison is forgiving about case.
func (r TurnResult) Ready() bool {
	return r.IsReady || strings.EqualFold(strings.TrimSpace(r.NextQuestion), "Ready")
}

// BuilderTurn runs one conversational turn: update the brief from the
// latest user message, then either ask the single next best question
// or declare the brief ready.
func BuilderTurn(ctx context.Context, cli llm.Client, in TurnInput) TurnResult {
	current := Coerce(in.Current)

	history := in.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var hist strings.Builder
	for _, m := range history {
		role := m.Role
		if role == "" {
			role = llm.RoleUser
		}
		fmt.Fprintf(&hist, "%s: %s\n", role, m.Content)
	}

	briefJSON, _ := json.Marshal(current)

	user := fmt.Sprintf(`Context:
- copy_type: %s
- length_choice: %s
- country: %s

Current brief JSON:
%s

Conversation so far:
%s

Task:
1) Update the brief using the latest user message.
2) Decide if we have enough to generate copy (is_ready).
3) If not ready, ask the single next best question.
   If ready, set next_question to "Ready".`,
		in.CopyType, in.LengthChoice, in.Country, briefJSON, strings.TrimSpace(hist.String()))

	req := llm.NewRequest(builderSystem, user)
	req.Model = in.Model
	req.Temperature = 0.2
	req.MaxTokens = 1200
	req.ExpectJSON = true

	raw, err := cli.Call(ctx, req)
	if err != nil {
		return TurnResult{
			Brief:        current,
			NextQuestion: FallbackQuestion,
			Raw:          raw,
			Err:          err.Error(),
		}
	}

	obj := jsonx.ExtractObject(raw)
	if obj == nil {
		return TurnResult{
			Brief:        current,
			NextQuestion: FallbackQuestion,
			Raw:          raw,
			Err:          "Could not parse JSON from the model response.",
		}
	}

	next := jsonx.String(obj, "next_question")
	if next == "" {
		next = defaultQuestion
	}
	return TurnResult{
		Brief:        Coerce(obj["brief"]),
		NextQuestion: next,
		IsReady:      jsonx.Bool(obj, "is_ready"),
		Raw:          raw,
	}
}
