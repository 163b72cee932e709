package audience

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MBurgo/omni/internal/jsonx"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/persona"
)

// Excerpt caps. Participants are voiced four times so their prompt must
// stay small; the moderator reads the creative once and gets the most
// context we can afford.
const (
	ParticipantCapWords = 1500
	ModeratorCapWords   = 4500

	defaultExcerptWords = 450
)

// ExcerptScope selects what the participants see.
type ExcerptScope string

const (
	ScopeFirstN     ExcerptScope = "First N words"
	ScopeFullCapped ExcerptScope = "Full text (capped)"
	ScopeCustom     ExcerptScope = "Custom excerpt"
)

// DebateTurn is one participant statement, append-only.
type DebateTurn struct {
	Name string `json:"name"`
	UID  string `json:"uid"`
	Role string `json:"role"` // Believer | Skeptic
	Text string `json:"text"`
}

// FocusGroupInput configures a debate run.
type FocusGroupInput struct {
	Believer       persona.Persona
	Skeptic        persona.Persona
	Creative       string
	CopyType       string
	Scope          ExcerptScope
	NWords         int
	CustomExcerpt  string
	ExtractBrief   bool
	BriefModel     string
	Model          string
	ModeratorModel string
}

// Clients are the three call surfaces the pipeline uses: participants
// and brief extraction on the primary provider, the moderator on the
// secondary (which falls back to primary on its own).
type Clients struct {
	Participant llm.Client
	Extractor   llm.Client
	Moderator   llm.Client
}

// FocusGroupResult is everything the debate produced, including raw
// moderator text so a parse failure still leaves something to show.
type FocusGroupResult struct {
	CreatedAt     time.Time      `json:"created_at"`
	CopyType      string         `json:"copy_type"`
	Creative      string         `json:"creative_full"`
	Excerpt       string         `json:"excerpt"`
	BriefRaw      string         `json:"brief_raw,omitempty"`
	BriefJSON     map[string]any `json:"brief_json,omitempty"`
	DebateTurns   []DebateTurn   `json:"debate_turns"`
	Transcript    string         `json:"transcript"`
	ModeratorRaw  string         `json:"moderator_raw"`
	ModeratorJSON map[string]any `json:"moderator_json,omitempty"`
	RiskFlags     []string       `json:"risk_flags_detected"`
	TokenEstimate int            `json:"token_estimate"`
	Err           string         `json:"error,omitempty"`
}

const baseInstruction = "IMPORTANT: This is a simulation for marketing research. " +
	"You are roleplaying a specific persona. Do NOT sound like a generic AI. " +
	"Do not give financial advice; focus on reactions to marketing, credibility, and decision triggers. " +
	"Be specific. Avoid repeating the same template in every turn."

func stancePrompt(p persona.Persona, stance string) string {
	c := p.Core
	stanceBlock := "You WANT the message to be true. You focus on upside, possibility, and emotional appeal. " +
		"You defend the message against skepticism, but you still sound like a real person."
	if stance == "Skeptic" {
		stanceBlock = "You are allergic to hype. You look for missing specifics, credibility gaps, and implied claims. " +
			"You call out anything that sounds too good to be true."
	}
	return fmt.Sprintf(`ROLE: You are %s, a %s-year-old %s.
BIO: %s
VALUES: %s
GOALS: %s
CONCERNS: %s
RISK TOLERANCE: %s

STANCE: %s
%s`,
		c.Name, c.Age, c.Occupation, c.Narrative,
		clipList(c.Values, 5, ", "),
		clipList(c.Goals, 4, "; "),
		clipList(c.Concerns, 4, "; "),
		c.Behavioural.RiskTolerance,
		stance, stanceBlock)
}

func participantTask(copyType string) string {
	switch copyType {
	case "Headline":
		return "Answer in 4 short bullets:\n" +
			"1) Click or ignore (and why)\n" +
			"2) What you think this really means (implied promise)\n" +
			"3) Trust reaction (what feels credible / not)\n" +
			"4) One rewrite suggestion (<= 12 words)"
	case "Email":
		return "Answer in 4 short bullets:\n" +
			"1) Open or ignore (and why)\n" +
			"2) Trust/credibility reaction\n" +
			"3) Biggest question holding you back\n" +
			"4) One change that improves it"
	case "Sales Page":
		return "Answer in 5 short bullets:\n" +
			"1) Would you keep reading or bounce (and where)\n" +
			"2) Strongest section (and why)\n" +
			"3) Weakest section (and why)\n" +
			"4) Proof you need before believing\n" +
			"5) One concrete fix"
	default:
		return "Answer in 4 short bullets:\n" +
			"1) What grabs you (if anything)\n" +
			"2) What feels off / unclear\n" +
			"3) What proof you need\n" +
			"4) One improvement"
	}
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n-1], " ") + "..."
}

// summarizeBriefForParticipants condenses the extracted brief into the
// few lines participants can afford to read.
func summarizeBriefForParticipants(b map[string]any) string {
	if len(b) == 0 {
		return ""
	}
	var lines []string
	if v := jsonx.String(b, "primary_promise"); v != "" {
		lines = append(lines, "Promise: "+clip(v, 140))
	}
	if v := jsonx.String(b, "mechanism_or_angle"); v != "" {
		lines = append(lines, "Angle: "+clip(v, 140))
	}
	if v := jsonx.String(b, "offer_summary"); v != "" {
		lines = append(lines, "Offer: "+clip(v, 140))
	}
	if v := jsonx.String(b, "cta"); v != "" {
		lines = append(lines, "CTA: "+clip(v, 140))
	}
	if claims := stringList(b["key_claims"], 4); len(claims) > 0 {
		for i, c := range claims {
			claims[i] = clip(c, 90)
		}
		lines = append(lines, "Claims: "+strings.Join(claims, "; "))
	}
	if missing := stringList(b["missing_proof"], 3); len(missing) > 0 {
		for i, m := range missing {
			missing[i] = clip(m, 90)
		}
		lines = append(lines, "Missing proof: "+strings.Join(missing, "; "))
	}
	if len(lines) == 0 {
		return ""
	}
	for i, ln := range lines {
		lines[i] = "- " + ln
	}
	return strings.Join(lines, "\n")
}

func stringList(v any, max int) []string {
	items, _ := v.([]any)
	var out []string
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
		if len(out) == max {
			break
		}
	}
	return out
}

func briefExtractionPrompt(copyType, text string) string {
	return fmt.Sprintf(`You are a senior conversion strategist. Extract a structured brief from the marketing creative.

COPY TYPE: %s

CREATIVE (verbatim):
%s

Return ONLY a single JSON object (no markdown, no commentary) with this structure:

{
  "copy_type": "%s",
  "audience_assumed": "...",
  "primary_promise": "...",
  "mechanism_or_angle": "...",
  "offer_summary": "...",
  "cta": "...",
  "price_or_discount": "...",
  "key_claims": ["..."],
  "proof_elements_present": ["..."],
  "missing_proof": ["..."],
  "tone": ["..."],
  "sections_detected": ["..."],
  "confusing_or_unanswered": ["..."],
  "risk_flags": ["..."],
  "quick_fixes": ["..."]
}

Rules:
- If something is unknown, use an empty string or empty list.
- Keep strings concise.`, copyType, text, copyType)
}

// FocusGroupDebate runs the five-step pipeline: optional brief
// extraction, then four strictly sequential persona turns (each
// grounded in the prior turn's literal text), then moderator synthesis
// over the full transcript.
func FocusGroupDebate(ctx context.Context, c Clients, in FocusGroupInput) FocusGroupResult {
	creative := strings.TrimSpace(in.Creative)
	if creative == "" {
		return FocusGroupResult{Err: "No creative provided"}
	}

	nWords := in.NWords
	if nWords <= 0 {
		nWords = defaultExcerptWords
	}

	var excerpt string
	switch {
	case in.Scope == ScopeCustom && strings.TrimSpace(in.CustomExcerpt) != "":
		excerpt = TruncateWords(strings.TrimSpace(in.CustomExcerpt), ParticipantCapWords)
	case in.Scope == ScopeFullCapped:
		excerpt = TruncateWords(creative, ParticipantCapWords)
	default:
		excerpt = TruncateWords(creative, nWords)
	}
	creativeForModerator := TruncateWords(creative, ModeratorCapWords)

	result := FocusGroupResult{
		CreatedAt:     time.Now(),
		CopyType:      in.CopyType,
		Creative:      creative,
		Excerpt:       excerpt,
		RiskFlags:     RiskFlags(creative),
		TokenEstimate: EstimateTokens(creative),
	}

	// Optional brief extraction; failure here never aborts the debate.
	if in.ExtractBrief {
		req := llm.NewRequest("", briefExtractionPrompt(in.CopyType, creativeForModerator))
		req.Model = in.BriefModel
		req.Temperature = 0.2
		raw, err := c.Extractor.Call(ctx, req)
		if err == nil {
			result.BriefRaw = raw
			result.BriefJSON = jsonx.ExtractObject(raw)
		}
	}

	briefSummary := summarizeBriefForParticipants(result.BriefJSON)
	personaBrief := ""
	if briefSummary != "" {
		personaBrief = "\n\nBRIEF SUMMARY (for context):\n" + briefSummary
	}
	task := participantTask(in.CopyType)
	roleA := stancePrompt(in.Believer, "Believer")
	roleB := stancePrompt(in.Skeptic, "Skeptic")

	speak := func(role, user string, temperature float64) (string, error) {
		req := llm.NewRequest(baseInstruction+"\n\n"+role, user)
		req.Model = in.Model
		req.Temperature = temperature
		return c.Participant.Call(ctx, req)
	}

	// 1) Believer opening
	msgA, err := speak(roleA, fmt.Sprintf(
		"You are reacting to %s creative.\n\nCREATIVE (excerpt):\n%s%s\n\nTASK:\n%s",
		in.CopyType, excerpt, personaBrief, task), 0.8)
	if err != nil {
		result.Err = err.Error()
		return result
	}

	// 2) Skeptic responds to the believer's literal text
	msgB, err := speak(roleB, fmt.Sprintf(
		"You are reacting to the same %s creative.\n\nCREATIVE (excerpt):\n%s%s\n\n"+
			"The Believer said:\n%s\n\n"+
			"Respond directly to their points. Don't restate the creative. "+
			"Call out what feels manipulative or unclear.\n\nTASK:\n%s",
		in.CopyType, excerpt, personaBrief, msgA, task), 0.8)
	if err != nil {
		result.DebateTurns = turns(in, msgA)
		result.Err = err.Error()
		return result
	}

	// 3) Believer rebuttal, bounded
	msgA2, err := speak(roleA,
		"Reply to the Skeptic in 5-6 sentences max.\n"+
			"- Acknowledge 1 fair critique\n"+
			"- Defend 1 element that still excites you\n"+
			"- Suggest 1 specific improvement that would keep the upside but build trust\n\n"+
			"Skeptic said:\n"+msgB, 0.7)
	if err != nil {
		result.DebateTurns = turns(in, msgA, msgB)
		result.Err = err.Error()
		return result
	}

	// 4) Skeptic counter, bounded
	msgB2, err := speak(roleB,
		"Counter the Believer in 5-6 sentences max.\n"+
			"- Say what specific proof/detail would convert you\n"+
			"- Name the single most damaging phrase or move in the creative\n"+
			"- Provide one rewrite principle (not a full rewrite)\n\n"+
			"Believer said:\n"+msgA2, 0.7)
	if err != nil {
		result.DebateTurns = turns(in, msgA, msgB, msgA2)
		result.Err = err.Error()
		return result
	}

	result.DebateTurns = turns(in, msgA, msgB, msgA2, msgB2)

	var tb strings.Builder
	for _, t := range result.DebateTurns {
		fmt.Fprintf(&tb, "%s (%s): %s\n", t.Name, t.Role, t.Text)
	}
	result.Transcript = strings.TrimRight(tb.String(), "\n")

	// 5) Moderator synthesis on the secondary provider (its client
	// falls back to primary on its own).
	modReq := llm.NewRequest("", moderatorPrompt(in.CopyType, result.Transcript, creativeForModerator, result.BriefJSON))
	modReq.Model = in.ModeratorModel
	modReq.Temperature = 0.7
	modRaw, err := c.Moderator.Call(ctx, modReq)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	result.ModeratorRaw = modRaw
	result.ModeratorJSON = jsonx.ExtractObject(modRaw)
	return result
}

func turns(in FocusGroupInput, texts ...string) []DebateTurn {
	speakers := []struct {
		p    persona.Persona
		role string
	}{
		{in.Believer, "Believer"},
		{in.Skeptic, "Skeptic"},
		{in.Believer, "Believer"},
		{in.Skeptic, "Skeptic"},
	}
	out := make([]DebateTurn, 0, len(texts))
	for i, text := range texts {
		out = append(out, DebateTurn{
			Name: speakers[i].p.Name(),
			UID:  speakers[i].p.UID,
			Role: speakers[i].role,
			Text: text,
		})
	}
	return out
}

func moderatorPrompt(copyType, transcript, creative string, briefJSON map[string]any) string {
	baseFields := `  "executive_summary": "...",
  "real_why": "...",
  "trust_gap": "...",
  "key_objections": ["..."],
  "proof_needed": ["..."],
  "risk_flags": ["..."],
  "actionable_fixes": ["..."],
`

	var rewriteSchema, constraints string
	switch copyType {
	case "Headline":
		rewriteSchema = `  "rewrite": {
    "headlines": ["..."],
    "angle_notes": "..."
  },
  "notes": "..."
`
		constraints = "Constraints:\n" +
			"- Provide 10 headlines. Each <= 12 words.\n" +
			"- Make the angle specific early (avoid pure mystery).\n" +
			"- Avoid guarantees or performance promises.\n"
	case "Email":
		rewriteSchema = `  "rewrite": {
    "subject": "...",
    "preheader": "...",
    "body": "...",
    "cta": "...",
    "ps": "..."
  },
  "alt_subjects": ["..."],
  "notes": "..."
`
		constraints = "Constraints:\n" +
			"- Subject <= 70 characters.\n" +
			"- Preheader <= 110 characters.\n" +
			"- Body 150-250 words, clear and credible (AU tone).\n" +
			"- Avoid guarantees or performance promises.\n"
	case "Sales Page":
		rewriteSchema = `  "section_feedback": [
    {"section": "Hero", "what_works": "...", "what_hurts": "...", "fix": "..."}
  ],
  "rewrite": {
    "hero_headline": "...",
    "hero_subhead": "...",
    "bullets": ["..."],
    "proof_block": "...",
    "offer_stack": ["..."],
    "cta_block": "...",
    "cta_button": "..."
  },
  "notes": "..."
`
		constraints = "Constraints:\n" +
			"- Focus on rewriting key blocks (not the entire page).\n" +
			"- Bullets: 5-7. Offer stack: 3-6 items.\n" +
			"- Avoid guarantees or performance promises.\n"
	default:
		rewriteSchema = `  "rewrite": {
    "headline": "...",
    "body": "..."
  },
  "notes": "..."
`
		constraints = "Constraints:\n" +
			"- Keep rewrite concise and concrete.\n" +
			"- Avoid guarantees or performance promises.\n"
	}

	briefBlock := ""
	if len(briefJSON) > 0 {
		if b, err := json.Marshal(briefJSON); err == nil {
			briefBlock = "\n\nEXTRACTED BRIEF (JSON):\n" + string(b)
		}
	}

	return fmt.Sprintf(`You are a legendary Direct Response Copywriter (Motley Fool style) acting as a focus-group moderator.
You are strict, practical, and credibility-first.

COPY TYPE: %s

TRANSCRIPT:
%s

CREATIVE:
%s%s

OUTPUT:
Return ONLY a single JSON object (no markdown, no commentary) with this structure:

{
%s%s}

%s`, copyType, transcript, creative, briefBlock, baseFields, rewriteSchema, strings.TrimSpace(constraints))
}
