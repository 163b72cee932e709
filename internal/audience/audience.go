// Package audience voices personas against marketing creative: ask-a-
// persona chat, headline panels, and the believer/skeptic focus-group
// debate with moderator synthesis.
package audience

import (
	"context"
	"fmt"
	"strings"

	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/persona"
)

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimateTokens is the portal's display heuristic: ~1.45 tokens per word.
func EstimateTokens(text string) int {
	return int(float64(WordCount(text)) * 1.45)
}

// TruncateWords cuts text to at most maxWords whitespace-delimited
// tokens, never mid-word.
func TruncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}

func clipList(items []string, n int, sep string) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, sep)
}

// BuildPersonaSystemPrompt grounds a model call in a persona's
// identity. Every persona-voiced call shares the same guardrails: no
// financial advice, and a response-length cap.
func BuildPersonaSystemPrompt(c persona.Core) string {
	return fmt.Sprintf(`You are %s, a %s-year-old %s based in %s. Income: $%s.
Bio: %s
Values: %s
Goals: %s
Concerns: %s
Decision style: %s
Investing: %s. Risk tolerance: %s.
Information sources: %s
Preferred channels: %s
Preferred formats: %s

Rules: Respond in first person, in-character, and grounded in your constraints. Don't give financial advice; focus on reactions to marketing, credibility, and decision triggers. Keep answers under ~140 words unless asked for depth.`,
		c.Name, c.Age, c.Occupation, c.Location, c.Income,
		c.Narrative,
		clipList(c.Values, 5, ", "),
		clipList(c.Goals, 4, "; "),
		clipList(c.Concerns, 4, "; "),
		c.DecisionMaking,
		c.Behavioural.InvestmentExperience, c.Behavioural.RiskTolerance,
		clipList(c.Behavioural.InformationSources, 6, ", "),
		clipList(c.Behavioural.PreferredChannels, 6, ", "),
		clipList(c.Content.PreferredFormats, 6, ", "))
}

// Exchange is one prior question/answer pair of an ask-a-persona chat.
type Exchange struct {
	Question string
	Answer   string
}

// AskPersona runs a single in-character reply, carrying up to the last
// three exchanges of history.
func AskPersona(ctx context.Context, cli llm.Client, model string, p persona.Persona, question string, history []Exchange) (string, error) {
	msgs := []llm.Message{}
	if len(history) > 3 {
		history = history[len(history)-3:]
	}
	for _, ex := range history {
		msgs = append(msgs,
			llm.Message{Role: llm.RoleUser, Content: ex.Question},
			llm.Message{Role: llm.RoleAssistant, Content: ex.Answer},
		)
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: question})

	req := llm.Request{
		System:      BuildPersonaSystemPrompt(p.Core),
		Messages:    msgs,
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   2048,
	}
	return cli.Call(ctx, req)
}
