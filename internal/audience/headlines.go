package audience

import (
	"context"
	"fmt"
	"strings"

	"github.com/MBurgo/omni/internal/jsonx"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/persona"
)

type HeadlineRank struct {
	Rank          int    `json:"rank"`
	HeadlineIndex int    `json:"headline_index"`
	Why           string `json:"why"`
}

type HeadlineFeedback struct {
	HeadlineIndex  int    `json:"headline_index"`
	Click          bool   `json:"click"`
	Trust          string `json:"trust"` // High|Medium|Low
	ImpliedPromise string `json:"implied_promise"`
	WhatToFix      string `json:"what_to_fix"`
	Rewrite        string `json:"rewrite"`
}

// HeadlineReport is one persona's verdict on a headline batch. A
// degraded report (model error or unparseable JSON) carries Err and the
// raw text instead of panicking downstream.
type HeadlineReport struct {
	Top3             []HeadlineRank     `json:"top_3"`
	Feedback         []HeadlineFeedback `json:"headline_feedback"`
	OverallTakeaways []string           `json:"overall_takeaways"`
	BestAngle        string             `json:"best_angle"`
	Raw              string             `json:"-"`
	Err              string             `json:"-"`
}

func headlineTestPrompt(p persona.Persona, headlines []string, context string) string {
	var hb strings.Builder
	for i, h := range headlines {
		if strings.TrimSpace(h) == "" {
			continue
		}
		fmt.Fprintf(&hb, "%d. %s\n", i+1, strings.TrimSpace(h))
	}

	return fmt.Sprintf(`You are roleplaying this investor persona:
%s

Task:
- Evaluate the headlines as marketing headlines for an investing brand.
- Pick the top 3 you would click.
- Explain what each headline *implies* (promise/angle) and whether you trust it.
- Suggest improved rewrites for the weakest headlines.

Context (optional):
%s

Headlines:
%s
Return ONLY JSON (no markdown) in this schema:
{
  "top_3": [{"rank": 1, "headline_index": 3, "why": "..."}],
  "headline_feedback": [{"headline_index": 1, "click": true, "trust": "High|Medium|Low", "implied_promise": "...", "what_to_fix": "...", "rewrite": "..."}],
  "overall_takeaways": ["..."],
  "best_angle": "..."
}`, BuildPersonaSystemPrompt(p.Core), strings.TrimSpace(context), hb.String())
}

// TestHeadlines asks one persona to rank and critique a headline batch.
func TestHeadlines(ctx context.Context, cli llm.Client, model string, p persona.Persona, headlines []string, extraContext string) HeadlineReport {
	req := llm.NewRequest("", headlineTestPrompt(p, headlines, extraContext))
	req.Model = model
	req.Temperature = 0.4

	raw, err := cli.Call(ctx, req)
	if err != nil {
		return HeadlineReport{Err: err.Error(), Raw: raw}
	}

	obj := jsonx.ExtractObject(raw)
	if obj == nil {
		return HeadlineReport{Err: "Could not parse JSON", Raw: raw}
	}
	var report HeadlineReport
	if err := jsonx.Decode(obj, &report); err != nil {
		return HeadlineReport{Err: "Could not parse JSON", Raw: raw}
	}
	report.Raw = raw
	return report
}

// AggregateScores folds per-persona rankings into a score per headline
// index (1-based): rank 1 earns 3 points, rank 2 earns 2, rank 3 earns
// 1, rank 4+ nothing. Degraded reports contribute nothing.
func AggregateScores(reports []HeadlineReport, numHeadlines int) map[int]int {
	scores := make(map[int]int, numHeadlines)
	for i := 1; i <= numHeadlines; i++ {
		scores[i] = 0
	}
	for _, r := range reports {
		if r.Err != "" {
			continue
		}
		for _, item := range r.Top3 {
			if item.HeadlineIndex < 1 || item.HeadlineIndex > numHeadlines || item.Rank < 1 {
				continue
			}
			points := 4 - item.Rank
			if points < 0 {
				points = 0
			}
			scores[item.HeadlineIndex] += points
		}
	}
	return scores
}

// Winner returns the headline index with the highest aggregate score;
// ties go to the earliest index.
func Winner(scores map[int]int, numHeadlines int) int {
	best, bestScore := 0, -1
	for i := 1; i <= numHeadlines; i++ {
		if scores[i] > bestScore {
			best, bestScore = i, scores[i]
		}
	}
	return best
}
