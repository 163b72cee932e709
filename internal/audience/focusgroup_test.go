package audience

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debateInput(creative string) FocusGroupInput {
	return FocusGroupInput{
		Believer: testPersona("Sarah"),
		Skeptic:  testPersona("David"),
		Creative: creative,
		CopyType: "Email",
	}
}

func TestFocusGroupEmptyCreative(t *testing.T) {
	participant := &fakeClient{}
	moderator := &fakeClient{}
	res := FocusGroupDebate(context.Background(), Clients{
		Participant: participant,
		Extractor:   participant,
		Moderator:   moderator,
	}, debateInput("   "))

	assert.Equal(t, "No creative provided", res.Err)
	assert.Empty(t, participant.calls, "no model calls for empty creative")
	assert.Empty(t, moderator.calls)
}

func TestFocusGroupFourAlternatingTurns(t *testing.T) {
	participant := &fakeClient{replies: []string{"open", "pushback", "rebuttal", "counter"}}
	moderator := &fakeClient{replies: []string{`{"executive_summary": "solid", "rewrite": {"subject": "s"}}`}}

	res := FocusGroupDebate(context.Background(), Clients{
		Participant: participant,
		Extractor:   participant,
		Moderator:   moderator,
	}, debateInput("Act now to secure your spot in our new investing service."))

	require.Empty(t, res.Err)
	require.Len(t, res.DebateTurns, 4)
	assert.Equal(t, []string{"Believer", "Skeptic", "Believer", "Skeptic"},
		[]string{res.DebateTurns[0].Role, res.DebateTurns[1].Role, res.DebateTurns[2].Role, res.DebateTurns[3].Role})
	assert.Equal(t, "Sarah", res.DebateTurns[0].Name)
	assert.Equal(t, "David", res.DebateTurns[1].Name)

	// Each turn is grounded in the prior turn's literal text.
	require.Len(t, participant.calls, 4)
	assert.Contains(t, participant.calls[1].Messages[0].Content, "open")
	assert.Contains(t, participant.calls[2].Messages[0].Content, "pushback")
	assert.Contains(t, participant.calls[3].Messages[0].Content, "rebuttal")

	// Opening statements run hotter than the bounded replies.
	assert.Equal(t, 0.8, participant.calls[0].Temperature)
	assert.Equal(t, 0.8, participant.calls[1].Temperature)
	assert.Equal(t, 0.7, participant.calls[2].Temperature)
	assert.Equal(t, 0.7, participant.calls[3].Temperature)

	assert.Contains(t, res.Transcript, "Sarah (Believer): open")
	assert.Contains(t, res.Transcript, "David (Skeptic): counter")

	require.Len(t, moderator.calls, 1)
	assert.Contains(t, moderator.calls[0].Messages[0].Content, res.Transcript)
	assert.Equal(t, "solid", res.ModeratorJSON["executive_summary"])
	assert.Equal(t, []string{"Urgency pressure"}, res.RiskFlags)
	assert.Positive(t, res.TokenEstimate)
}

func TestFocusGroupMidDebateErrorKeepsPartialTurns(t *testing.T) {
	participant := &fakeClient{
		replies: []string{"open", "pushback", "", ""},
		errs:    []error{nil, nil, errors.New("rate limited"), nil},
	}
	moderator := &fakeClient{}

	res := FocusGroupDebate(context.Background(), Clients{
		Participant: participant,
		Extractor:   participant,
		Moderator:   moderator,
	}, debateInput("Some creative text."))

	assert.Equal(t, "rate limited", res.Err)
	require.Len(t, res.DebateTurns, 2, "completed turns survive")
	assert.Empty(t, moderator.calls, "moderator never runs after a failed debate")
}

func TestFocusGroupBriefExtractionNeverAborts(t *testing.T) {
	// Extractor fails; the debate proceeds without a brief summary.
	participant := &fakeClient{replies: []string{"", "open", "pushback", "rebuttal", "counter"}}
	participant.errs = []error{errors.New("extract down"), nil, nil, nil, nil}
	moderator := &fakeClient{replies: []string{`{"executive_summary": "ok"}`}}

	in := debateInput("Creative body.")
	in.ExtractBrief = true
	res := FocusGroupDebate(context.Background(), Clients{
		Participant: participant,
		Extractor:   participant,
		Moderator:   moderator,
	}, in)

	require.Empty(t, res.Err)
	assert.Empty(t, res.BriefRaw)
	assert.Nil(t, res.BriefJSON)
	assert.Len(t, res.DebateTurns, 4)
}

func TestFocusGroupModeratorFailureKeepsDebate(t *testing.T) {
	participant := &fakeClient{replies: []string{"open", "pushback", "rebuttal", "counter"}}
	moderator := &fakeClient{errs: []error{errors.New("moderator down")}}

	res := FocusGroupDebate(context.Background(), Clients{
		Participant: participant,
		Extractor:   participant,
		Moderator:   moderator,
	}, debateInput("Creative body."))

	assert.Equal(t, "moderator down", res.Err)
	assert.Len(t, res.DebateTurns, 4)
	assert.NotEmpty(t, res.Transcript)
}

func TestFocusGroupExcerptScopes(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 2000))

	participant := &fakeClient{replies: []string{"a", "b", "c", "d"}}
	moderator := &fakeClient{replies: []string{"{}"}}
	clients := Clients{Participant: participant, Extractor: participant, Moderator: moderator}

	in := debateInput(long)
	in.Scope = ScopeFirstN
	in.NWords = 100
	res := FocusGroupDebate(context.Background(), clients, in)
	assert.Equal(t, 100, WordCount(res.Excerpt))

	participant.calls, participant.replies = nil, []string{"a", "b", "c", "d"}
	moderator.calls, moderator.replies = nil, []string{"{}"}
	in.Scope = ScopeFullCapped
	res = FocusGroupDebate(context.Background(), clients, in)
	assert.Equal(t, ParticipantCapWords, WordCount(res.Excerpt), "full scope is still capped")

	participant.calls, participant.replies = nil, []string{"a", "b", "c", "d"}
	moderator.calls, moderator.replies = nil, []string{"{}"}
	in.Scope = ScopeCustom
	in.CustomExcerpt = "Hand-picked passage the marketer wants reactions to."
	res = FocusGroupDebate(context.Background(), clients, in)
	assert.Equal(t, in.CustomExcerpt, res.Excerpt, "custom scope uses the supplied excerpt, not the creative")
}
