package creative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftOfWords(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n)) + "\n\n" + DisclaimerLine
}

func TestQADeterministicIssueSkipsCritique(t *testing.T) {
	// 40 words (including the disclaimer) against a 100-word minimum is
	// under the 50% line; the critique call must be skipped and the
	// patch call issued directly.
	cli := &fakeClient{replies: []string{"expanded draft"}}
	res := QAAndPatch(context.Background(), cli, QAInput{
		Draft:        draftOfWords(30),
		LengthChoice: "Short (100-200 words)",
	})

	assert.Equal(t, StatusPatched, res.Status)
	assert.Equal(t, "expanded draft", res.Copy)
	require.Len(t, cli.calls, 1, "one patch call, no critique call")
	assert.Contains(t, res.Critique, "Expand significantly")
}

func TestQAMissingDisclaimerIsDeterministic(t *testing.T) {
	draft := strings.TrimSpace(strings.Repeat("word ", 150))
	cli := &fakeClient{replies: []string{"patched with disclaimer"}}
	res := QAAndPatch(context.Background(), cli, QAInput{
		Draft:        draft,
		LengthChoice: "Short (100-200 words)",
	})
	assert.Equal(t, StatusPatched, res.Status)
	require.Len(t, cli.calls, 1)
	assert.Contains(t, res.Critique, "Disclaimer")
}

func TestQAOverlongDraftFlagged(t *testing.T) {
	// 300 words against a 220 max exceeds the 125% allowance.
	cli := &fakeClient{replies: []string{"tightened"}}
	res := QAAndPatch(context.Background(), cli, QAInput{
		Draft:        draftOfWords(300),
		LengthChoice: "Short (100-200 words)",
	})
	assert.Equal(t, StatusPatched, res.Status)
	assert.Contains(t, res.Critique, "Tighten")
}

func TestQAWithinToleranceNotFlagged(t *testing.T) {
	// 260 words is over the 220 max but inside the 125% allowance; the
	// model critique decides, and it passes.
	cli := &fakeClient{replies: []string{"PASS"}}
	res := QAAndPatch(context.Background(), cli, QAInput{
		Draft:        draftOfWords(260),
		LengthChoice: "Short (100-200 words)",
	})
	assert.Equal(t, StatusPass, res.Status)
	require.Len(t, cli.calls, 1, "critique only, no patch")
}

func TestQACleanDraftPasses(t *testing.T) {
	cli := &fakeClient{replies: []string{"pass"}}
	res := QAAndPatch(context.Background(), cli, QAInput{
		Draft:        draftOfWords(150),
		LengthChoice: "Short (100-200 words)",
	})
	assert.Equal(t, StatusPass, res.Status, "PASS match is case-insensitive")
	assert.Equal(t, "PASS", res.Critique)
}

func TestQACritiqueThenPatch(t *testing.T) {
	cli := &fakeClient{replies: []string{"- Fix the CTA", "patched copy"}}
	res := QAAndPatch(context.Background(), cli, QAInput{
		Draft:        draftOfWords(150),
		LengthChoice: "Short (100-200 words)",
	})
	assert.Equal(t, StatusPatched, res.Status)
	assert.Equal(t, "patched copy", res.Copy)
	assert.Equal(t, "- Fix the CTA", res.Critique)
	require.Len(t, cli.calls, 2, "exactly one critique and one patch")
}

func TestQAPatchFailureKeepsOriginal(t *testing.T) {
	original := draftOfWords(150)
	cli := &fakeClient{
		replies: []string{"- Needs work", ""},
		errs:    []error{nil, errors.New("patch down")},
	}
	res := QAAndPatch(context.Background(), cli, QAInput{
		Draft:        original,
		LengthChoice: "Short (100-200 words)",
	})
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, original, res.Copy, "original draft survives a failed patch")
}

func TestQAEmptyDraft(t *testing.T) {
	cli := &fakeClient{}
	res := QAAndPatch(context.Background(), cli, QAInput{Draft: "   "})
	assert.Equal(t, StatusError, res.Status)
	assert.Empty(t, cli.calls)
}
