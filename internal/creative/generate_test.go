package creative

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBurgo/omni/internal/llm"
)

type fakeClient struct {
	replies []string
	errs    []error
	calls   []llm.Request
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) Call(ctx context.Context, req llm.Request) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, req)
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return reply, err
}

func TestGenerateWithPlan(t *testing.T) {
	cli := &fakeClient{replies: []string{`{"plan": "- hook first", "copy": "## Headline\nBody."}`}}
	res := GenerateWithPlan(context.Background(), cli, GenerateInput{CopyType: "Email"})
	require.Empty(t, res.Err)
	assert.Equal(t, "- hook first", res.Plan)
	assert.Equal(t, "## Headline\nBody.", res.Copy)

	require.Len(t, cli.calls, 1)
	assert.True(t, cli.calls[0].ExpectJSON)
	assert.Equal(t, 0.7, cli.calls[0].Temperature)
}

func TestGenerateWithPlanFallsBackToRaw(t *testing.T) {
	// Model ignored the JSON contract entirely; the whole (de-fenced)
	// response becomes the copy.
	cli := &fakeClient{replies: []string{"```\nJust the copy, no JSON.\n```"}}
	res := GenerateWithPlan(context.Background(), cli, GenerateInput{})
	require.Empty(t, res.Err)
	assert.Equal(t, "Just the copy, no JSON.", res.Copy)
	assert.Empty(t, res.Plan)
}

func TestGenerateWithPlanNormalisesEscapedNewlines(t *testing.T) {
	cli := &fakeClient{replies: []string{`{"plan": "p", "copy": "Line one\\nLine two"}`}}
	res := GenerateWithPlan(context.Background(), cli, GenerateInput{})
	assert.Equal(t, "Line one\nLine two", res.Copy)
}

func TestGenerateWithPlanError(t *testing.T) {
	cli := &fakeClient{errs: []error{errors.New("down")}}
	res := GenerateWithPlan(context.Background(), cli, GenerateInput{})
	assert.Equal(t, "down", res.Err)
	assert.Empty(t, res.Copy)
}

func TestRewritePreserveStructure(t *testing.T) {
	cli := &fakeClient{replies: []string{`{"plan": "p", "copy": "revised"}`}}
	res := RewritePreserveStructure(context.Background(), cli, GenerateInput{
		OriginalCopy: "## Old\ntext",
	})
	require.Empty(t, res.Err)
	assert.Equal(t, "revised", res.Copy)

	prompt := cli.calls[0].Messages[0].Content
	assert.Contains(t, prompt, "## Old")
	assert.Equal(t, 0.6, cli.calls[0].Temperature)
}

func TestVariants(t *testing.T) {
	cli := &fakeClient{replies: []string{`{"headlines": ["H1", "", "H2", "H3"], "ctas": ["C1", "C2"]}`}}
	res := Variants(context.Background(), cli, "", "copy", 2)
	assert.Equal(t, []string{"H1", "H2"}, res.Headlines, "blanks dropped, clipped to n")
	assert.Equal(t, []string{"C1", "C2"}, res.CTAs)
}

func TestVariantsParseFailure(t *testing.T) {
	cli := &fakeClient{replies: []string{"no json"}}
	res := Variants(context.Background(), cli, "", "copy", 3)
	assert.Empty(t, res.Headlines)
	assert.Empty(t, res.CTAs)
	assert.Equal(t, "no json", res.Raw)
}
