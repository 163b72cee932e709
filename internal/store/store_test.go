package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "omni.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProjectLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p1, err := s.CreateProject(ctx, "spring-campaign")
	require.NoError(t, err)
	assert.NotEmpty(t, p1.ID)

	// Same name resolves to the existing project.
	p2, err := s.FindOrCreateProject(ctx, "spring-campaign")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)

	// A new name creates a fresh one.
	p3, err := s.FindOrCreateProject(ctx, "autumn-campaign")
	require.NoError(t, err)
	assert.NotEqual(t, p1.ID, p3.ID)
}

func TestArtifactRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, "test")
	require.NoError(t, err)

	id, err := s.SaveArtifact(ctx, Artifact{
		ProjectID:   p.ID,
		Type:        TypeDraft,
		Title:       "First draft",
		ContentJSON: `{"plan": "x"}`,
		ContentText: "## Headline\nBody.",
		Metadata:    map[string]string{"copy_type": "Email"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.GetArtifact(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "First draft", got.Title)
	assert.Equal(t, TypeDraft, got.Type)
	assert.Equal(t, "## Headline\nBody.", got.ContentText)
	assert.Equal(t, "Email", got.Metadata["copy_type"])
}

func TestListArtifactsFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, "test")
	require.NoError(t, err)

	_, err = s.SaveArtifact(ctx, Artifact{ProjectID: p.ID, Type: TypeDraft, Title: "d"})
	require.NoError(t, err)
	_, err = s.SaveArtifact(ctx, Artifact{ProjectID: p.ID, Type: TypeQAReport, Title: "q"})
	require.NoError(t, err)

	all, err := s.ListArtifacts(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	drafts, err := s.ListArtifacts(ctx, p.ID, TypeDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "d", drafts[0].Title)
}

func TestSaveArtifactRequiresProject(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SaveArtifact(context.Background(), Artifact{Type: TypeDraft})
	assert.Error(t, err)
}

func TestGetArtifactNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetArtifact(context.Background(), "01J00000000000000000000000")
	assert.Error(t, err)
}
