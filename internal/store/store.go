// Package store persists projects and the artifacts their pipelines
// produce (briefs, drafts, debate reports, headline tests) in a local
// SQLite database. Write-mostly: the portal saves everything it
// generates and reads artifacts back by project.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Artifact types written by the pipelines.
const (
	TypeBrief        = "brief"
	TypeDraft        = "draft"
	TypeQAReport     = "qa_report"
	TypeHeadlineTest = "headline_test"
	TypeFocusGroup   = "focus_group"
	TypePersonaChat  = "persona_chat"
	TypeSignals      = "signals"
)

// Project groups artifacts under one campaign or working session.
type Project struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Artifact is one saved pipeline output. ContentJSON holds the
// structured result when one exists; ContentText holds renderable copy.
type Artifact struct {
	ID          string
	ProjectID   string
	Type        string
	Title       string
	ContentJSON string
	ContentText string
	Metadata    map[string]string
	CreatedAt   time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL REFERENCES projects(id),
			type TEXT NOT NULL,
			title TEXT,
			content_json TEXT,
			content_text TEXT,
			metadata_json TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_project ON artifacts(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_artifacts_type ON artifacts(type);`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProject inserts a new project and returns it.
func (s *Store) CreateProject(ctx context.Context, name string) (Project, error) {
	p := Project{
		ID:        ulid.Make().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt)
	if err != nil {
		return Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

// FindOrCreateProject returns the newest project with the given name,
// creating one if none exists.
func (s *Store) FindOrCreateProject(ctx context.Context, name string) (Project, error) {
	var p Project
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM projects WHERE name = ? ORDER BY created_at DESC LIMIT 1`,
		name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return Project{}, fmt.Errorf("failed to look up project: %w", err)
	}
	return s.CreateProject(ctx, name)
}

// SaveArtifact persists one pipeline output and returns its id.
func (s *Store) SaveArtifact(ctx context.Context, a Artifact) (string, error) {
	if a.ProjectID == "" {
		return "", fmt.Errorf("artifact requires a project id")
	}
	if a.ID == "" {
		a.ID = ulid.Make().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	meta := "{}"
	if len(a.Metadata) > 0 {
		b, err := json.Marshal(a.Metadata)
		if err != nil {
			return "", fmt.Errorf("failed to encode artifact metadata: %w", err)
		}
		meta = string(b)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (id, project_id, type, title, content_json, content_text, metadata_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ProjectID, a.Type, a.Title, a.ContentJSON, a.ContentText, meta, a.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save artifact: %w", err)
	}
	return a.ID, nil
}

// ListArtifacts returns a project's artifacts, newest first. An empty
// artifactType matches all types.
func (s *Store) ListArtifacts(ctx context.Context, projectID, artifactType string) ([]Artifact, error) {
	query := `SELECT id, project_id, type, title, content_json, content_text, metadata_json, created_at
		FROM artifacts WHERE project_id = ?`
	args := []any{projectID}
	if artifactType != "" {
		query += ` AND type = ?`
		args = append(args, artifactType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		var meta string
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Type, &a.Title, &a.ContentJSON, &a.ContentText, &meta, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		if meta != "" && meta != "{}" {
			_ = json.Unmarshal([]byte(meta), &a.Metadata)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetArtifact fetches one artifact by id.
func (s *Store) GetArtifact(ctx context.Context, id string) (Artifact, error) {
	var a Artifact
	var meta string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, type, title, content_json, content_text, metadata_json, created_at
		 FROM artifacts WHERE id = ?`, id).
		Scan(&a.ID, &a.ProjectID, &a.Type, &a.Title, &a.ContentJSON, &a.ContentText, &meta, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return Artifact{}, fmt.Errorf("artifact %s not found", id)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to load artifact: %w", err)
	}
	if meta != "" && meta != "{}" {
		_ = json.Unmarshal([]byte(meta), &a.Metadata)
	}
	return a, nil
}
