package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type FileLoader struct{}

func (f *FileLoader) Load(ctx context.Context, ref string) (*Material, error) {
	if err := validateFile(ref); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", ref, err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("file %s is empty", ref)
	}

	return &Material{
		Text:      text,
		Title:     titleFromText(text, 80),
		Origin:    filepath.Base(ref),
		WordCount: len(strings.Fields(text)),
	}, nil
}
