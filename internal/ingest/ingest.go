// Package ingest loads marketing creative from local files, URLs, and
// PDFs so the review pipelines can run against material that lives
// outside the terminal.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

type SourceKind string

const (
	KindURL   SourceKind = "url"
	KindPDF   SourceKind = "pdf"
	KindFile  SourceKind = "file"
	KindStdin SourceKind = "stdin"

	// maxInputSize caps any single creative source (25 MB).
	maxInputSize = 25 * 1024 * 1024
)

func (k SourceKind) String() string {
	return string(k)
}

// Material is a loaded piece of creative ready for the pipelines.
type Material struct {
	Text      string
	Title     string
	Origin    string
	WordCount int
}

// Loader turns a source reference into Material.
type Loader interface {
	Load(ctx context.Context, ref string) (*Material, error)
}

// DetectKind classifies a source reference: "-" reads stdin, http(s)
// URLs go through readability, .pdf files through the PDF extractor,
// anything else is read as plain text.
func DetectKind(ref string) SourceKind {
	if ref == "-" {
		return KindStdin
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return KindURL
	}
	if strings.HasSuffix(strings.ToLower(ref), ".pdf") {
		return KindPDF
	}
	return KindFile
}

// Load resolves ref with the loader its kind implies.
func Load(ctx context.Context, ref string) (*Material, error) {
	switch DetectKind(ref) {
	case KindStdin:
		return loadStdin()
	case KindURL:
		return (&URLLoader{}).Load(ctx, ref)
	case KindPDF:
		return (&PDFLoader{}).Load(ctx, ref)
	default:
		return (&FileLoader{}).Load(ctx, ref)
	}
}

func loadStdin() (*Material, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxInputSize))
	if err != nil {
		return nil, fmt.Errorf("could not read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("no creative provided on stdin")
	}
	return &Material{
		Text:      text,
		Title:     titleFromText(text, 80),
		Origin:    "stdin",
		WordCount: len(strings.Fields(text)),
	}, nil
}

func titleFromText(text string, maxLen int) string {
	line := text
	if idx := strings.IndexByte(text, '\n'); idx > 0 {
		line = text[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > maxLen {
		line = line[:maxLen] + "..."
	}
	if line == "" {
		return "Untitled"
	}
	return line
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() > maxInputSize {
		return fmt.Errorf("%s is too large (%d MB, max %d MB)", path, info.Size()/(1024*1024), maxInputSize/(1024*1024))
	}
	return nil
}
