package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFLoader struct{}

func (p *PDFLoader) Load(ctx context.Context, ref string) (*Material, error) {
	if err := validateFile(ref); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("could not read PDF %s: %w", ref, err)
	}
	defer f.Close()

	var sb strings.Builder
	numPages := r.NumPage()

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip pages that fail to extract
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("could not extract text from PDF %s, it may be scanned or image-based", ref)
	}

	return &Material{
		Text:      text,
		Title:     titleFromText(text, 80),
		Origin:    filepath.Base(ref),
		WordCount: len(strings.Fields(text)),
	}, nil
}
