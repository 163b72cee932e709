package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

type URLLoader struct{}

func (u *URLLoader) Load(ctx context.Context, ref string) (*Material, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", ref, err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch URL %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not fetch URL %s: HTTP %d", ref, resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxInputSize)
	article, err := readability.FromReader(limited, parsed)
	if err != nil {
		return nil, fmt.Errorf("could not extract article from %s: %w", ref, err)
	}

	text := article.TextContent
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no readable content extracted from %s", ref)
	}

	title := article.Title
	if title == "" {
		title = titleFromText(text, 80)
	}

	return &Material{
		Text:      text,
		Title:     title,
		Origin:    ref,
		WordCount: len(strings.Fields(text)),
	}, nil
}
