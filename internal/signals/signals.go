// Package signals enriches search-result style market signals with page
// meta descriptions. Fetching is best-effort with a hard concurrency
// cap; a partial result set is always acceptable.
package signals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"
)

const (
	maxConcurrentFetches = 10
	fetchTimeout         = 10 * time.Second
	maxFetchBytes        = 2 * 1024 * 1024
	maxDescriptionChars  = 300
)

// Signal is one headline-level market signal, optionally enriched with
// a short description pulled from the linked page.
type Signal struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	Published   string `json:"published,omitempty"`
	Description string `json:"description,omitempty"`
}

// Collector fetches page descriptions for signals. The zero value is
// not usable; construct with NewCollector.
type Collector struct {
	client *http.Client
}

func NewCollector() *Collector {
	return &Collector{client: &http.Client{Timeout: fetchTimeout}}
}

// Enrich fills Description for each signal by fetching its link, at
// most maxConcurrentFetches at a time. A failed or empty fetch leaves
// the description blank; Enrich itself never fails.
func (c *Collector) Enrich(ctx context.Context, signals []Signal) []Signal {
	out := make([]Signal, len(signals))
	copy(out, signals)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i := range out {
		g.Go(func() error {
			if strings.TrimSpace(out[i].Link) == "" {
				return nil
			}
			desc, err := c.fetchDescription(ctx, out[i].Link)
			if err == nil {
				out[i].Description = desc
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return out
}

func (c *Collector) fetchDescription(ctx context.Context, link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", link, err)
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not fetch %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("could not fetch %s: HTTP %d", link, resp.StatusCode)
	}

	limited := io.LimitReader(resp.Body, maxFetchBytes)
	article, err := readability.FromReader(limited, parsed)
	if err != nil {
		return "", fmt.Errorf("could not parse %s: %w", link, err)
	}

	desc := strings.TrimSpace(article.Excerpt)
	if desc == "" {
		desc = strings.TrimSpace(article.TextContent)
	}
	if desc == "" {
		return "", nil
	}
	if len(desc) > maxDescriptionChars {
		desc = strings.TrimRight(desc[:maxDescriptionChars], " ") + "..."
	}
	return desc, nil
}

// PromptBlock renders signals as a bullet block suitable for pasting
// into a generation prompt's "current market context" section.
func PromptBlock(signals []Signal) string {
	var sb strings.Builder
	for _, s := range signals {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			continue
		}
		sb.WriteString("- " + title)
		if src := strings.TrimSpace(s.Source); src != "" {
			sb.WriteString(" (" + src + ")")
		}
		if desc := strings.TrimSpace(s.Description); desc != "" {
			sb.WriteString(": " + desc)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
