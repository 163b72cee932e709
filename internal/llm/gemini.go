package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	genai "google.golang.org/genai"
)

// Gemini is the secondary provider. When it is unconfigured or a call
// fails, the same logical request is retried once against the primary
// client with the primary's default model — a silent fallback, per the
// portal's "never crash mid-workflow" rule. Only when both fail does
// the caller see an error (the primary's).
type Gemini struct {
	apiKey       string
	defaultModel string
	fallback     Client
	log          *slog.Logger
}

func NewGemini(apiKey string, fallback Client, log *slog.Logger) *Gemini {
	if log == nil {
		log = slog.Default()
	}
	return &Gemini{apiKey: apiKey, defaultModel: DefaultGeminiModel, fallback: fallback, log: log}
}

func (g *Gemini) Name() string { return "gemini" }

// blockOnlyHigh relaxes all four standard harm categories to the least
// restrictive setting. Marketing copy routinely trips default filters
// on persuasion/urgency language.
func blockOnlyHigh() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	out := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		out = append(out, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
		})
	}
	return out
}

func (g *Gemini) Call(ctx context.Context, req Request) (string, error) {
	out, err := g.call(ctx, req)
	if err == nil {
		return out, nil
	}
	if g.fallback == nil {
		return "", err
	}
	if !errors.Is(err, ErrNotConfigured) {
		g.log.Warn("gemini call failed, falling back to primary", "err", err)
	}
	fb := req
	fb.Model = "" // primary picks its own default
	return g.fallback.Call(ctx, fb)
}

func (g *Gemini) call(ctx context.Context, req Request) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: add google.api_key to secrets or set GOOGLE_API_KEY", ErrNotConfigured)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(req.Temperature)),
		SafetySettings:   blockOnlyHigh(),
		ResponseMIMEType: "text/plain",
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.ExpectJSON {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	resp, err := client.Models.GenerateContent(ctx, CoerceModel(req.Model, g.defaultModel), contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: response contained no text")
	}

	var parts []string
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "")), nil
}
