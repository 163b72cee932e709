package llm

import (
	"log/slog"
	"strings"
)

// Router holds one client per provider identity and resolves the
// provider names the UI layer passes around.
type Router struct {
	primary   Client
	secondary Client
}

func NewRouter(openaiKey, googleKey string, log *slog.Logger) *Router {
	primary := NewOpenAI(openaiKey)
	return &Router{
		primary:   primary,
		secondary: NewGemini(googleKey, primary, log),
	}
}

func (r *Router) Primary() Client   { return r.primary }
func (r *Router) Secondary() Client { return r.secondary }

// For maps a provider label to a client. Unknown labels get the
// primary, matching the portal's "OpenAI unless asked otherwise" rule.
func (r *Router) For(provider string) Client {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gemini", "google", "google (gemini)":
		return r.secondary
	default:
		return r.primary
	}
}
