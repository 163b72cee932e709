package llm

// Central model ids + defaults, so individual pipelines never hardcode
// them. Ids are opaque strings passed through to the provider — any new
// model works without code changes.

var OpenAIChatModels = []string{
	"gpt-4.1",
	"o3",
	"gpt-4o",
	"gpt-4o-mini",
}

const (
	DefaultOpenAIModel     = "gpt-4.1"
	DefaultOpenAIFastModel = "gpt-4o-mini"
)

// gemini-1.5-* models were shut down on 2025-09-29; keep this list to
// models the Gemini API still serves.
var GeminiModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
}

const (
	DefaultGeminiModel      = "gemini-2.5-pro"
	DefaultGeminiFastModel  = "gemini-2.5-flash"
	DefaultGeminiCheapModel = "gemini-2.5-flash-lite"
)

// CoerceModel returns the fallback default for blank model ids.
func CoerceModel(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
