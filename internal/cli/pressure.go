package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MBurgo/omni/internal/audience"
	"github.com/MBurgo/omni/internal/ingest"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/store"
)

var pressureCmd = &cobra.Command{
	Use:   "pressure-test",
	Short: "Run a believer/skeptic focus-group debate over a piece of creative",
	Long: `Two personas argue over the creative (believer first, skeptic second,
one rebuttal each), then a moderator synthesises the debate into
feedback and a rewrite suggestion.`,
	RunE: runPressure,
}

var (
	flagPressureInput     string
	flagPressureBeliever  string
	flagPressureSkeptic   string
	flagPressureCopyType  string
	flagPressureScope     string
	flagPressureExcerpt   string
	flagPressureNWords    int
	flagPressureBrief     bool
	flagPressureModerator string
)

func init() {
	pressureCmd.Flags().StringVarP(&flagPressureInput, "input", "i", "-", "Creative source: file, URL, PDF, or - for stdin")
	pressureCmd.Flags().StringVar(&flagPressureBeliever, "believer", "", "Persona id for the believer seat (required)")
	pressureCmd.Flags().StringVar(&flagPressureSkeptic, "skeptic", "", "Persona id for the skeptic seat (required)")
	pressureCmd.Flags().StringVar(&flagPressureCopyType, "copy-type", "Email", "Copy type: Headline, Email, Sales Page, or Other")
	pressureCmd.Flags().StringVar(&flagPressureScope, "scope", "first-n", "What participants see: first-n, full, or custom")
	pressureCmd.Flags().StringVar(&flagPressureExcerpt, "excerpt", "", "Excerpt source for --scope custom: file, URL, PDF, or - for stdin")
	pressureCmd.Flags().IntVar(&flagPressureNWords, "n-words", 450, "Excerpt length for --scope first-n")
	pressureCmd.Flags().BoolVar(&flagPressureBrief, "extract-brief", false, "Extract a structured brief before the debate")
	pressureCmd.Flags().StringVar(&flagPressureModerator, "moderator-model", "", "Moderator model id (secondary provider default otherwise)")
	_ = pressureCmd.MarkFlagRequired("believer")
	_ = pressureCmd.MarkFlagRequired("skeptic")
	rootCmd.AddCommand(pressureCmd)
}

func runPressure(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, span := tracer.Start(cmd.Context(), "pressure-test",
		trace.WithAttributes(attribute.String("copy_type", flagPressureCopyType)),
	)
	defer span.End()

	material, err := ingest.Load(ctx, flagPressureInput)
	if err != nil {
		return err
	}

	believer, err := a.findPersona(flagPressureBeliever)
	if err != nil {
		return err
	}
	skeptic, err := a.findPersona(flagPressureSkeptic)
	if err != nil {
		return err
	}

	scope, err := resolveScope(flagPressureScope, flagPressureExcerpt)
	if err != nil {
		return err
	}
	var customExcerpt string
	if scope == audience.ScopeCustom {
		excerpt, eerr := ingest.Load(ctx, flagPressureExcerpt)
		if eerr != nil {
			return fmt.Errorf("could not load excerpt: %w", eerr)
		}
		customExcerpt = excerpt.Text
	}

	result := audience.FocusGroupDebate(ctx, audience.Clients{
		Participant: a.router.Primary(),
		Extractor:   a.router.Primary(),
		Moderator:   a.router.Secondary(),
	}, audience.FocusGroupInput{
		Believer:       believer,
		Skeptic:        skeptic,
		Creative:       material.Text,
		CopyType:       flagPressureCopyType,
		Scope:          scope,
		NWords:         flagPressureNWords,
		CustomExcerpt:  customExcerpt,
		ExtractBrief:   flagPressureBrief,
		BriefModel:     llm.DefaultOpenAIFastModel,
		Model:          llm.CoerceModel(flagModel, llm.DefaultOpenAIModel),
		ModeratorModel: llm.CoerceModel(flagPressureModerator, llm.DefaultGeminiModel),
	})

	if result.Transcript != "" {
		fmt.Println("=== DEBATE ===")
		fmt.Println(result.Transcript)
	}
	if len(result.RiskFlags) > 0 {
		fmt.Println("\n=== RISK FLAGS ===")
		for _, f := range result.RiskFlags {
			fmt.Println("- " + f)
		}
	}
	if result.ModeratorJSON != nil {
		fmt.Println("\n=== MODERATOR ===")
		printJSON(result.ModeratorJSON)
	} else if result.ModeratorRaw != "" {
		fmt.Println("\n=== MODERATOR (raw) ===")
		fmt.Println(result.ModeratorRaw)
	}
	if result.Err != "" {
		fmt.Printf("\n(degraded: %s)\n", result.Err)
	}

	a.save(ctx, store.TypeFocusGroup, "Pressure test: "+material.Title, result, result.Transcript)
	return nil
}

// resolveScope maps the --scope flag to an excerpt scope. Custom scope
// needs a separate --excerpt source so participants can react to text
// that differs from the creative under test.
func resolveScope(scopeFlag, excerptRef string) (audience.ExcerptScope, error) {
	switch scopeFlag {
	case "first-n":
		return audience.ScopeFirstN, nil
	case "full":
		return audience.ScopeFullCapped, nil
	case "custom":
		if excerptRef == "" {
			return "", fmt.Errorf("--scope custom requires --excerpt (file, URL, PDF, or -)")
		}
		return audience.ScopeCustom, nil
	default:
		return "", fmt.Errorf("invalid scope %q: must be first-n, full, or custom", scopeFlag)
	}
}
