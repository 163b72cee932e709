package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MBurgo/omni/internal/audience"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/persona"
	"github.com/MBurgo/omni/internal/store"
)

var headlinesCmd = &cobra.Command{
	Use:   "headlines [headline ...]",
	Short: "Test headlines against a persona panel and pick a winner",
	RunE:  runHeadlines,
}

var (
	flagHeadlinesFile    string
	flagHeadlinePersonas string
	flagHeadlineContext  string
)

func init() {
	headlinesCmd.Flags().StringVarP(&flagHeadlinesFile, "file", "f", "", "File with one headline per line (use instead of args)")
	headlinesCmd.Flags().StringVarP(&flagHeadlinePersonas, "panel", "p", "", "Comma-separated persona ids (default: whole library)")
	headlinesCmd.Flags().StringVar(&flagHeadlineContext, "context", "", "Optional campaign context shown to each persona")
	rootCmd.AddCommand(headlinesCmd)
}

func runHeadlines(cmd *cobra.Command, args []string) error {
	headlines := args
	if flagHeadlinesFile != "" {
		data, err := os.ReadFile(flagHeadlinesFile)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", flagHeadlinesFile, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				headlines = append(headlines, line)
			}
		}
	}
	if len(headlines) < 2 {
		return fmt.Errorf("need at least 2 headlines to run a test")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	panel, err := a.headlinePanel()
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(cmd.Context(), "headlines",
		trace.WithAttributes(attribute.Int("headline_count", len(headlines))),
	)
	defer span.End()

	cli := a.router.Primary()
	model := llm.CoerceModel(flagModel, llm.DefaultOpenAIFastModel)

	reports := make([]audience.HeadlineReport, 0, len(panel))
	for _, p := range panel {
		a.log.InfoContext(ctx, "testing headlines", "persona", p.UID)
		r := audience.TestHeadlines(ctx, cli, model, p, headlines, flagHeadlineContext)
		if r.Err != "" {
			a.log.WarnContext(ctx, "persona report degraded", "persona", p.UID, "error", r.Err)
		}
		reports = append(reports, r)
	}

	scores := audience.AggregateScores(reports, len(headlines))
	winner := audience.Winner(scores, len(headlines))

	fmt.Println("Scores:")
	for i := 1; i <= len(headlines); i++ {
		marker := " "
		if i == winner {
			marker = "*"
		}
		fmt.Printf("%s %2d pts  %d. %s\n", marker, scores[i], i, headlines[i-1])
	}
	fmt.Printf("\nWinner: %d. %s\n", winner, headlines[winner-1])

	for i, r := range reports {
		fmt.Printf("\n--- %s ---\n", panel[i].Label())
		if r.Err != "" {
			fmt.Printf("(no report: %s)\n", r.Err)
			continue
		}
		for _, t := range r.Top3 {
			fmt.Printf("#%d -> headline %d: %s\n", t.Rank, t.HeadlineIndex, t.Why)
		}
		if r.BestAngle != "" {
			fmt.Printf("Best angle: %s\n", r.BestAngle)
		}
	}

	a.save(ctx, store.TypeHeadlineTest, "Headline test ("+fmt.Sprint(len(headlines))+" headlines)",
		map[string]any{"headlines": headlines, "scores": scores, "winner": winner, "reports": reports}, "")
	return nil
}

func (a *app) headlinePanel() ([]persona.Persona, error) {
	all, err := a.loadPersonas()
	if err != nil {
		return nil, err
	}
	if flagHeadlinePersonas == "" {
		return all, nil
	}
	var panel []persona.Persona
	for _, key := range strings.Split(flagHeadlinePersonas, ",") {
		p, err := a.findPersona(strings.TrimSpace(key))
		if err != nil {
			return nil, err
		}
		panel = append(panel, p)
	}
	return panel, nil
}
