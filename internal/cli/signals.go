package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MBurgo/omni/internal/signals"
	"github.com/MBurgo/omni/internal/store"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Enrich market signals with page descriptions",
	Long: `Reads a JSON array of signals ({title, link, source, published}),
fetches each link to fill in a short description, and prints the
enriched set plus a prompt-ready bullet block. Failed fetches just
leave the description blank.`,
	RunE: runSignals,
}

var (
	flagSignalsInput string
	flagSignalsBlock bool
)

func init() {
	signalsCmd.Flags().StringVarP(&flagSignalsInput, "input", "i", "-", "Signals JSON file, or - for stdin")
	signalsCmd.Flags().BoolVar(&flagSignalsBlock, "prompt-block", false, "Print only the prompt-ready bullet block")
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx, span := tracer.Start(cmd.Context(), "signals")
	defer span.End()

	var data []byte
	if flagSignalsInput == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(flagSignalsInput)
	}
	if err != nil {
		return err
	}

	var sigs []signals.Signal
	if err := json.Unmarshal(data, &sigs); err != nil {
		return fmt.Errorf("could not parse signals: %w", err)
	}
	if len(sigs) == 0 {
		return fmt.Errorf("no signals in input")
	}

	enriched := signals.NewCollector().Enrich(ctx, sigs)

	if flagSignalsBlock {
		fmt.Println(signals.PromptBlock(enriched))
	} else {
		printJSON(enriched)
		fmt.Println("\n=== PROMPT BLOCK ===")
		fmt.Println(signals.PromptBlock(enriched))
	}

	a.save(ctx, store.TypeSignals, fmt.Sprintf("Signals (%d)", len(enriched)), enriched, signals.PromptBlock(enriched))
	return nil
}
