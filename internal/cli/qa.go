package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MBurgo/omni/internal/creative"
	"github.com/MBurgo/omni/internal/ingest"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/store"
)

var qaCmd = &cobra.Command{
	Use:   "qa",
	Short: "QA a draft and patch it once if needed",
	Long: `Runs deterministic checks (length bounds, disclaimer line) first;
only a clean draft is sent to the model for critique. A failing draft
gets exactly one patch attempt.`,
	RunE: runQA,
}

var (
	flagQAInput    string
	flagQACopyType string
	flagQALength   string
	flagQACountry  string
	flagQATraits   string
)

func init() {
	qaCmd.Flags().StringVarP(&flagQAInput, "input", "i", "-", "Draft source: file, URL, PDF, or - for stdin")
	qaCmd.Flags().StringVar(&flagQACopyType, "copy-type", "Email", "Copy type the draft should match")
	qaCmd.Flags().StringVar(&flagQALength, "length", creative.DefaultLengthChoice, "Length bucket the draft should fit")
	qaCmd.Flags().StringVar(&flagQACountry, "country", "Australia", "Target market")
	qaCmd.Flags().StringVarP(&flagQATraits, "traits", "t", "", "Trait dials used when the draft was written")
	rootCmd.AddCommand(qaCmd)
}

func runQA(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx, span := tracer.Start(cmd.Context(), "qa")
	defer span.End()

	material, err := ingest.Load(ctx, flagQAInput)
	if err != nil {
		return err
	}
	traits, err := parseTraits(flagQATraits)
	if err != nil {
		return err
	}

	result := creative.QAAndPatch(ctx, a.router.Primary(), creative.QAInput{
		Draft:        material.Text,
		CopyType:     flagQACopyType,
		Country:      flagQACountry,
		LengthChoice: flagQALength,
		Traits:       traits,
		TraitConfig:  a.traitConfig(ctx),
		Model:        llm.CoerceModel(flagModel, llm.DefaultOpenAIFastModel),
	})

	fmt.Printf("Status: %s\n", result.Status)
	if result.Status != creative.StatusPass && result.Critique != "" {
		fmt.Println("\n=== CRITIQUE ===")
		fmt.Println(result.Critique)
	}
	if result.Status == creative.StatusPatched {
		fmt.Println("\n=== PATCHED COPY ===")
		fmt.Println(result.Copy)
	}

	a.save(ctx, store.TypeQAReport, fmt.Sprintf("QA (%s): %s", result.Status, material.Title),
		map[string]any{"status": result.Status, "critique": result.Critique}, result.Copy)
	if result.Status == creative.StatusError {
		return fmt.Errorf("qa could not complete: %s", result.Critique)
	}
	return nil
}
