package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MBurgo/omni/internal/brief"
	"github.com/MBurgo/omni/internal/creative"
	"github.com/MBurgo/omni/internal/ingest"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/store"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Generate copy from a brief (plan-then-write)",
	RunE:  runWrite,
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite existing copy under new trait dials, preserving structure",
	RunE:  runRewrite,
}

var reviseCmd = &cobra.Command{
	Use:   "revise",
	Short: "Revise existing copy toward a stated goal",
	RunE:  runRevise,
}

var adaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Localise copy from one market to another",
	RunE:  runAdapt,
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Generate alternative headlines and CTA labels for existing copy",
	RunE:  runVariants,
}

var (
	flagWriteBrief    string
	flagWriteCopyType string
	flagWriteLength   string
	flagWriteCountry  string
	flagWriteTraits   string
	flagWriteExtra    string
	flagWriteInput    string
	flagWriteGoal     string
	flagWriteSource   string
	flagWriteTarget   string
	flagWriteN        int
	flagWritePlan     bool
)

func init() {
	for _, c := range []*cobra.Command{writeCmd, rewriteCmd} {
		c.Flags().StringVarP(&flagWriteBrief, "brief", "b", "", "Brief JSON file (from `omni brief extract/chat`)")
		c.Flags().StringVar(&flagWriteCopyType, "copy-type", "Email", "Copy type: Headline, Email, Sales Page, Landing Page, Ad")
		c.Flags().StringVar(&flagWriteLength, "length", creative.DefaultLengthChoice, "Length bucket")
		c.Flags().StringVar(&flagWriteCountry, "country", "Australia", "Target market")
		c.Flags().StringVarP(&flagWriteTraits, "traits", "t", "", "Trait dials, e.g. optimism=9,urgency=7")
		c.Flags().StringVar(&flagWriteExtra, "notes", "", "Extra instructions for this run")
		c.Flags().BoolVar(&flagWritePlan, "show-plan", false, "Print the internal plan before the copy")
	}
	rewriteCmd.Flags().StringVarP(&flagWriteInput, "input", "i", "-", "Existing copy: file, URL, PDF, or - for stdin")

	reviseCmd.Flags().StringVarP(&flagWriteInput, "input", "i", "-", "Existing copy: file, URL, PDF, or - for stdin")
	reviseCmd.Flags().StringVar(&flagWriteGoal, "goal", "", "What the revision should achieve (required)")
	reviseCmd.Flags().StringVar(&flagWriteCountry, "country", "Australia", "Target market")
	reviseCmd.Flags().StringVar(&flagWriteExtra, "notes", "", "Extra notes for the editor")
	_ = reviseCmd.MarkFlagRequired("goal")

	adaptCmd.Flags().StringVarP(&flagWriteInput, "input", "i", "-", "Existing copy: file, URL, PDF, or - for stdin")
	adaptCmd.Flags().StringVar(&flagWriteSource, "from", "United States", "Market the copy was written for")
	adaptCmd.Flags().StringVar(&flagWriteTarget, "to", "Australia", "Market to adapt the copy to")
	adaptCmd.Flags().StringVar(&flagWriteExtra, "notes", "", "Optional brief notes for context")

	variantsCmd.Flags().StringVarP(&flagWriteInput, "input", "i", "-", "Existing copy: file, URL, PDF, or - for stdin")
	variantsCmd.Flags().IntVarP(&flagWriteN, "count", "n", 5, "How many of each to generate")

	rootCmd.AddCommand(writeCmd, rewriteCmd, reviseCmd, adaptCmd, variantsCmd)
}

func loadBriefFile(path string) (brief.Brief, error) {
	if path == "" {
		return brief.Brief{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return brief.Brief{}, fmt.Errorf("could not read brief %s: %w", path, err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return brief.Brief{}, fmt.Errorf("could not parse brief %s: %w", path, err)
	}
	return brief.Coerce(obj), nil
}

func runWrite(cmd *cobra.Command, args []string) error {
	return runPlanCommand(cmd, "", store.TypeDraft, "Draft")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	return runPlanCommand(cmd, flagWriteInput, store.TypeDraft, "Rewrite")
}

func runPlanCommand(cmd *cobra.Command, inputRef, artifactType, titlePrefix string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx, span := tracer.Start(cmd.Context(), cmd.Name())
	defer span.End()

	b, err := loadBriefFile(flagWriteBrief)
	if err != nil {
		return err
	}
	traits, err := parseTraits(flagWriteTraits)
	if err != nil {
		return err
	}

	in := creative.GenerateInput{
		CopyType:          flagWriteCopyType,
		Country:           flagWriteCountry,
		Traits:            traits,
		Brief:             b,
		LengthChoice:      flagWriteLength,
		TraitConfig:       a.traitConfig(ctx),
		Model:             llm.CoerceModel(flagModel, llm.DefaultOpenAIModel),
		ExtraInstructions: flagWriteExtra,
	}

	var result creative.PlanResult
	if inputRef == "" {
		result = creative.GenerateWithPlan(ctx, a.router.Primary(), in)
	} else {
		material, merr := ingest.Load(ctx, inputRef)
		if merr != nil {
			return merr
		}
		in.OriginalCopy = material.Text
		result = creative.RewritePreserveStructure(ctx, a.router.Primary(), in)
	}
	if result.Err != "" {
		return fmt.Errorf("%s failed: %s", titlePrefix, result.Err)
	}

	if flagWritePlan && result.Plan != "" {
		fmt.Println("=== PLAN ===")
		fmt.Println(result.Plan)
		fmt.Println("\n=== COPY ===")
	}
	fmt.Println(result.Copy)

	a.save(ctx, artifactType, fmt.Sprintf("%s: %s (%s)", titlePrefix, flagWriteCopyType, flagWriteLength),
		map[string]any{"plan": result.Plan, "brief": b, "traits": traits}, result.Copy)
	return nil
}

func runRevise(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx, span := tracer.Start(cmd.Context(), "revise")
	defer span.End()

	material, err := ingest.Load(ctx, flagWriteInput)
	if err != nil {
		return err
	}

	model := llm.CoerceModel(flagModel, llm.DefaultOpenAIModel)
	out, err := creative.ReviseForGoal(ctx, a.router.Primary(), model, flagWriteCountry, flagWriteGoal, material.Text, flagWriteExtra)
	if err != nil {
		return fmt.Errorf("revision failed: %w", err)
	}
	fmt.Println(out)

	a.save(ctx, store.TypeDraft, "Revision: "+flagWriteGoal, nil, out)
	return nil
}

func runAdapt(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx, span := tracer.Start(cmd.Context(), "adapt")
	defer span.End()

	material, err := ingest.Load(ctx, flagWriteInput)
	if err != nil {
		return err
	}

	model := llm.CoerceModel(flagModel, llm.DefaultOpenAIModel)
	out, err := creative.AdaptCountry(ctx, a.router.Primary(), model, flagWriteSource, flagWriteTarget, material.Text, flagWriteExtra)
	if err != nil {
		return fmt.Errorf("adaptation failed: %w", err)
	}
	fmt.Println(out)

	a.save(ctx, store.TypeDraft, fmt.Sprintf("Adaptation: %s to %s", flagWriteSource, flagWriteTarget), nil, out)
	return nil
}

func runVariants(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx, span := tracer.Start(cmd.Context(), "variants")
	defer span.End()

	material, err := ingest.Load(ctx, flagWriteInput)
	if err != nil {
		return err
	}

	model := llm.CoerceModel(flagModel, llm.DefaultOpenAIFastModel)
	result := creative.Variants(ctx, a.router.Primary(), model, material.Text, flagWriteN)
	if len(result.Headlines) == 0 && len(result.CTAs) == 0 {
		fmt.Fprintln(os.Stderr, result.Raw)
		return fmt.Errorf("no variants could be parsed from the response")
	}

	fmt.Println("Headlines:")
	for _, h := range result.Headlines {
		fmt.Println("- " + h)
	}
	fmt.Println("\nCTAs:")
	for _, c := range result.CTAs {
		fmt.Println("- " + c)
	}

	a.save(ctx, store.TypeDraft, "Variants: "+material.Title,
		map[string]any{"headlines": result.Headlines, "ctas": result.CTAs}, "")
	return nil
}
