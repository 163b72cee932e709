package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MBurgo/omni/internal/brief"
	"github.com/MBurgo/omni/internal/ingest"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/store"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Build or extract a campaign brief",
}

var briefExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the 8-field brief from free-form notes",
	RunE:  runBriefExtract,
}

var briefChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Build a brief through a question-at-a-time dialogue",
	RunE:  runBriefChat,
}

var (
	flagBriefInput    string
	flagBriefCopyType string
	flagBriefLength   string
	flagBriefCountry  string
)

func init() {
	briefExtractCmd.Flags().StringVarP(&flagBriefInput, "input", "i", "-", "Notes source: file, URL, PDF, or - for stdin")
	briefChatCmd.Flags().StringVar(&flagBriefCopyType, "copy-type", "Email", "Copy type the brief is for")
	briefChatCmd.Flags().StringVar(&flagBriefLength, "length", "", "Length bucket the brief is for")
	briefChatCmd.Flags().StringVar(&flagBriefCountry, "country", "Australia", "Target market")
	briefCmd.AddCommand(briefExtractCmd, briefChatCmd)
	rootCmd.AddCommand(briefCmd)
}

func runBriefExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, span := tracer.Start(cmd.Context(), "brief.extract")
	defer span.End()

	material, err := ingest.Load(ctx, flagBriefInput)
	if err != nil {
		return err
	}

	model := llm.CoerceModel(flagModel, llm.DefaultOpenAIFastModel)
	result := brief.Extract(ctx, a.router.Primary(), model, material.Text)
	if result.Err != "" {
		if result.Raw != "" {
			fmt.Fprintln(os.Stderr, result.Raw)
		}
		return fmt.Errorf("brief extraction failed: %s", result.Err)
	}

	printJSON(result.Brief)
	a.save(ctx, store.TypeBrief, "Brief: "+material.Title, result.Brief, result.Brief.Summary())
	return nil
}

func runBriefChat(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, span := tracer.Start(cmd.Context(), "brief.chat")
	defer span.End()

	cli := a.router.Primary()
	model := llm.CoerceModel(flagModel, llm.DefaultOpenAIFastModel)

	var current brief.Brief
	var history []llm.Message

	fmt.Println("Describe your campaign. Empty line to finish, Ctrl-D to abort.")
	fmt.Println("\nQ: What are you promoting, and who is it for?")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		history = append(history, llm.Message{Role: llm.RoleUser, Content: line})

		turn := brief.BuilderTurn(ctx, cli, brief.TurnInput{
			History:      history,
			Current:      current,
			CopyType:     flagBriefCopyType,
			LengthChoice: flagBriefLength,
			Country:      flagBriefCountry,
			Model:        model,
		})
		if turn.Err != "" {
			a.log.WarnContext(ctx, "brief turn degraded", "error", turn.Err)
		}
		current = turn.Brief
		history = append(history, llm.Message{Role: llm.RoleAssistant, Content: turn.NextQuestion})

		if turn.Ready() {
			break
		}
		fmt.Printf("\nQ: %s\n", turn.NextQuestion)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Println("\n=== BRIEF ===")
	printJSON(current)
	a.save(ctx, store.TypeBrief, "Brief (dialogue)", current, current.Summary())
	return nil
}
