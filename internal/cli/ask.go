package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MBurgo/omni/internal/audience"
	"github.com/MBurgo/omni/internal/llm"
	"github.com/MBurgo/omni/internal/store"
)

var askCmd = &cobra.Command{
	Use:   "ask <persona> [question]",
	Short: "Ask a persona a question, in character",
	Long: `With a question argument, answers once and exits. Without one,
starts an interactive session carrying the last three exchanges.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the persona library",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		ps, err := a.loadPersonas()
		if err != nil {
			return err
		}
		for _, p := range ps {
			fmt.Printf("%-40s %s\n", p.UID, p.Label())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd, personasCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx, span := tracer.Start(cmd.Context(), "ask")
	defer span.End()

	p, err := a.findPersona(args[0])
	if err != nil {
		return err
	}
	cli := a.router.Primary()
	model := llm.CoerceModel(flagModel, llm.DefaultOpenAIModel)

	if len(args) == 2 {
		answer, aerr := audience.AskPersona(ctx, cli, model, p, args[1], nil)
		if aerr != nil {
			return aerr
		}
		fmt.Println(answer)
		a.save(ctx, store.TypePersonaChat, "Ask "+p.Name(),
			map[string]any{"persona": p.UID, "question": args[1]}, answer)
		return nil
	}

	fmt.Printf("Chatting with %s. Empty line to quit.\n", p.Label())
	var history []audience.Exchange
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			break
		}
		answer, aerr := audience.AskPersona(ctx, cli, model, p, q, history)
		if aerr != nil {
			return aerr
		}
		fmt.Println(answer)
		history = append(history, audience.Exchange{Question: q, Answer: answer})
	}
	return scanner.Err()
}
