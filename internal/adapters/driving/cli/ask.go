package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askAs string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested documents",
	Long: `Answers a question using the local vector index for grounding.
With an empty index the question is answered from general knowledge.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askAs, "as", "", "username to attribute the question to")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return errors.New("question must not be empty")
	}

	if answerService == nil {
		return errors.New("answering requires a Gemini API key (set GEMINI_API_KEY)")
	}

	answer, err := answerService.Answer(context.Background(), question, askAs)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Answer)
	cmd.Println()
	if len(answer.Sources) > 0 {
		cmd.Printf("Sources: %s\n", strings.Join(answer.Sources, ", "))
	}
	cmd.Printf("Confidence: %.3f | Chunks: %d | Time: %s\n",
		answer.Confidence, answer.ChunksUsed, answer.ProcessTime)
	return nil
}
