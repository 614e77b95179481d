package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage chat history",
}

var historyListCmd = &cobra.Command{
	Use:   "list [username]",
	Short: "Show a user's chat history, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [username]",
	Short: "Delete a user's chat history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.List(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("history list failed: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No history.")
		return nil
	}

	for _, record := range records {
		cmd.Printf("[%s] Q: %s\n", record.CreatedAt.Format("2006-01-02 15:04"), record.Question)
		cmd.Printf("         A: %s\n\n", record.Answer)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Clear(context.Background(), args[0]); err != nil {
		return fmt.Errorf("history clear failed: %w", err)
	}

	cmd.Println("History cleared.")
	return nil
}
