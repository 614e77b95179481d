package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect and manage the vector index",
}

var indexCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the number of stored chunks",
	RunE:  runIndexCount,
}

var indexResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored chunks",
	RunE:  runIndexReset,
}

func init() {
	indexCmd.AddCommand(indexCountCmd)
	indexCmd.AddCommand(indexResetCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexCount(cmd *cobra.Command, _ []string) error {
	if vectorIndex == nil {
		return errors.New("vector index not configured")
	}

	count, err := vectorIndex.Count(context.Background())
	if err != nil {
		return fmt.Errorf("index count failed: %w", err)
	}

	cmd.Printf("%d chunks indexed\n", count)
	return nil
}

func runIndexReset(cmd *cobra.Command, _ []string) error {
	if vectorIndex == nil {
		return errors.New("vector index not configured")
	}

	if err := vectorIndex.Reset(context.Background()); err != nil {
		return fmt.Errorf("index reset failed: %w", err)
	}

	cmd.Println("Index reset.")
	return nil
}
