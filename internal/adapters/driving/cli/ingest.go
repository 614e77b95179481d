package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csec-astu/astu-assist/internal/core/domain"
)

var ingestAs string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a document into the index",
	Long: `Extracts text from a document, splits it into overlapping chunks,
embeds them and stores them in the local vector index.

Once any user account exists, ingestion requires an admin identity (--as).`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestAs, "as", "", "username performing the ingestion")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	raw := domain.RawDocument{
		Name:     filepath.Base(path),
		MIMEType: mimeTypeForPath(path),
		Content:  content,
	}

	result, err := ingestService.Ingest(context.Background(), raw, ingestAs)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("'%s' processed successfully: %d chunks stored\n", raw.Name, result.ChunksStored)
	return nil
}

// mimeTypeForPath derives the document format from the file extension.
// Unknown extensions map to an empty type, which the extractor registry
// rejects as unsupported.
func mimeTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	default:
		return ""
	}
}
