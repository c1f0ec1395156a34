package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and system status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	// Best effort: report the persisted index when one exists, but a
	// missing or broken snapshot still leaves status usable.
	if !indexService.Ready() {
		_ = indexService.Load(cmd.Context())
	}

	info := indexService.Info()

	cmd.Printf("Ready:      %v\n", info.Ready)
	cmd.Printf("Chunks:     %d\n", info.Chunks)
	cmd.Printf("Vocabulary: %d terms\n", info.Dimension)
	cmd.Printf("Snapshot:   %s\n", info.SnapshotPath)
	if corpusDir != "" {
		cmd.Printf("Corpus:     %s\n", corpusDir)
	}
	if generatorName != "" {
		cmd.Printf("Generator:  %s\n", generatorName)
	}

	docs, err := indexService.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	cmd.Printf("Documents:  %d\n", len(docs))

	return nil
}
