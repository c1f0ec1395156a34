package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/logger"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or load the document index",
	Long: `Loads the persisted index if one exists, otherwise builds it from
the corpus. Use --rebuild to ignore any existing snapshot and index the
corpus from scratch.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "discard any existing snapshot and re-index the corpus")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := cmd.Context()

	if !indexRebuild {
		err := indexService.Load(ctx)
		if err == nil {
			info := indexService.Info()
			cmd.Printf("Loaded index: %d chunks, %d terms\n", info.Chunks, info.Dimension)
			return nil
		}
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			if !errors.Is(err, domain.ErrSnapshotCorrupt) {
				return fmt.Errorf("loading index: %w", err)
			}
			logger.Error("snapshot unreadable, rebuilding: %v", err)
		}
	}

	stats, err := indexService.Build(ctx)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	cmd.Printf("Indexed %d documents into %d chunks\n", stats.Documents, stats.Chunks)
	return nil
}
