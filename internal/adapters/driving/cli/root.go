// Package cli implements the quarry command line interface.
// Services are injected through package-level setters before Execute
// is called, so commands stay decoupled from construction.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/core/domain"
	"github.com/quarry-labs/quarry/internal/core/ports/driving"
	"github.com/quarry-labs/quarry/internal/logger"
)

var (
	indexService driving.IndexService
	queryService driving.QueryService

	// corpusDir is the directory the watch command observes.
	corpusDir string

	// generatorName is shown by the status command.
	generatorName string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Role-aware document search and question answering",
	Long: `Quarry indexes a directory of company documents and answers
questions against them. Results are filtered by the caller's role:
restricted documents are withheld and sensitive terms are redacted
before anything is shown.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, so long-running
// commands like watch stop on cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetIndexService injects the index service used by the commands.
func SetIndexService(s driving.IndexService) {
	indexService = s
}

// SetQueryService injects the query service used by the commands.
func SetQueryService(s driving.QueryService) {
	queryService = s
}

// SetCorpusDir tells the watch command which directory to observe.
func SetCorpusDir(dir string) {
	corpusDir = dir
}

// SetGeneratorName records the active generator for status output.
func SetGeneratorName(name string) {
	generatorName = name
}

// ensureIndex makes the persisted index live when none is yet. Every
// invocation is a fresh process, so query and search load the snapshot
// on demand rather than relying on an earlier in-process build. An
// absent snapshot maps to domain.ErrNotInitialized; anything else,
// including corruption, is surfaced so the user can re-index.
func ensureIndex(ctx context.Context) error {
	if indexService.Ready() {
		return nil
	}
	if err := indexService.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return domain.ErrNotInitialized
		}
		return err
	}
	return nil
}
