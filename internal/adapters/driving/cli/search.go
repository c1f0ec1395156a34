package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

var (
	searchRole  string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Ranks indexed chunks by similarity to the query and prints them
without generating an answer. Results are filtered by role before
being shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchRole, "role", "r", "public", "role the search runs as (admin, manager, employee, public)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if queryService == nil || indexService == nil {
		return errors.New("query service not configured")
	}

	if err := ensureIndex(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrNotInitialized) {
			return errors.New("no index available, run 'quarry index' first")
		}
		return fmt.Errorf("loading index: %w", err)
	}

	results, err := queryService.Search(cmd.Context(), query, searchLimit, domain.ParseRole(searchRole))
	if err != nil {
		if errors.Is(err, domain.ErrNotInitialized) {
			return errors.New("no index available, run 'quarry index' first")
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.4f)\n", i+1, r.Chunk.DocumentID, r.Similarity)
		cmd.Printf("      %s\n", snippet(r.Chunk.Content, 120))
	}
	return nil
}

// snippet truncates s for single-line display.
func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
