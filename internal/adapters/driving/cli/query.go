package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

var (
	queryRole string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question against the indexed documents",
	Long: `Retrieves the most relevant chunks for the question, filters them
by the given role and generates an answer from the surviving context.
Unknown roles are treated as public.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryRole, "role", "r", "public", "role the question is asked as (admin, manager, employee, public)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of context chunks to retrieve (0 = default)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]

	if queryService == nil || indexService == nil {
		return errors.New("query service not configured")
	}

	if err := ensureIndex(cmd.Context()); err != nil {
		if errors.Is(err, domain.ErrNotInitialized) {
			return errors.New("no index available, run 'quarry index' first")
		}
		return fmt.Errorf("loading index: %w", err)
	}

	result, err := queryService.Query(cmd.Context(), question, queryTopK, domain.ParseRole(queryRole))
	if err != nil {
		if errors.Is(err, domain.ErrNotInitialized) {
			return errors.New("no index available, run 'quarry index' first")
		}
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}

	cmd.Println(result.Answer)
	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Printf("Sources: %s\n", strings.Join(result.Sources, ", "))
	}
	if result.Filtered {
		cmd.Println("(some results were filtered for your role)")
	}
	return nil
}

func outputQueryJSON(cmd *cobra.Command, result domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
