package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campus-labs/clubscout-cli/internal/core/domain"
	"github.com/campus-labs/clubscout-cli/internal/core/ports/driving"
)

var (
	queryTopK        int
	queryOrg         string
	queryMaxDues     float64
	queryNoCitations bool
	queryJSON        bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question about student clubs",
	Long: `Retrieves the most relevant document chunks for the question and
generates a grounded answer with [Source N] citations.

Constraints mentioned in the question ("clubs under $20") are picked up
automatically; --org and --max-dues set them explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	queryCmd.Flags().StringVar(&queryOrg, "org", "", "restrict to one organization (exact name)")
	queryCmd.Flags().Float64Var(&queryMaxDues, "max-dues", 0, "restrict to organizations with dues at or below this amount")
	queryCmd.Flags().BoolVar(&queryNoCitations, "no-citations", false, "omit the citation list")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the full response as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureQueryService(ctx); err != nil {
		return err
	}

	opts := driving.QueryOptions{
		TopK:           queryTopK,
		ExtractFilters: true,
	}
	if queryOrg != "" {
		opts.Filters.OrganizationName = queryOrg
	}
	if cmd.Flags().Changed("max-dues") {
		maxDues := queryMaxDues
		opts.Filters.MaxDues = &maxDues
	}

	resp, err := queryService.Query(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, resp)
	}
	outputQueryText(cmd, resp)
	return nil
}

func outputQueryJSON(cmd *cobra.Command, resp domain.QueryResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, resp domain.QueryResponse) {
	cmd.Println(headingStyle.Render("Answer"))
	cmd.Println(answerStyle.Render(resp.Answer))

	if len(resp.FiltersApplied) > 0 {
		cmd.Println()
		cmd.Println(mutedStyle.Render(fmt.Sprintf("Filters applied: %v", resp.FiltersApplied)))
	}

	if queryNoCitations || len(resp.Citations) == 0 {
		return
	}

	cmd.Println()
	cmd.Println(headingStyle.Render("Sources"))
	for _, c := range resp.Citations {
		cmd.Println(citationStyle.Render(fmt.Sprintf("  [%d] %s (%s, score %.2f)", c.SourceNumber, c.OrganizationName, c.SourceFile, c.RelevanceScore)))
		cmd.Println(mutedStyle.Render("      " + c.TextSnippet))
	}
}
