package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector store statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureVectorStore(ctx); err != nil {
			return err
		}

		stats, err := vectorStore.Stats(ctx)
		if err != nil {
			return fmt.Errorf("fetching stats: %w", err)
		}

		cmd.Println(headingStyle.Render("Index statistics"))
		cmd.Printf("  Namespace: %s\n", stats.Namespace)
		cmd.Printf("  Vectors:   %d\n", stats.VectorCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
