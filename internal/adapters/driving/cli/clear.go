package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record in the namespace",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := ensureIngestService(ctx); err != nil {
			return err
		}

		ingestYes = ingestYes || clearYes
		ok, err := confirmDestruction(cmd, fmt.Sprintf("This clears every record in %q and cannot be undone.", cfg.Store.Namespace))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Skipped deletion.")
			return nil
		}

		if err := ingestService.Clear(ctx); err != nil {
			return fmt.Errorf("clearing namespace: %w", err)
		}
		cmd.Printf("Cleared namespace %q.\n", cfg.Store.Namespace)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "skip confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
