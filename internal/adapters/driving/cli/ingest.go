package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/campus-labs/clubscout-cli/internal/core/ports/driving"
)

var (
	ingestInputDir  string
	ingestClear     bool
	ingestBatchSize int
	ingestYes       bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index club documents into the vector store",
	Long: `Processes every supported document (.pdf, .txt, .docx) in the input
directory: extracts text, derives metadata, splits into chunks and
uploads them to the vector store.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestInputDir, "input-dir", "i", "data/raw", "directory containing club documents")
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "clear existing data before ingesting")
	ingestCmd.Flags().IntVar(&ingestBatchSize, "batch-size", 0, "chunks per upload batch (default from config)")
	ingestCmd.Flags().BoolVar(&ingestYes, "yes", false, "skip confirmation prompts")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureIngestService(ctx); err != nil {
		return err
	}

	if ingestClear {
		ok, err := confirmDestruction(cmd, fmt.Sprintf("This clears every record in %q and cannot be undone.", cfg.Store.Namespace))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Skipped deletion.")
		} else {
			if err := ingestService.Clear(ctx); err != nil {
				return fmt.Errorf("clearing namespace: %w", err)
			}
			cmd.Printf("Cleared namespace %q.\n", cfg.Store.Namespace)
		}
	}

	batchSize := ingestBatchSize
	if batchSize <= 0 {
		batchSize = cfg.Ingest.BatchSize
	}

	report, err := ingestService.Ingest(ctx, ingestInputDir, driving.IngestOptions{BatchSize: batchSize})
	if err != nil {
		return err
	}

	cmd.Println(headingStyle.Render("Ingestion complete"))
	cmd.Printf("  Documents processed: %d\n", report.DocumentsProcessed)
	if report.DocumentsSkipped > 0 {
		cmd.Printf("  Documents skipped:   %d\n", report.DocumentsSkipped)
	}
	cmd.Printf("  Chunks created:      %d\n", report.ChunksCreated)
	cmd.Printf("  Chunks uploaded:     %d\n", report.ChunksUpserted)
	cmd.Printf("  Namespace:           %s\n", cfg.Store.Namespace)

	if len(report.PerDocument) > 0 {
		cmd.Println()
		names := make([]string, 0, len(report.PerDocument))
		for name := range report.PerDocument {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %s: %d chunk(s)\n", name, report.PerDocument[name])
		}
	}
	return nil
}

// confirmDestruction asks the operator to type yes. Non-interactive runs
// must pass --yes explicitly.
func confirmDestruction(cmd *cobra.Command, warning string) (bool, error) {
	if ingestYes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing destructive operation without a terminal; pass --yes to confirm")
	}

	cmd.Println(warning)
	cmd.Print("Are you sure? Type 'yes' to confirm: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}
