package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/dentract/internal/core/domain"
	"github.com/custodia-labs/dentract/internal/logger"
)

var (
	extractSave        bool
	extractJSON        bool
	extractInteractive bool
)

// stdinIsTerminal reports whether stdin is attached to a terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract patient records from scanned forms",
	Long: `Runs OCR on each file and extracts a patient record from the text.

Images are read with tesseract; .txt files are read as already-recognised
text. Use --save to append each record to the configured CSV file and
SQLite store. Use --interactive to review each file in the terminal UI
before saving; without a terminal this falls back to plain output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVarP(&extractSave, "save", "s", false, "Save extracted records")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Output as JSON")
	extractCmd.Flags().BoolVarP(&extractInteractive, "interactive", "i", false, "Review each file interactively")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if intakeService == nil {
		return errors.New("intake service not configured")
	}

	if extractInteractive {
		if stdinIsTerminal() {
			return reviewFiles(cmd, args)
		}
		logger.Warn("stdin is not a terminal, running non-interactively")
	}

	ctx := cmd.Context()
	scans := make([]*domain.Scan, 0, len(args))
	failed := 0

	for _, path := range args {
		scan, err := intakeService.Process(ctx, path, extractSave)
		if err != nil {
			failed++
			cmd.PrintErrf("%s: %v\n", path, err)
			// The scan is returned when only saving failed.
			if scan == nil {
				continue
			}
		}

		if extractJSON {
			scans = append(scans, scan)
			continue
		}

		printScan(cmd, scan)
		if extractSave && err == nil {
			cmd.Printf("Saved %s\n", scan.ID)
		}
		cmd.Println()
	}

	if extractJSON {
		if err := printJSON(cmd, scans); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(args))
	}
	return nil
}
