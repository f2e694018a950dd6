package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dentract/internal/adapters/driving/tui"
)

// runReviewUI is replaced in tests.
var runReviewUI = tui.Run

var reviewCmd = &cobra.Command{
	Use:   "review FILE...",
	Short: "Review scanned forms interactively",
	Long: `Opens a terminal UI that walks through each file: the recognised text
is shown first, then the extracted record, which can be saved.

Controls:
  p/Enter - Parse the recognised text
  s       - Save the record
  n/Tab   - Next file
  ?       - Toggle help
  q       - Quit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	if intakeService == nil {
		return errors.New("intake service not configured")
	}
	if !stdinIsTerminal() {
		return errors.New("review needs an interactive terminal, use extract instead")
	}
	return reviewFiles(cmd, args)
}

func reviewFiles(cmd *cobra.Command, files []string) error {
	saved, err := runReviewUI(cmd.Context(), &tui.Ports{Intake: intakeService}, files)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}
	cmd.Printf("Saved %d record(s).\n", saved)
	return nil
}
