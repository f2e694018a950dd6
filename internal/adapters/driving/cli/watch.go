package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dentract/internal/watcher"
)

var (
	watchSave     bool
	watchExisting bool
	watchSettle   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Extract records from scans as they arrive in a directory",
	Long: `Watches a directory and extracts a patient record from every supported
file written to it. A file is read once it has not changed for the settle
window. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchSave, "save", "s", false, "Save extracted records")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Process files already in the directory")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watcher.DefaultSettle, "Quiet period before a file is read")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if intakeService == nil {
		return errors.New("intake service not configured")
	}

	opts := []watcher.Option{
		watcher.WithFilter(intakeService.Supports),
		watcher.WithSettle(watchSettle),
	}
	if watchExisting {
		opts = append(opts, watcher.WithExisting())
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	return watcher.New(args[0], opts...).Run(cmd.Context(), watchHandler(cmd))
}

func watchHandler(cmd *cobra.Command) watcher.Handler {
	return func(ctx context.Context, path string) error {
		scan, err := intakeService.Process(ctx, path, watchSave)
		if scan == nil {
			return err
		}

		found := len(scan.Record.Present())
		if watchSave && err == nil {
			cmd.Printf("%s: %d field(s), saved %s\n", path, found, scan.ID)
		} else {
			cmd.Printf("%s: %d field(s)\n", path, found)
		}
		return err
	}
}
