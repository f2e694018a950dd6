package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Long: `Changes one setting and writes it to the config file.

Keys:
  extract.day_first  Read ambiguous NN-NN-YYYY dates as day first (true/false)
  storage.csv_path   CSV file records are appended to (empty disables CSV)
  storage.sqlite     Keep records in the local SQLite store (true/false)
  ocr.command        OCR executable
  ocr.rate           OCR runs per second
  ocr.burst          OCR runs allowed back to back`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	csvPath := settings.Storage.CSVPath
	if csvPath == "" {
		csvPath = "(disabled)"
	}

	cmd.Println("[extract]")
	cmd.Printf("  day_first = %t\n", settings.Extract.DayFirst)
	cmd.Println()
	cmd.Println("[storage]")
	cmd.Printf("  csv_path = %s\n", csvPath)
	cmd.Printf("  sqlite = %t\n", settings.Storage.SQLite)
	cmd.Println()
	cmd.Println("[ocr]")
	cmd.Printf("  command = %s\n", settings.OCR.Command)
	cmd.Printf("  rate = %g\n", settings.OCR.Rate)
	cmd.Printf("  burst = %d\n", settings.OCR.Burst)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s (keys: %s): %w",
			key, strings.Join(settingsService.Keys(), ", "), err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}
