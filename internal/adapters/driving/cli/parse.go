package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	parseText string
	parseSave bool
	parseJSON bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Extract a patient record from text",
	Long: `Extracts a patient record from text that has already been recognised.

The text is taken from --text, or read from stdin when --text is not given:
  tesseract form.png stdout | dentract parse`,
	Args: cobra.NoArgs,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseText, "text", "t", "", "Text to parse (default: read stdin)")
	parseCmd.Flags().BoolVarP(&parseSave, "save", "s", false, "Save the extracted record")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	if intakeService == nil {
		return errors.New("intake service not configured")
	}

	text := parseText
	if text == "" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	if !parseSave {
		record, err := intakeService.Parse(text)
		if err != nil {
			return err
		}
		if parseJSON {
			return printJSON(cmd, record)
		}
		printRecord(cmd, record)
		return nil
	}

	scan, err := intakeService.Ingest(cmd.Context(), "stdin", text, true)
	if err != nil {
		return err
	}
	if parseJSON {
		return printJSON(cmd, scan)
	}
	printScan(cmd, scan)
	cmd.Printf("Saved %s\n", scan.ID)
	return nil
}
