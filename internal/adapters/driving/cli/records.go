package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

var recordsJSON bool

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage saved patient records",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

var recordsShowCmd = &cobra.Command{
	Use:   "show [scan-id]",
	Short: "Show a saved record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsShow,
}

var recordsExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export saved records to a spreadsheet",
	Long: `Writes every saved record to an .xlsx workbook with one row per scan.
An existing file at path is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordsExport,
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete [scan-id]",
	Short: "Delete a saved record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsDelete,
}

func init() {
	recordsListCmd.Flags().BoolVar(&recordsJSON, "json", false, "Output as JSON")
	recordsShowCmd.Flags().BoolVar(&recordsJSON, "json", false, "Output as JSON")
	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsShowCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	scans, err := recordService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if recordsJSON {
		return printJSON(cmd, scans)
	}

	if len(scans) == 0 {
		cmd.Println("No records saved.")
		return nil
	}

	for i := range scans {
		name, ok := scans[i].Record.Value(domain.FieldName)
		if !ok {
			name = notFound
		}
		cmd.Printf("  %s  %s  %-24s %s\n",
			scans[i].ID,
			scans[i].CreatedAt.Format("2006-01-02 15:04"),
			name,
			scans[i].Source,
		)
	}

	cmd.Printf("\nTotal: %d records\n", len(scans))
	return nil
}

func runRecordsShow(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	scan, err := recordService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if recordsJSON {
		return printJSON(cmd, scan)
	}
	printScan(cmd, scan)
	return nil
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	n, err := recordService.Export(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}

	cmd.Printf("Exported %d records to %s\n", n, args[0])
	return nil
}

func runRecordsDelete(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	if err := recordService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	cmd.Printf("Deleted record %s\n", args[0])
	return nil
}
