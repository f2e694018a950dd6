package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dentract/internal/core/domain"
)

const notFound = "(not found)"

func printRecord(cmd *cobra.Command, record *domain.PatientRecord) {
	for _, field := range domain.Fields {
		value, ok := record.Value(field)
		if !ok {
			value = notFound
		}
		cmd.Printf("  %-12s %s\n", field.String()+":", value)
	}
}

func printScan(cmd *cobra.Command, scan *domain.Scan) {
	cmd.Printf("Scan %s\n", scan.ID)
	cmd.Printf("  %-12s %s\n", "source:", scan.Source)
	cmd.Printf("  %-12s %s\n", "created:", scan.CreatedAt.Format("2006-01-02 15:04:05"))
	printRecord(cmd, &scan.Record)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
