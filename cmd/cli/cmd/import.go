package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"phonegen/db/ingestion"
	"phonegen/internal/config"
)

var (
	importForce bool
	importCheck bool
	importCSV   string
)

// importCmd loads phone_location CSV data into the lookup store.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import phone_location CSV data into the lookup store",
	Long: `Create the lookup table and indexes, then batch-insert the CSV rows.
When the store is already populated the import is skipped unless --force is
given. Use --check to report the current state without importing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		csvPath := importCSV
		if csvPath == "" {
			csvPath = cfg.Database.CSVPath
		}
		importer := ingestion.NewImporter(csvPath, cfg.Database.Path)
		ctx := cmd.Context()

		if importCheck {
			status, err := importer.CheckStatus(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("CSV:      %s (exists: %v)\n", status.CSVPath, status.CSVExists)
			fmt.Printf("Database: %s (exists: %v)\n", status.DBPath, status.DBExists)
			fmt.Printf("Records:  %d\n", status.RecordCount)
			return nil
		}

		result, err := importer.Import(ctx, importForce)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d records, skipped %d malformed rows\n", result.Imported, result.Skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importForce, "force", false, "re-import even when the store is populated")
	importCmd.Flags().BoolVar(&importCheck, "check", false, "report the data state without importing")
	importCmd.Flags().StringVar(&importCSV, "csv", "", "CSV source path (default: configured csv_path)")
}
