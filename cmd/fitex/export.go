// ABOUTME: CLI commands for exporting and importing training data.
// ABOUTME: Supports JSON and YAML with full workout trees.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/fitexapp/fitex/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export training data",
	Long: `Export all training data in various formats.

Workouts are exported as full trees (exercises and sets included), along
with measurements and personal records.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML export (human-readable)

EXAMPLES:

  fitex export json                 # Print JSON to stdout
  fitex export json -o backup.json  # Save to file
  fitex export yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		export, err := repo.AllData()
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch format {
		case "json":
			data, err = json.MarshalIndent(export, "", "  ")
		case "yaml":
			data, err = yaml.Marshal(export)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}

		fmt.Print(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import training data",
	Long: `Import training data from a JSON or YAML export file.

Existing rows with the same IDs are overwritten, so importing the same file
twice is safe. Workout totals are recomputed after import.

EXAMPLES:

  fitex import backup.json
  fitex import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var export storage.ExportData
		if err := json.Unmarshal(raw, &export); err != nil {
			if yerr := yaml.Unmarshal(raw, &export); yerr != nil {
				return fmt.Errorf("file is neither valid JSON nor YAML: %w", err)
			}
		}

		if err := repo.ImportData(&export); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d workouts, %d measurements, %d records",
			len(export.Workouts), len(export.Measurements), len(export.PersonalRecords))

		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
