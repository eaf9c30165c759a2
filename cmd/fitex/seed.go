// ABOUTME: CLI command for loading demo data.
// ABOUTME: Seeds sample workouts, a measurement and records into an empty database.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data",
	Long: `Load a small set of demo data: two workouts with exercises and sets,
one body measurement snapshot and two personal records.

Seeding only happens when no workouts exist yet, so running it twice is
safe. It also runs automatically the first time any command touches an
empty database. Delete the database file to start over.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeded, err := repo.SeedDemoData()
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}

		if !seeded {
			fmt.Println("Database already has workouts, nothing seeded.")
			return nil
		}

		color.Green("✓ Seeded demo data")
		fmt.Println("  Try: fitex workout list, fitex stats, fitex record best")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
