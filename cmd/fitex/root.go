// ABOUTME: Root Cobra command for fitex CLI.
// ABOUTME: Opens and closes the SQLite store via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/fitexapp/fitex/internal/config"
	"github.com/fitexapp/fitex/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "fitex",
	Short: "Personal fitness tracker",
	Long: `Fitex is a CLI tool for tracking workouts, body measurements and
personal records, all stored in a local SQLite database.

WHAT IT TRACKS:

  Workouts       sessions with exercises and sets (weight x reps)
  Measurements   weight, body_fat, chest, waist, hips, arms, thighs, calves, neck
  Records        personal bests per exercise

QUICK START:

  $ fitex seed                             # Load demo data to explore
  $ fitex workout add "Chest Day" -d 60    # Log a workout
  $ fitex workout exercise add <id> "Bench Press"
  $ fitex workout set add <id> 1 -w 80 -r 8
  $ fitex measure add weight 82.5          # Log a body measurement
  $ fitex record add "Bench Press" 120     # Log a personal record
  $ fitex stats                            # Totals and streak

PROGRESS:

  $ fitex stats --progress          # Weight/fat deltas, muscle gain estimate
  $ fitex stats --calendar 2026-09  # Per-day workout calendar
  $ fitex stats --recommend         # Rule-based suggestions
  $ fitex measure history weight    # One metric over a trailing window

MCP INTEGRATION:

  Run 'fitex mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your config:

  {
    "mcpServers": {
      "fitex": { "command": "fitex", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in a single SQLite file, by default at
  ~/.local/share/fitex/fitex.db. Override the directory with data_dir in
  ~/.config/fitex/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Help and completion never touch the database
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		// First run against an empty store gets the demo data. The seed
		// command reports its own outcome, so it seeds in its RunE instead.
		if cmd.Name() != "seed" {
			if _, err := repo.SeedDemoData(); err != nil {
				return fmt.Errorf("failed to seed demo data: %w", err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}
