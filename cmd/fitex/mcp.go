// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fitexapp/fitex/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your training data
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "fitex": {
        "command": "fitex",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_workout          Create a workout session
  add_exercise         Add an exercise to a workout
  add_set              Add a set to an exercise
  get_workout          Get a workout with exercises and sets
  list_workouts        List recent workouts
  delete_workout       Delete a workout
  workout_stats        Totals and the day streak
  workout_calendar     Per-day counts for a month
  add_measurement      Record a body measurement snapshot
  measurement_history  One metric over a trailing window
  add_record           Record a personal record
  progress_stats       Weight/fat deltas, muscle gain estimate
  recommendations      Rule-based training suggestions

AVAILABLE RESOURCES:

  fitex://summary   Training summary with recent workouts
  fitex://records   Best lift per exercise`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, cfg.Thresholds())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
