// ABOUTME: CLI commands for body measurements.
// ABOUTME: Supports add, list, history and delete.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fitexapp/fitex/internal/models"
	"github.com/spf13/cobra"
)

var (
	measureAt     string
	measureNotes  string
	measureLimit  int
	measureWindow int
)

var measureCmd = &cobra.Command{
	Use:     "measure",
	Aliases: []string{"m"},
	Short:   "Track body measurements",
	Long: `Track body measurement snapshots over time.

A snapshot can hold any subset of metrics taken at one time:

  weight (kg), body_fat (%), chest, waist, hips, arms, thighs, calves, neck (cm)

EXAMPLES:

  fitex measure add weight 82.5
  fitex measure add weight 82.5 body_fat 18.2 waist 84
  fitex measure add chest 102 --at 2026-08-30
  fitex measure list
  fitex measure history weight --window 90`,
}

var measureAddCmd = &cobra.Command{
	Use:   "add <metric> <value> [<metric> <value> ...]",
	Short: "Add a measurement snapshot",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args)%2 != 0 {
			return fmt.Errorf("metrics come in <name> <value> pairs")
		}

		m := models.NewMeasurement()
		if measureAt != "" {
			t, err := parseTime(measureAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", measureAt)
			}
			m.WithDate(t)
		}
		if measureNotes != "" {
			m.WithNotes(measureNotes)
		}

		for i := 0; i < len(args); i += 2 {
			name := args[i]
			value, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %s", name, args[i+1])
			}
			if !m.SetMetric(name, value) {
				return fmt.Errorf("unknown metric: %s\nValid metrics: %s",
					name, strings.Join(models.AllMeasurementMetrics, ", "))
			}
		}

		id, err := repo.AddMeasurement(m)
		if err != nil {
			return fmt.Errorf("failed to add measurement: %w", err)
		}

		color.Green("✓ Added measurement")
		fmt.Printf("  ID: %s\n", id[:8])

		return nil
	},
}

var measureListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List measurement snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		measurements, err := repo.ListMeasurements(measureLimit)
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}

		if len(measurements) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range measurements {
			var parts []string
			for _, name := range models.AllMeasurementMetrics {
				if v := m.Metric(name); v != nil {
					parts = append(parts, fmt.Sprintf("%s %.1f", name, *v))
				}
			}
			fmt.Printf("%s %s %s\n",
				faint.Sprint(m.ID[:8]),
				faint.Sprint(m.Date.Format("2006-01-02")),
				strings.Join(parts, "  "))
		}

		return nil
	},
}

var measureHistoryCmd = &cobra.Command{
	Use:   "history <metric>",
	Short: "Show one metric over a trailing window",
	Long: `Show the history of one measurement metric over a trailing window,
oldest first. Snapshots that do not include the metric are skipped.

Examples:
  fitex measure history weight
  fitex measure history body_fat --window 90`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := repo.MeasurementHistory(args[0], measureWindow)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(history) == 0 {
			fmt.Printf("No %s measurements in the last %d days.\n", args[0], measureWindow)
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range history {
			fmt.Printf("%s %.1f\n", faint.Sprint(p.Date.Format("2006-01-02")), p.Value)
		}

		return nil
	},
}

var measureDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a measurement snapshot",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteMeasurement(args[0]); err != nil {
			return fmt.Errorf("failed to delete measurement: %w", err)
		}
		color.Yellow("✗ Deleted measurement %s", args[0][:min(8, len(args[0]))])
		return nil
	},
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	measureAddCmd.Flags().StringVar(&measureAt, "at", "", "measurement timestamp (defaults to now)")
	measureAddCmd.Flags().StringVar(&measureNotes, "notes", "", "measurement notes")

	measureListCmd.Flags().IntVarP(&measureLimit, "limit", "n", 20, "max number of results")

	measureHistoryCmd.Flags().IntVar(&measureWindow, "window", 30, "trailing window in days")

	measureCmd.AddCommand(measureAddCmd)
	measureCmd.AddCommand(measureListCmd)
	measureCmd.AddCommand(measureHistoryCmd)
	measureCmd.AddCommand(measureDeleteCmd)
	rootCmd.AddCommand(measureCmd)
}
