// ABOUTME: CLI commands for personal records.
// ABOUTME: Supports add, list, best and delete.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/fitexapp/fitex/internal/models"
	"github.com/spf13/cobra"
)

var (
	recordReps     int
	recordAt       string
	recordNotes    string
	recordExercise string
)

var recordCmd = &cobra.Command{
	Use:     "record",
	Aliases: []string{"pr"},
	Short:   "Track personal records",
	Long: `Track personal records per exercise.

Every record is kept, so history is preserved even when a new best lands.
Use 'best' to see only the heaviest record per exercise.

EXAMPLES:

  fitex record add "Bench Press" 120
  fitex record add "Squat" 160 --reps 1 --at 2026-08-25
  fitex record list
  fitex record list -e "Bench Press"
  fitex record best`,
}

var recordAddCmd = &cobra.Command{
	Use:   "add <exercise> <weight>",
	Short: "Add a personal record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[1])
		}

		r := models.NewPersonalRecord(args[0], weight)
		if recordReps > 0 {
			r.WithReps(recordReps)
		}
		if recordAt != "" {
			t, err := parseTime(recordAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", recordAt)
			}
			r.WithDate(t)
		}
		if recordNotes != "" {
			r.WithNotes(recordNotes)
		}

		id, err := repo.AddPersonalRecord(r)
		if err != nil {
			return fmt.Errorf("failed to add record: %w", err)
		}

		color.Green("✓ Recorded %s: %.1f kg", args[0], weight)
		fmt.Printf("  ID: %s\n", id[:8])

		return nil
	},
}

var recordListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List personal records",
	RunE: func(cmd *cobra.Command, args []string) error {
		var records []*models.PersonalRecord
		var err error
		if recordExercise != "" {
			records, err = repo.RecordsForExercise(recordExercise)
		} else {
			records, err = repo.ListPersonalRecords()
		}
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No records found.")
			return nil
		}

		printRecords(records)
		return nil
	},
}

var recordBestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best record per exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := repo.BestPersonalRecords()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No records found.")
			return nil
		}

		printRecords(records)
		return nil
	},
}

var recordDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a personal record",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeletePersonalRecord(args[0]); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		color.Yellow("✗ Deleted record %s", args[0][:min(8, len(args[0]))])
		return nil
	},
}

func printRecords(records []*models.PersonalRecord) {
	faint := color.New(color.Faint)
	for _, r := range records {
		reps := ""
		if r.Reps != nil {
			reps = fmt.Sprintf(" x %d", *r.Reps)
		}
		notes := ""
		if r.Notes != nil && *r.Notes != "" {
			notes = faint.Sprintf(" (%s)", *r.Notes)
		}
		fmt.Printf("%s %s %s %.1f kg%s%s\n",
			faint.Sprint(r.ID[:8]),
			faint.Sprint(r.Date.Format("2006-01-02")),
			padRight(r.ExerciseName, 20),
			r.Weight,
			reps,
			notes)
	}
}

func init() {
	recordAddCmd.Flags().IntVarP(&recordReps, "reps", "r", 0, "reps the record was achieved at")
	recordAddCmd.Flags().StringVar(&recordAt, "at", "", "record date (defaults to now)")
	recordAddCmd.Flags().StringVar(&recordNotes, "notes", "", "record notes")

	recordListCmd.Flags().StringVarP(&recordExercise, "exercise", "e", "", "filter by exercise name")

	recordCmd.AddCommand(recordAddCmd)
	recordCmd.AddCommand(recordListCmd)
	recordCmd.AddCommand(recordBestCmd)
	recordCmd.AddCommand(recordDeleteCmd)
	rootCmd.AddCommand(recordCmd)
}
