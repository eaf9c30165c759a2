// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, show, delete plus exercise and set subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/fitexapp/fitex/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutType     string
	workoutDate     string
	workoutDuration int
	workoutStatus   string
	workoutMuscles  []string
	workoutNotes    string
	workoutLimit    int

	exerciseMuscle string
	exerciseOrder  int
	exerciseNotes  string

	setWeight    float64
	setReps      int
	setSkipped   bool
	setRest      int
	setNotes     string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track workout sessions made of exercises and sets.

A workout is a session (name, date, duration, muscle groups). Each workout
holds ordered exercises, and each exercise holds numbered sets of
weight x reps. Exercise counts, set counts and total volume are kept on the
workout automatically.

WORKFLOW:

  1. Create a workout:    fitex workout add "Chest Day" -d 60 -m Chest -m Triceps
  2. Add an exercise:     fitex workout exercise add <workout-id> "Bench Press"
  3. Add sets to it:      fitex workout set add <exercise-id> 1 -w 80 -r 8
  4. View the session:    fitex workout show <workout-id>

COMMANDS:

  add       Create a new workout session
  list      List recent workouts
  show      View a workout with its exercises and sets
  delete    Delete a workout and everything under it
  exercise  Manage exercises within a workout
  set       Manage sets within an exercise

The workout type is freeform - Strength (the default), Cardio, Mobility,
or whatever makes sense for you.`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new workout",
	Long: `Add a new workout session.

Examples:
  fitex workout add "Chest Day" --duration 60
  fitex workout add "Morning Run" -t Cardio --date 2026-08-30
  fitex workout add "Leg Day" -m Legs -m Glutes --notes "heavy"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := models.NewWorkout(args[0])
		if workoutType != "" {
			w.WithType(workoutType)
		}
		if workoutDate != "" {
			t, err := parseTime(workoutDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", workoutDate)
			}
			w.WithDate(t)
		}
		if workoutDuration > 0 {
			w.WithDuration(workoutDuration)
		}
		if workoutStatus != "" {
			w.WithStatus(workoutStatus)
		}
		if len(workoutMuscles) > 0 {
			w.WithMuscleGroups(workoutMuscles...)
		}
		if workoutNotes != "" {
			w.WithNotes(workoutNotes)
		}

		id, err := repo.CreateWorkout(w)
		if err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		color.Green("✓ Added workout %q", w.Name)
		fmt.Printf("  ID: %s\n", id[:8])
		if w.Duration != 0 {
			fmt.Printf("  Duration: %d min\n", w.Duration)
		}

		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.ListWorkouts(workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Printf("%s %s %s %s %2d ex %3d sets %8.1f kg\n",
				faint.Sprint(w.ID[:8]),
				faint.Sprint(w.Date.Format("2006-01-02")),
				padRight(w.Name, 20),
				padRight(w.Status, 11),
				w.ExercisesCount,
				w.SetsCount,
				w.TotalVolume)
		}

		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetFullWorkout(args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		fmt.Printf("Workout: %s\n", w.Name)
		fmt.Printf("ID: %s\n", w.ID[:8])
		fmt.Printf("Type: %s\n", w.Type)
		fmt.Printf("Date: %s\n", w.Date.Format("2006-01-02 15:04"))
		fmt.Printf("Status: %s\n", w.Status)
		if w.Duration != 0 {
			fmt.Printf("Duration: %d min\n", w.Duration)
		}
		if len(w.MuscleGroups) > 0 {
			fmt.Printf("Muscle groups: %v\n", w.MuscleGroups)
		}
		if w.Notes != nil {
			fmt.Printf("Notes: %s\n", *w.Notes)
		}
		fmt.Printf("Totals: %d exercises, %d sets, %.1f kg volume\n",
			w.ExercisesCount, w.SetsCount, w.TotalVolume)

		faint := color.New(color.Faint)
		for _, e := range w.Exercises {
			fmt.Printf("\n%s %s\n", faint.Sprint(e.ID[:8]), e.Name)
			for _, s := range e.Sets {
				mark := "✓"
				if !s.Completed {
					mark = "·"
				}
				fmt.Printf("  %s set %d: %.1f kg x %d\n", mark, s.SetNumber, s.Weight, s.Reps)
			}
		}

		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout by ID. Its exercises and sets are deleted with it.

CAUTION:

  This permanently deletes the workout. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetWorkout(args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %s", args[0])
		}

		if err := repo.DeleteWorkout(w.ID); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted workout %q", w.Name)
		fmt.Printf("  %s %d exercises, %d sets\n",
			color.New(color.Faint).Sprint(w.ID[:8]),
			w.ExercisesCount, w.SetsCount)

		return nil
	},
}

var workoutExerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercises within a workout",
}

var workoutExerciseAddCmd = &cobra.Command{
	Use:   "add <workout-id> <name>",
	Short: "Add an exercise to a workout",
	Long: `Add an exercise to an existing workout.

Examples:
  fitex workout exercise add abc123 "Bench Press" -m Chest
  fitex workout exercise add abc123 "Squat" --order 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := models.NewExercise(args[0], args[1])
		if exerciseMuscle != "" {
			e.WithMuscleGroup(exerciseMuscle)
		}
		if exerciseOrder > 0 {
			e.WithOrderIndex(exerciseOrder)
		}
		if exerciseNotes != "" {
			e.WithNotes(exerciseNotes)
		}

		id, err := repo.AddExercise(args[0], e)
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s", e.Name)
		fmt.Printf("  ID: %s\n", id[:8])

		return nil
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage sets within an exercise",
}

var workoutSetAddCmd = &cobra.Command{
	Use:   "add <exercise-id> <set-number>",
	Short: "Add a set to an exercise",
	Long: `Add a set to an existing exercise. Sets count as completed unless
--skipped is given; skipped sets do not contribute volume.

Examples:
  fitex workout set add abc123 1 -w 80 -r 8
  fitex workout set add abc123 2 -w 80 -r 6 --rest 120
  fitex workout set add abc123 3 -w 85 -r 5 --skipped`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setNumber, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid set number: %s", args[1])
		}

		set := models.NewSet(args[0], setNumber).
			WithWeight(setWeight).
			WithReps(setReps)
		if setSkipped {
			set.WithCompleted(false)
		}
		if setRest > 0 {
			set.WithRestTime(setRest)
		}
		if setNotes != "" {
			set.WithNotes(setNotes)
		}

		id, err := repo.AddSet(args[0], set)
		if err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}

		color.Green("✓ Added set %d: %.1f kg x %d", setNumber, setWeight, setReps)
		fmt.Printf("  ID: %s\n", id[:8])

		return nil
	},
}

func init() {
	workoutAddCmd.Flags().StringVarP(&workoutType, "type", "t", "", "workout type (default Strength)")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "workout date (defaults to now)")
	workoutAddCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "duration in minutes")
	workoutAddCmd.Flags().StringVar(&workoutStatus, "status", "", "planned, in_progress or completed")
	workoutAddCmd.Flags().StringArrayVarP(&workoutMuscles, "muscle", "m", nil, "targeted muscle group (repeatable)")
	workoutAddCmd.Flags().StringVar(&workoutNotes, "notes", "", "workout notes")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutExerciseAddCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "targeted muscle group")
	workoutExerciseAddCmd.Flags().IntVar(&exerciseOrder, "order", 0, "position within the workout")
	workoutExerciseAddCmd.Flags().StringVar(&exerciseNotes, "notes", "", "exercise notes")

	workoutSetAddCmd.Flags().Float64VarP(&setWeight, "weight", "w", 0, "weight in kg")
	workoutSetAddCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "repetition count")
	workoutSetAddCmd.Flags().BoolVar(&setSkipped, "skipped", false, "mark the set as not completed")
	workoutSetAddCmd.Flags().IntVar(&setRest, "rest", 0, "rest time in seconds")
	workoutSetAddCmd.Flags().StringVar(&setNotes, "notes", "", "set notes")

	workoutExerciseCmd.AddCommand(workoutExerciseAddCmd)
	workoutSetCmd.AddCommand(workoutSetAddCmd)
	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	workoutCmd.AddCommand(workoutExerciseCmd)
	workoutCmd.AddCommand(workoutSetCmd)
	rootCmd.AddCommand(workoutCmd)
}
