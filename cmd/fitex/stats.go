// ABOUTME: CLI command for statistics views.
// ABOUTME: Covers workout totals, the month calendar, progress and recommendations.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statsCalendar  string
	statsProgress  bool
	statsRecommend bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show training statistics",
	Long: `Show training statistics.

By default prints overall workout totals and the day streak. The streak is
the longest run of consecutive calendar days that each contain at least one
workout.

VIEWS:

  fitex stats                    # Workout totals and streak
  fitex stats --calendar 2026-09 # Per-day workout counts for a month
  fitex stats --progress         # Weight/fat deltas and muscle gain estimate
  fitex stats --recommend        # Rule-based training suggestions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case statsCalendar != "":
			return showCalendar(statsCalendar)
		case statsProgress:
			return showProgress()
		case statsRecommend:
			return showRecommendations()
		}
		return showWorkoutStats()
	},
}

func showWorkoutStats() error {
	stats, err := repo.WorkoutStatistics()
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}

	fmt.Printf("Workouts:  %d\n", stats.TotalWorkouts)
	fmt.Printf("Exercises: %d\n", stats.TotalExercises)
	fmt.Printf("Sets:      %d\n", stats.TotalSets)
	fmt.Printf("Volume:    %.1f kg\n", stats.TotalVolume)
	fmt.Printf("Streak:    %d days\n", stats.StreakDays)
	if stats.LastWorkoutDate != nil {
		fmt.Printf("Last:      %s\n", stats.LastWorkoutDate.Format("2006-01-02"))
	}

	return nil
}

func showCalendar(month string) error {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid month: %s (use YYYY-MM)", month)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid year: %s", parts[0])
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return fmt.Errorf("invalid month: %s", parts[1])
	}

	days, err := repo.WorkoutCalendar(year, time.Month(m))
	if err != nil {
		return fmt.Errorf("failed to build calendar: %w", err)
	}

	faint := color.New(color.Faint)
	for _, d := range days {
		if d.HasWorkout {
			mark := strings.Repeat("█", d.WorkoutCount)
			fmt.Printf("%s %s %d\n", d.Date, color.GreenString(mark), d.WorkoutCount)
		} else {
			fmt.Printf("%s %s\n", d.Date, faint.Sprint("·"))
		}
	}

	return nil
}

func showProgress() error {
	stats, err := repo.ProgressStatistics()
	if err != nil {
		return fmt.Errorf("failed to compute progress: %w", err)
	}

	fmt.Printf("Weight change:   %+.1f kg\n", stats.WeightChange)
	fmt.Printf("Body fat change: %+.1f %%\n", stats.BodyFatChange)
	fmt.Printf("Muscle gain:     %+.1f kg (lean mass estimate)\n", stats.MuscleGainEstimate)
	fmt.Printf("Measurements:    %d\n", stats.TotalMeasurements)
	fmt.Printf("Records:         %d\n", stats.TotalRecords)

	return nil
}

func showRecommendations() error {
	recs, err := repo.Recommendations(cfg.Thresholds())
	if err != nil {
		return fmt.Errorf("failed to compute recommendations: %w", err)
	}

	if len(recs) == 0 {
		color.Green("✓ Nothing to flag. Keep going.")
		return nil
	}
	for _, r := range recs {
		fmt.Printf("• %s\n", r)
	}

	return nil
}

func init() {
	statsCmd.Flags().StringVar(&statsCalendar, "calendar", "", "show a month calendar (YYYY-MM)")
	statsCmd.Flags().BoolVar(&statsProgress, "progress", false, "show body progress deltas")
	statsCmd.Flags().BoolVar(&statsRecommend, "recommend", false, "show training recommendations")
	rootCmd.AddCommand(statsCmd)
}
