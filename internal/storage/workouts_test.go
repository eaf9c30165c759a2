// ABOUTME: Tests for workout, exercise and set managers.
// ABOUTME: Validates derived counters, cascades, streaks and the calendar.
package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/fitexapp/fitex/internal/models"
)

func TestCreateWorkoutDefaults(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.CreateWorkout(models.NewWorkout("Morning Session"))
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	w, err := db.GetWorkout(id)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if w.Type != models.DefaultWorkoutType {
		t.Errorf("expected default type, got %s", w.Type)
	}
	if w.Status != models.StatusCompleted {
		t.Errorf("expected completed status, got %s", w.Status)
	}
	if w.ExercisesCount != 0 || w.SetsCount != 0 || w.TotalVolume != 0 {
		t.Error("new workout should start with zeroed counters")
	}
}

func TestCreateWorkoutRequiresName(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.CreateWorkout(models.NewWorkout(""))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestAddExerciseToMissingWorkout(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewExercise("missing", "Bench Press")
	_, err := db.AddExercise("missing", e)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddSetToMissingExercise(t *testing.T) {
	db := setupTestDB(t)

	s := models.NewSet("missing", 1)
	_, err := db.AddSet("missing", s)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddSetRejectsBadSetNumber(t *testing.T) {
	db := setupTestDB(t)

	workoutID, _ := db.CreateWorkout(models.NewWorkout("Leg Day"))
	exerciseID, _ := db.AddExercise(workoutID, models.NewExercise(workoutID, "Squat"))

	_, err := db.AddSet(exerciseID, models.NewSet(exerciseID, 0))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for set number 0, got %v", err)
	}
}

func TestWorkoutAggregates(t *testing.T) {
	db := setupTestDB(t)

	workoutID, err := db.CreateWorkout(models.NewWorkout("Leg Day"))
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	exerciseID, err := db.AddExercise(workoutID, models.NewExercise(workoutID, "Squat"))
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	if _, err := db.AddSet(exerciseID, models.NewSet(exerciseID, 1).WithWeight(100).WithReps(5)); err != nil {
		t.Fatalf("AddSet failed: %v", err)
	}
	if _, err := db.AddSet(exerciseID, models.NewSet(exerciseID, 2).WithWeight(100).WithReps(5).WithCompleted(false)); err != nil {
		t.Fatalf("AddSet failed: %v", err)
	}

	w, err := db.GetWorkout(workoutID)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if w.ExercisesCount != 1 {
		t.Errorf("expected 1 exercise, got %d", w.ExercisesCount)
	}
	if w.SetsCount != 2 {
		t.Errorf("expected 2 sets, got %d", w.SetsCount)
	}
	// Only the completed set contributes volume
	if w.TotalVolume != 500 {
		t.Errorf("expected volume 500, got %f", w.TotalVolume)
	}
}

func TestUpdateSetCompletedTogglesVolume(t *testing.T) {
	db := setupTestDB(t)

	workoutID, _ := db.CreateWorkout(models.NewWorkout("Push Day"))
	exerciseID, _ := db.AddExercise(workoutID, models.NewExercise(workoutID, "Bench Press"))
	setID, err := db.AddSet(exerciseID, models.NewSet(exerciseID, 1).WithWeight(80).WithReps(10))
	if err != nil {
		t.Fatalf("AddSet failed: %v", err)
	}

	if err := db.UpdateSet(setID, map[string]any{"completed": false}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	w, _ := db.GetWorkout(workoutID)
	if w.TotalVolume != 0 {
		t.Errorf("expected volume 0 after uncompleting, got %f", w.TotalVolume)
	}

	if err := db.UpdateSet(setID, map[string]any{"completed": true}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	w, _ = db.GetWorkout(workoutID)
	if w.TotalVolume != 800 {
		t.Errorf("expected volume 800 after completing, got %f", w.TotalVolume)
	}
}

func TestDeleteExerciseRecomputesCounters(t *testing.T) {
	db := setupTestDB(t)

	workoutID, _ := db.CreateWorkout(models.NewWorkout("Pull Day"))
	exerciseID, _ := db.AddExercise(workoutID, models.NewExercise(workoutID, "Deadlift"))
	db.AddSet(exerciseID, models.NewSet(exerciseID, 1).WithWeight(140).WithReps(5))

	if err := db.DeleteExercise(exerciseID); err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}

	w, _ := db.GetWorkout(workoutID)
	if w.ExercisesCount != 0 || w.SetsCount != 0 || w.TotalVolume != 0 {
		t.Errorf("counters not zeroed after delete: %d/%d/%f",
			w.ExercisesCount, w.SetsCount, w.TotalVolume)
	}
}

func TestDeleteWorkoutCascades(t *testing.T) {
	db := setupTestDB(t)

	workoutID, _ := db.CreateWorkout(models.NewWorkout("Full Body"))
	exerciseID, _ := db.AddExercise(workoutID, models.NewExercise(workoutID, "Row"))
	setID, _ := db.AddSet(exerciseID, models.NewSet(exerciseID, 1).WithWeight(60).WithReps(12))

	if err := db.DeleteWorkout(workoutID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}

	if _, err := db.GetByID(TableExercises, exerciseID); !errors.Is(err, ErrNotFound) {
		t.Error("exercise should cascade away with its workout")
	}
	if _, err := db.GetByID(TableSets, setID); !errors.Is(err, ErrNotFound) {
		t.Error("set should cascade away with its workout")
	}
}

func TestDeleteMissingWorkout(t *testing.T) {
	db := setupTestDB(t)

	if err := db.DeleteWorkout("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetFullWorkoutOrdering(t *testing.T) {
	db := setupTestDB(t)

	workoutID, _ := db.CreateWorkout(models.NewWorkout("Session"))
	secondID, _ := db.AddExercise(workoutID,
		models.NewExercise(workoutID, "Curl").WithOrderIndex(2))
	firstID, _ := db.AddExercise(workoutID,
		models.NewExercise(workoutID, "Press").WithOrderIndex(1))

	db.AddSet(firstID, models.NewSet(firstID, 2).WithWeight(50).WithReps(8))
	db.AddSet(firstID, models.NewSet(firstID, 1).WithWeight(50).WithReps(10))

	w, err := db.GetFullWorkout(workoutID)
	if err != nil {
		t.Fatalf("GetFullWorkout failed: %v", err)
	}
	if len(w.Exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(w.Exercises))
	}
	if w.Exercises[0].ID != firstID || w.Exercises[1].ID != secondID {
		t.Error("exercises not ordered by order_index")
	}
	sets := w.Exercises[0].Sets
	if len(sets) != 2 || sets[0].SetNumber != 1 || sets[1].SetNumber != 2 {
		t.Error("sets not ordered by set_number")
	}
}

func TestWorkoutStatistics(t *testing.T) {
	db := setupTestDB(t)

	w1, _ := db.CreateWorkout(models.NewWorkout("A").WithDate(time.Now().AddDate(0, 0, -1)))
	db.CreateWorkout(models.NewWorkout("B").WithDate(time.Now()))

	exerciseID, _ := db.AddExercise(w1, models.NewExercise(w1, "Squat"))
	db.AddSet(exerciseID, models.NewSet(exerciseID, 1).WithWeight(100).WithReps(5))

	stats, err := db.WorkoutStatistics()
	if err != nil {
		t.Fatalf("WorkoutStatistics failed: %v", err)
	}
	if stats.TotalWorkouts != 2 {
		t.Errorf("expected 2 workouts, got %d", stats.TotalWorkouts)
	}
	if stats.TotalExercises != 1 || stats.TotalSets != 1 {
		t.Errorf("unexpected child totals: %d/%d", stats.TotalExercises, stats.TotalSets)
	}
	if stats.TotalVolume != 500 {
		t.Errorf("expected volume 500, got %f", stats.TotalVolume)
	}
	if stats.StreakDays != 2 {
		t.Errorf("expected 2-day streak, got %d", stats.StreakDays)
	}
	if stats.LastWorkoutDate == nil {
		t.Error("expected last workout date")
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want int
	}{
		{"empty", nil, 0},
		{"single day", []int{100}, 1},
		{"consecutive run", []int{100, 101, 102, 105}, 3},
		{"duplicates collapse", []int{100, 100, 101}, 2},
		{"run at the end", []int{90, 95, 96, 97, 98}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := longestStreak(tt.days); got != tt.want {
				t.Errorf("longestStreak(%v) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestWorkoutCalendar(t *testing.T) {
	db := setupTestDB(t)

	feb := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	db.CreateWorkout(models.NewWorkout("A").WithDate(feb))
	db.CreateWorkout(models.NewWorkout("B").WithDate(feb.Add(4 * time.Hour)))

	days, err := db.WorkoutCalendar(2026, time.February)
	if err != nil {
		t.Fatalf("WorkoutCalendar failed: %v", err)
	}
	if len(days) != 28 {
		t.Fatalf("expected 28 days for February 2026, got %d", len(days))
	}

	var marked int
	for _, d := range days {
		if d.HasWorkout {
			marked++
			if d.Date != "2026-02-10" {
				t.Errorf("wrong day marked: %s", d.Date)
			}
			if d.WorkoutCount != 2 {
				t.Errorf("expected 2 workouts on the day, got %d", d.WorkoutCount)
			}
		}
	}
	if marked != 1 {
		t.Errorf("expected exactly 1 marked day, got %d", marked)
	}
}
