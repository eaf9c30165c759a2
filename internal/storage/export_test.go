// ABOUTME: Tests for export and import of the full dataset.
// ABOUTME: Validates round trips across stores including derived counters.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/fitexapp/fitex/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := setupTestDB(t)

	workoutID, _ := src.CreateWorkout(models.NewWorkout("Push Day").WithDuration(60))
	exerciseID, _ := src.AddExercise(workoutID, models.NewExercise(workoutID, "Bench Press"))
	src.AddSet(exerciseID, models.NewSet(exerciseID, 1).WithWeight(80).WithReps(10))
	src.AddSet(exerciseID, models.NewSet(exerciseID, 2).WithWeight(85).WithReps(8))

	m := models.NewMeasurement()
	m.SetMetric(models.MetricWeight, 80)
	src.AddMeasurement(m)
	src.AddPersonalRecord(models.NewPersonalRecord("Bench Press", 120))

	export, err := src.AllData()
	if err != nil {
		t.Fatalf("AllData failed: %v", err)
	}
	if export.Version == "" || export.Tool == "" {
		t.Error("export header missing version or tool")
	}
	if len(export.Workouts) != 1 || len(export.Workouts[0].Exercises) != 1 {
		t.Fatal("expected full workout tree in export")
	}

	dstPath := filepath.Join(t.TempDir(), "restore.db")
	dst, err := Open(dstPath)
	if err != nil {
		t.Fatalf("failed to open target db: %v", err)
	}
	t.Cleanup(func() { dst.Close() })

	if err := dst.ImportData(export); err != nil {
		t.Fatalf("ImportData failed: %v", err)
	}

	w, err := dst.GetFullWorkout(workoutID)
	if err != nil {
		t.Fatalf("imported workout not found: %v", err)
	}
	if w.Name != "Push Day" {
		t.Errorf("name mismatch: %s", w.Name)
	}
	if len(w.Exercises) != 1 || len(w.Exercises[0].Sets) != 2 {
		t.Fatal("imported workout tree incomplete")
	}
	if w.SetsCount != 2 || w.TotalVolume != 1480 {
		t.Errorf("derived counters wrong after import: %d sets, %f volume",
			w.SetsCount, w.TotalVolume)
	}

	measurements, _ := dst.ListMeasurements(10)
	if len(measurements) != 1 {
		t.Errorf("expected 1 imported measurement, got %d", len(measurements))
	}
	records, _ := dst.ListPersonalRecords()
	if len(records) != 1 {
		t.Errorf("expected 1 imported record, got %d", len(records))
	}
}

func TestImportTwiceKeepsRowsUnique(t *testing.T) {
	src := setupTestDB(t)

	workoutID, _ := src.CreateWorkout(models.NewWorkout("Session"))
	exerciseID, _ := src.AddExercise(workoutID, models.NewExercise(workoutID, "Squat"))
	src.AddSet(exerciseID, models.NewSet(exerciseID, 1).WithWeight(100).WithReps(5))

	export, err := src.AllData()
	if err != nil {
		t.Fatalf("AllData failed: %v", err)
	}

	dst := setupTestDB(t)
	if err := dst.ImportData(export); err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if err := dst.ImportData(export); err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	workouts, _ := dst.ListWorkouts(10)
	if len(workouts) != 1 {
		t.Errorf("expected 1 workout after re-import, got %d", len(workouts))
	}
	w, _ := dst.GetFullWorkout(workoutID)
	if w.SetsCount != 1 {
		t.Errorf("expected 1 set after re-import, got %d", w.SetsCount)
	}
}
