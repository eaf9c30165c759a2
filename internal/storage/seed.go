// ABOUTME: First-run demo data for an empty store.
// ABOUTME: Seeds through the normal managers so aggregates are exercised, not faked.
package storage

import (
	"time"

	"github.com/fitexapp/fitex/internal/models"
)

// SeedDemoData populates demo rows when the store holds no workouts yet.
// Returns false without touching the store when data already exists.
func (d *DB) SeedDemoData() (bool, error) {
	existing, err := d.count(TableWorkouts, "")
	if err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	chest := models.NewWorkout("Chest Strength").
		WithDate(now).
		WithDuration(60).
		WithMuscleGroups("Chest", "Triceps")
	chestID, err := d.CreateWorkout(chest)
	if err != nil {
		return false, err
	}

	bench := models.NewExercise(chestID, "Bench Press").
		WithMuscleGroup("Chest").
		WithOrderIndex(1)
	benchID, err := d.AddExercise(chestID, bench)
	if err != nil {
		return false, err
	}
	for i, set := range []struct {
		weight float64
		reps   int
	}{{60, 12}, {70, 10}, {80, 8}} {
		s := models.NewSet(benchID, i+1).WithWeight(set.weight).WithReps(set.reps)
		if _, err := d.AddSet(benchID, s); err != nil {
			return false, err
		}
	}

	fly := models.NewExercise(chestID, "Dumbbell Fly").
		WithMuscleGroup("Chest").
		WithOrderIndex(2)
	flyID, err := d.AddExercise(chestID, fly)
	if err != nil {
		return false, err
	}
	for i, set := range []struct {
		weight float64
		reps   int
	}{{12, 15}, {14, 12}} {
		s := models.NewSet(flyID, i+1).WithWeight(set.weight).WithReps(set.reps)
		if _, err := d.AddSet(flyID, s); err != nil {
			return false, err
		}
	}

	legs := models.NewWorkout("Leg Day").
		WithDate(yesterday).
		WithDuration(75).
		WithMuscleGroups("Legs", "Glutes")
	legsID, err := d.CreateWorkout(legs)
	if err != nil {
		return false, err
	}

	squat := models.NewExercise(legsID, "Squat").
		WithMuscleGroup("Legs").
		WithOrderIndex(1)
	squatID, err := d.AddExercise(legsID, squat)
	if err != nil {
		return false, err
	}
	for i, set := range []struct {
		weight float64
		reps   int
	}{{70, 10}, {80, 8}, {90, 6}} {
		s := models.NewSet(squatID, i+1).WithWeight(set.weight).WithReps(set.reps)
		if _, err := d.AddSet(squatID, s); err != nil {
			return false, err
		}
	}

	m := models.NewMeasurement().WithDate(now)
	m.SetMetric(models.MetricWeight, 75.5)
	m.SetMetric(models.MetricBodyFat, 18.5)
	m.SetMetric(models.MetricChest, 102)
	m.SetMetric(models.MetricWaist, 84)
	m.SetMetric(models.MetricHips, 95)
	m.SetMetric(models.MetricArms, 38)
	if _, err := d.AddMeasurement(m); err != nil {
		return false, err
	}

	benchPR := models.NewPersonalRecord("Bench Press", 120).WithReps(1).WithDate(now)
	if _, err := d.AddPersonalRecord(benchPR); err != nil {
		return false, err
	}
	squatPR := models.NewPersonalRecord("Squat", 160).WithReps(1).
		WithDate(now.AddDate(0, 0, -7))
	if _, err := d.AddPersonalRecord(squatPR); err != nil {
		return false, err
	}

	return true, nil
}
