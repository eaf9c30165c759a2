// ABOUTME: Full-store export and import, the snapshot format behind backups and future sync.
// ABOUTME: Exports complete workout trees plus measurements and personal records.
package storage

import (
	"fmt"
	"time"

	"github.com/fitexapp/fitex/internal/models"
)

// ExportData is the full snapshot format.
type ExportData struct {
	Version         string                   `json:"version" yaml:"version"`
	ExportedAt      time.Time                `json:"exported_at" yaml:"exported_at"`
	Tool            string                   `json:"tool" yaml:"tool"`
	Workouts        []*models.Workout        `json:"workouts" yaml:"workouts"`
	Measurements    []*models.Measurement    `json:"measurements" yaml:"measurements"`
	PersonalRecords []*models.PersonalRecord `json:"personal_records" yaml:"personal_records"`
}

// AllData retrieves everything for export: each workout with its full
// exercise/set tree, plus measurements and personal records.
func (d *DB) AllData() (*ExportData, error) {
	workouts, err := d.ListWorkouts(0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	full := make([]*models.Workout, 0, len(workouts))
	for _, w := range workouts {
		tree, err := d.GetFullWorkout(w.ID)
		if err != nil {
			return nil, fmt.Errorf("load workout %s: %w", w.ID, err)
		}
		full = append(full, tree)
	}

	measurements, err := d.ListMeasurements(0)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}

	records, err := d.ListPersonalRecords()
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}

	return &ExportData{
		Version:         "1.0",
		ExportedAt:      time.Now(),
		Tool:            "fitex",
		Workouts:        full,
		Measurements:    measurements,
		PersonalRecords: records,
	}, nil
}

// ImportData writes a snapshot into the store, preserving ids and
// timestamps so repeated imports converge instead of duplicating.
// Aggregates are recomputed afterwards rather than trusted.
func (d *DB) ImportData(data *ExportData) error {
	for _, w := range data.Workouts {
		if err := d.importWorkout(w); err != nil {
			return err
		}
	}

	for _, m := range data.Measurements {
		if err := d.importMeasurement(m); err != nil {
			return err
		}
	}

	for _, r := range data.PersonalRecords {
		stmt := `INSERT OR REPLACE INTO personal_records
			(id, exercise_name, weight, reps, date, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		err := d.Execute(stmt, r.ID, r.ExerciseName, r.Weight, r.Reps,
			formatTime(r.Date), r.Notes, formatTime(r.CreatedAt), formatTime(r.UpdatedAt))
		if err != nil {
			return fmt.Errorf("import personal record %s: %w", r.ID, err)
		}
	}

	for _, w := range data.Workouts {
		if err := d.RecomputeWorkoutAggregates(w.ID); err != nil {
			return fmt.Errorf("recompute workout %s: %w", w.ID, err)
		}
	}
	return nil
}

func (d *DB) importWorkout(w *models.Workout) error {
	groups, err := marshalMuscleGroups(w.MuscleGroups)
	if err != nil {
		return err
	}

	stmt := `INSERT OR REPLACE INTO workouts
		(id, name, type, date, duration, notes, status, muscle_groups,
		 exercises_count, sets_count, total_volume, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	err = d.Execute(stmt, w.ID, w.Name, w.Type, formatTime(w.Date), w.Duration,
		w.Notes, w.Status, groups, w.ExercisesCount, w.SetsCount, w.TotalVolume,
		formatTime(w.CreatedAt), formatTime(w.UpdatedAt))
	if err != nil {
		return fmt.Errorf("import workout %s: %w", w.ID, err)
	}

	for i := range w.Exercises {
		e := &w.Exercises[i]
		stmt := `INSERT OR REPLACE INTO exercises
			(id, workout_id, name, muscle_group, order_index, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		err := d.Execute(stmt, e.ID, w.ID, e.Name, e.MuscleGroup, e.OrderIndex,
			e.Notes, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
		if err != nil {
			return fmt.Errorf("import exercise %s: %w", e.ID, err)
		}

		for j := range e.Sets {
			s := &e.Sets[j]
			stmt := `INSERT OR REPLACE INTO sets
				(id, exercise_id, set_number, weight, reps, completed, rest_time, notes, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
			err := d.Execute(stmt, s.ID, e.ID, s.SetNumber, s.Weight, s.Reps,
				boolToInt(s.Completed), s.RestTime, s.Notes,
				formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
			if err != nil {
				return fmt.Errorf("import set %s: %w", s.ID, err)
			}
		}
	}
	return nil
}

func (d *DB) importMeasurement(m *models.Measurement) error {
	stmt := `INSERT OR REPLACE INTO measurements
		(id, date, weight, body_fat, chest, waist, hips, arms, thighs, calves, neck,
		 notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	err := d.Execute(stmt, m.ID, formatTime(m.Date), m.Weight, m.BodyFat,
		m.Chest, m.Waist, m.Hips, m.Arms, m.Thighs, m.Calves, m.Neck,
		m.Notes, formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("import measurement %s: %w", m.ID, err)
	}
	return nil
}
