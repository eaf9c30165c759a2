// ABOUTME: Repository interface over the store.
// ABOUTME: The CLI and MCP layers consume this; *DB is the SQLite implementation.
package storage

import (
	"time"

	"github.com/fitexapp/fitex/internal/models"
)

// Repository is the storage surface consumed by the CLI and the MCP
// server. *DB implements it; tests can substitute their own.
type Repository interface {
	// Workout aggregate operations
	CreateWorkout(w *models.Workout) (string, error)
	GetWorkout(id string) (*models.Workout, error)
	GetFullWorkout(id string) (*models.Workout, error)
	ListWorkouts(limit int) ([]*models.Workout, error)
	UpdateWorkout(id string, fields map[string]any) error
	DeleteWorkout(id string) error
	AddExercise(workoutID string, e *models.Exercise) (string, error)
	UpdateExercise(id string, fields map[string]any) error
	DeleteExercise(id string) error
	AddSet(exerciseID string, s *models.Set) (string, error)
	UpdateSet(id string, fields map[string]any) error
	DeleteSet(id string) error
	RecomputeWorkoutAggregates(workoutID string) error
	WorkoutStatistics() (*WorkoutStats, error)
	WorkoutCalendar(year int, month time.Month) ([]CalendarDay, error)

	// Progress and records
	AddMeasurement(m *models.Measurement) (string, error)
	ListMeasurements(limit int) ([]*models.Measurement, error)
	DeleteMeasurement(id string) error
	MeasurementHistory(metric string, windowDays int) ([]HistoryPoint, error)
	AddPersonalRecord(r *models.PersonalRecord) (string, error)
	ListPersonalRecords() ([]*models.PersonalRecord, error)
	RecordsForExercise(exerciseName string) ([]*models.PersonalRecord, error)
	BestPersonalRecords() ([]*models.PersonalRecord, error)
	DeletePersonalRecord(id string) error
	ProgressStatistics() (*ProgressStats, error)
	Recommendations(t Thresholds) ([]string, error)

	// Bootstrap and snapshots
	SeedDemoData() (bool, error)
	AllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
