// ABOUTME: MCP tool implementations for the training store.
// ABOUTME: Exposes workout, measurement and record operations plus the derived statistics.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/fitexapp/fitex/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Create a new workout session",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise to an existing workout",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Add a set to an existing exercise",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all its exercises and sets",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout and everything under it",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_stats",
		Description: "Overall workout statistics including the day streak",
	}, s.handleWorkoutStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_calendar",
		Description: "Per-day workout counts for a calendar month",
	}, s.handleWorkoutCalendar)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_measurement",
		Description: "Record a body measurement snapshot (weight, body fat, girths)",
	}, s.handleAddMeasurement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "measurement_history",
		Description: "History of one measurement metric over a trailing window",
	}, s.handleMeasurementHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_record",
		Description: "Record a personal record for an exercise",
	}, s.handleAddRecord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "progress_stats",
		Description: "Weight/body-fat deltas and the muscle gain estimate",
	}, s.handleProgressStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommendations",
		Description: "Rule-based training recommendations",
	}, s.handleRecommendations)
}

// Tool input/output types

type addWorkoutInput struct {
	Name         string   `json:"name" jsonschema:"Workout name"`
	Type         string   `json:"type,omitempty" jsonschema:"Workout category (defaults to Strength)"`
	Date         string   `json:"date,omitempty" jsonschema:"Workout date (ISO 8601), defaults to now"`
	Duration     int      `json:"duration,omitempty" jsonschema:"Duration in minutes"`
	Status       string   `json:"status,omitempty" jsonschema:"planned, in_progress or completed (default)"`
	MuscleGroups []string `json:"muscle_groups,omitempty" jsonschema:"Targeted muscle groups in order"`
	Notes        string   `json:"notes,omitempty" jsonschema:"Workout notes"`
}

type idOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type addExerciseInput struct {
	WorkoutID   string `json:"workout_id" jsonschema:"Workout ID"`
	Name        string `json:"name" jsonschema:"Exercise name"`
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Targeted muscle group"`
	OrderIndex  int    `json:"order_index,omitempty" jsonschema:"Position within the workout"`
	Notes       string `json:"notes,omitempty" jsonschema:"Exercise notes"`
}

type addSetInput struct {
	ExerciseID string  `json:"exercise_id" jsonschema:"Exercise ID"`
	SetNumber  int     `json:"set_number" jsonschema:"Ordinal within the exercise starting at 1"`
	Weight     float64 `json:"weight,omitempty" jsonschema:"Weight in kg"`
	Reps       int     `json:"reps,omitempty" jsonschema:"Repetition count"`
	Completed  *bool   `json:"completed,omitempty" jsonschema:"Whether the set was completed (default true)"`
	RestTime   int     `json:"rest_time,omitempty" jsonschema:"Rest time in seconds"`
	Notes      string  `json:"notes,omitempty" jsonschema:"Set notes"`
}

type workoutIDInput struct {
	ID string `json:"id" jsonschema:"Workout ID"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type calendarInput struct {
	Year  int `json:"year" jsonschema:"Calendar year"`
	Month int `json:"month" jsonschema:"Calendar month 1-12"`
}

type addMeasurementInput struct {
	Date    string             `json:"date,omitempty" jsonschema:"Measurement date (ISO 8601), defaults to now"`
	Metrics map[string]float64 `json:"metrics" jsonschema:"Metric values keyed by name (weight, body_fat, chest, waist, hips, arms, thighs, calves, neck)"`
	Notes   string             `json:"notes,omitempty" jsonschema:"Measurement notes"`
}

type historyInput struct {
	Metric     string `json:"metric" jsonschema:"Measurement metric name"`
	WindowDays int    `json:"window_days,omitempty" jsonschema:"Trailing window in days (default 30)"`
}

type addRecordInput struct {
	ExerciseName string  `json:"exercise_name" jsonschema:"Exercise the record belongs to"`
	Weight       float64 `json:"weight" jsonschema:"Record weight in kg"`
	Reps         int     `json:"reps,omitempty" jsonschema:"Reps the record was achieved at"`
	Date         string  `json:"date,omitempty" jsonschema:"Record date (ISO 8601), defaults to now"`
	Notes        string  `json:"notes,omitempty" jsonschema:"Record notes"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// noInput is the schema for tools that take no arguments.
type noInput struct{}

// Tool handlers

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, idOutput, error) {
	w := models.NewWorkout(input.Name)
	if input.Type != "" {
		w.WithType(input.Type)
	}
	if input.Date != "" {
		if t, err := parseTimestamp(input.Date); err == nil {
			w.WithDate(t)
		}
	}
	if input.Duration > 0 {
		w.WithDuration(input.Duration)
	}
	if input.Status != "" {
		w.WithStatus(input.Status)
	}
	if len(input.MuscleGroups) > 0 {
		w.WithMuscleGroups(input.MuscleGroups...)
	}
	if input.Notes != "" {
		w.WithNotes(input.Notes)
	}

	id, err := s.repo.CreateWorkout(w)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Added workout %q (ID: %s)", input.Name, shortID(id)),
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, idOutput, error) {
	e := models.NewExercise(input.WorkoutID, input.Name)
	if input.MuscleGroup != "" {
		e.WithMuscleGroup(input.MuscleGroup)
	}
	if input.OrderIndex > 0 {
		e.WithOrderIndex(input.OrderIndex)
	}
	if input.Notes != "" {
		e.WithNotes(input.Notes)
	}

	id, err := s.repo.AddExercise(input.WorkoutID, e)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Added exercise %q (ID: %s)", input.Name, shortID(id)),
	}, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, idOutput, error) {
	set := models.NewSet(input.ExerciseID, input.SetNumber).
		WithWeight(input.Weight).
		WithReps(input.Reps)
	if input.Completed != nil {
		set.WithCompleted(*input.Completed)
	}
	if input.RestTime > 0 {
		set.WithRestTime(input.RestTime)
	}
	if input.Notes != "" {
		set.WithNotes(input.Notes)
	}

	id, err := s.repo.AddSet(input.ExerciseID, set)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add set: %w", err)
	}

	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Added set %d: %.1f kg x %d", input.SetNumber, input.Weight, input.Reps),
	}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.GetFullWorkout(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}
	return nil, w, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts, err := s.repo.ListWorkouts(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, workouts, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteWorkout(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout %s with its exercises and sets", shortID(input.ID)),
	}, nil
}

func (s *Server) handleWorkoutStats(ctx context.Context, req *mcp.CallToolRequest, input noInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.repo.WorkoutStatistics()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return nil, stats, nil
}

func (s *Server) handleWorkoutCalendar(ctx context.Context, req *mcp.CallToolRequest, input calendarInput) (*mcp.CallToolResult, any, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, nil, fmt.Errorf("month must be 1-12, got %d", input.Month)
	}
	calendar, err := s.repo.WorkoutCalendar(input.Year, time.Month(input.Month))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build calendar: %w", err)
	}
	return nil, calendar, nil
}

func (s *Server) handleAddMeasurement(ctx context.Context, req *mcp.CallToolRequest, input addMeasurementInput) (*mcp.CallToolResult, idOutput, error) {
	m := models.NewMeasurement()
	if input.Date != "" {
		if t, err := parseTimestamp(input.Date); err == nil {
			m.WithDate(t)
		}
	}
	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}
	for name, value := range input.Metrics {
		if !m.SetMetric(name, value) {
			return nil, idOutput{}, fmt.Errorf("unknown measurement metric: %s", name)
		}
	}

	id, err := s.repo.AddMeasurement(m)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add measurement: %w", err)
	}

	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Added measurement with %d metrics (ID: %s)", len(input.Metrics), shortID(id)),
	}, nil
}

func (s *Server) handleMeasurementHistory(ctx context.Context, req *mcp.CallToolRequest, input historyInput) (*mcp.CallToolResult, any, error) {
	if input.WindowDays <= 0 {
		input.WindowDays = 30
	}

	history, err := s.repo.MeasurementHistory(input.Metric, input.WindowDays)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load history: %w", err)
	}

	if len(history) == 0 {
		return nil, map[string]any{"message": "No measurements in the window."}, nil
	}
	return nil, history, nil
}

func (s *Server) handleAddRecord(ctx context.Context, req *mcp.CallToolRequest, input addRecordInput) (*mcp.CallToolResult, idOutput, error) {
	r := models.NewPersonalRecord(input.ExerciseName, input.Weight)
	if input.Reps > 0 {
		r.WithReps(input.Reps)
	}
	if input.Date != "" {
		if t, err := parseTimestamp(input.Date); err == nil {
			r.WithDate(t)
		}
	}
	if input.Notes != "" {
		r.WithNotes(input.Notes)
	}

	id, err := s.repo.AddPersonalRecord(r)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add record: %w", err)
	}

	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Recorded %s: %.1f kg (ID: %s)", input.ExerciseName, input.Weight, shortID(id)),
	}, nil
}

func (s *Server) handleProgressStats(ctx context.Context, req *mcp.CallToolRequest, input noInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.repo.ProgressStatistics()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute progress: %w", err)
	}
	return nil, stats, nil
}

func (s *Server) handleRecommendations(ctx context.Context, req *mcp.CallToolRequest, input noInput) (*mcp.CallToolResult, any, error) {
	recs, err := s.repo.Recommendations(s.thresholds)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute recommendations: %w", err)
	}
	if len(recs) == 0 {
		return nil, map[string]any{"message": "Keep going, nothing to flag."}, nil
	}
	return nil, recs, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02 15:04", s)
	}
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	return t, err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
