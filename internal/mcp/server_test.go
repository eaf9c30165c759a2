// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fitexapp/fitex/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func setupTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "fitex.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	server, err := NewServer(db, storage.DefaultThresholds)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("expected non-nil repo")
	}
}

func TestHandleAddWorkout(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   addWorkoutInput
		wantErr bool
	}{
		{
			name:  "name only",
			input: addWorkoutInput{Name: "Morning Session"},
		},
		{
			name: "full input",
			input: addWorkoutInput{
				Name:         "Leg Day",
				Type:         "Strength",
				Date:         "2026-08-30T09:00:00Z",
				Duration:     75,
				MuscleGroups: []string{"Legs", "Glutes"},
				Notes:        "heavy",
			},
		},
		{
			name:    "empty name",
			input:   addWorkoutInput{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddWorkout(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.ID == "" {
				t.Error("expected non-empty ID")
			}
			if output.Message == "" {
				t.Error("expected non-empty Message")
			}
		})
	}
}

func TestHandleAddExerciseAndSet(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, w, err := server.handleAddWorkout(ctx, &mcp.CallToolRequest{},
		addWorkoutInput{Name: "Push Day"})
	if err != nil {
		t.Fatalf("handleAddWorkout failed: %v", err)
	}

	_, e, err := server.handleAddExercise(ctx, &mcp.CallToolRequest{},
		addExerciseInput{WorkoutID: w.ID, Name: "Bench Press", MuscleGroup: "Chest"})
	if err != nil {
		t.Fatalf("handleAddExercise failed: %v", err)
	}

	_, _, err = server.handleAddSet(ctx, &mcp.CallToolRequest{},
		addSetInput{ExerciseID: e.ID, SetNumber: 1, Weight: 80, Reps: 10})
	if err != nil {
		t.Fatalf("handleAddSet failed: %v", err)
	}

	// Against a missing parent the handlers fail
	_, _, err = server.handleAddExercise(ctx, &mcp.CallToolRequest{},
		addExerciseInput{WorkoutID: "missing", Name: "Squat"})
	if err == nil {
		t.Error("expected error for missing workout")
	}
}

func TestHandleGetWorkout(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	if _, err := db.SeedDemoData(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	workouts, _ := db.ListWorkouts(1)

	_, out, err := server.handleGetWorkout(ctx, &mcp.CallToolRequest{},
		workoutIDInput{ID: workouts[0].ID})
	if err != nil {
		t.Fatalf("handleGetWorkout failed: %v", err)
	}
	if out == nil {
		t.Error("expected workout output")
	}

	_, _, err = server.handleGetWorkout(ctx, &mcp.CallToolRequest{},
		workoutIDInput{ID: "missing"})
	if err == nil {
		t.Error("expected error for missing workout")
	}
}

func TestHandleAddMeasurement(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleAddMeasurement(ctx, &mcp.CallToolRequest{},
		addMeasurementInput{Metrics: map[string]float64{"weight": 82.5, "waist": 84}})
	if err != nil {
		t.Fatalf("handleAddMeasurement failed: %v", err)
	}
	if out.ID == "" {
		t.Error("expected non-empty ID")
	}

	_, _, err = server.handleAddMeasurement(ctx, &mcp.CallToolRequest{},
		addMeasurementInput{Metrics: map[string]float64{"wingspan": 180}})
	if err == nil || !strings.Contains(err.Error(), "unknown measurement metric") {
		t.Errorf("expected unknown metric error, got %v", err)
	}
}

func TestHandleWorkoutCalendarValidation(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleWorkoutCalendar(ctx, &mcp.CallToolRequest{},
		calendarInput{Year: 2026, Month: 13})
	if err == nil {
		t.Error("expected error for month 13")
	}

	_, out, err := server.handleWorkoutCalendar(ctx, &mcp.CallToolRequest{},
		calendarInput{Year: 2026, Month: 2})
	if err != nil {
		t.Fatalf("handleWorkoutCalendar failed: %v", err)
	}
	days, ok := out.([]storage.CalendarDay)
	if !ok {
		t.Fatalf("unexpected output type %T", out)
	}
	if len(days) != 28 {
		t.Errorf("expected 28 days, got %d", len(days))
	}
}

func TestSummaryResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	if _, err := db.SeedDemoData(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	result, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleSummaryResource failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected 1 content block, got %d", len(result.Contents))
	}
	text := result.Contents[0].Text
	if !strings.Contains(text, "Training Summary") {
		t.Error("summary missing header")
	}
	if !strings.Contains(text, "Leg Day") {
		t.Error("summary missing seeded workout")
	}
}

func TestRecordsResource(t *testing.T) {
	server, db := setupTestServer(t)
	ctx := context.Background()

	if _, err := db.SeedDemoData(); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	result, err := server.handleRecordsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleRecordsResource failed: %v", err)
	}
	text := result.Contents[0].Text
	if !strings.Contains(text, "Bench Press") || !strings.Contains(text, "Squat") {
		t.Errorf("records resource missing seeded lifts: %q", text)
	}
}
