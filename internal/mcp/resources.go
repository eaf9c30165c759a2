// ABOUTME: MCP resource implementations for the training store.
// ABOUTME: Serves a plain-text training summary and the best lifts per exercise.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitex://summary",
		Name:        "Training Summary",
		Description: "Overall workout statistics, body progress and recent sessions",
		MIMEType:    "text/plain",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitex://records",
		Name:        "Best Lifts",
		Description: "Best personal record per exercise",
		MIMEType:    "text/plain",
	}, s.handleRecordsResource)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var b strings.Builder
	b.WriteString("Training Summary\n")
	b.WriteString("================\n\n")

	stats, err := s.repo.WorkoutStatistics()
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	b.WriteString(fmt.Sprintf("Total workouts:   %d\n", stats.TotalWorkouts))
	b.WriteString(fmt.Sprintf("Total sets:       %d\n", stats.TotalSets))
	b.WriteString(fmt.Sprintf("Total volume:     %.1f kg\n", stats.TotalVolume))
	b.WriteString(fmt.Sprintf("Current streak:   %d days\n\n", stats.StreakDays))

	progress, err := s.repo.ProgressStatistics()
	if err != nil {
		return nil, fmt.Errorf("failed to compute progress: %w", err)
	}

	b.WriteString(fmt.Sprintf("Weight change:    %+.1f kg\n", progress.WeightChange))
	b.WriteString(fmt.Sprintf("Body fat change:  %+.1f %%\n", progress.BodyFatChange))
	b.WriteString(fmt.Sprintf("Muscle gain est:  %+.1f kg\n\n", progress.MuscleGainEstimate))

	workouts, err := s.repo.ListWorkouts(5)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	b.WriteString("Recent Workouts\n")
	b.WriteString("---------------\n")
	if len(workouts) == 0 {
		b.WriteString("none yet\n")
	}
	for _, w := range workouts {
		b.WriteString(fmt.Sprintf("%s  %-20s %d exercises, %.1f kg\n",
			w.Date.Format(time.DateOnly), w.Name, w.ExercisesCount, w.TotalVolume))
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "fitex://summary",
				MIMEType: "text/plain",
				Text:     b.String(),
			},
		},
	}, nil
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.BestPersonalRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	var b strings.Builder
	b.WriteString("Best Lifts\n")
	b.WriteString("==========\n\n")
	if len(records) == 0 {
		b.WriteString("no personal records yet\n")
	}
	for _, r := range records {
		b.WriteString(fmt.Sprintf("%-20s %.1f kg", r.ExerciseName, r.Weight))
		if r.Reps != nil {
			b.WriteString(fmt.Sprintf(" x %d", *r.Reps))
		}
		b.WriteString(fmt.Sprintf("  (%s)\n", r.Date.Format(time.DateOnly)))
		if r.Notes != nil && *r.Notes != "" {
			b.WriteString(fmt.Sprintf("  %s\n", *r.Notes))
		}
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "fitex://records",
				MIMEType: "text/plain",
				Text:     b.String(),
			},
		},
	}, nil
}
