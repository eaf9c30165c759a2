// ABOUTME: Tests for measurements, personal records and progress statistics.
// ABOUTME: Validates history windows, deltas, best records and recommendations.
package storage

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/fitexapp/fitex/internal/models"
)

func TestAddMeasurementPartialMetrics(t *testing.T) {
	db := setupTestDB(t)

	m := models.NewMeasurement()
	m.SetMetric(models.MetricWeight, 82.5)
	m.SetMetric(models.MetricWaist, 84)

	id, err := db.AddMeasurement(m)
	if err != nil {
		t.Fatalf("AddMeasurement failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	list, err := db.ListMeasurements(10)
	if err != nil {
		t.Fatalf("ListMeasurements failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 measurement, got %d", len(list))
	}
	got := list[0]
	if got.Weight == nil || *got.Weight != 82.5 {
		t.Errorf("weight mismatch: %v", got.Weight)
	}
	if got.Waist == nil || *got.Waist != 84 {
		t.Errorf("waist mismatch: %v", got.Waist)
	}
	if got.BodyFat != nil {
		t.Error("body fat should stay unset")
	}
}

func TestMeasurementHistoryWindow(t *testing.T) {
	db := setupTestDB(t)

	old := models.NewMeasurement().WithDate(time.Now().AddDate(0, 0, -31))
	old.SetMetric(models.MetricWeight, 85)
	db.AddMeasurement(old)

	mid := models.NewMeasurement().WithDate(time.Now().AddDate(0, 0, -10))
	mid.SetMetric(models.MetricWeight, 83)
	db.AddMeasurement(mid)

	recent := models.NewMeasurement()
	recent.SetMetric(models.MetricWeight, 82)
	db.AddMeasurement(recent)

	noWeight := models.NewMeasurement()
	noWeight.SetMetric(models.MetricWaist, 84)
	db.AddMeasurement(noWeight)

	history, err := db.MeasurementHistory(models.MetricWeight, 30)
	if err != nil {
		t.Fatalf("MeasurementHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 points in the window, got %d", len(history))
	}
	if history[0].Value != 83 || history[1].Value != 82 {
		t.Errorf("expected ascending dates 83 then 82, got %v", history)
	}
}

func TestMeasurementHistoryRejectsUnknownMetric(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.MeasurementHistory("height; DROP TABLE measurements", 30)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestAddPersonalRecordValidation(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.AddPersonalRecord(models.NewPersonalRecord("", 100)); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := db.AddPersonalRecord(models.NewPersonalRecord("Squat", 0)); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for zero weight, got %v", err)
	}
}

func TestBestPersonalRecords(t *testing.T) {
	db := setupTestDB(t)

	db.AddPersonalRecord(models.NewPersonalRecord("Bench Press", 100))
	db.AddPersonalRecord(models.NewPersonalRecord("Bench Press", 120))
	db.AddPersonalRecord(models.NewPersonalRecord("Squat", 160))

	best, err := db.BestPersonalRecords()
	if err != nil {
		t.Fatalf("BestPersonalRecords failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("expected one best per exercise, got %d", len(best))
	}
	weights := map[string]float64{}
	for _, r := range best {
		weights[r.ExerciseName] = r.Weight
	}
	if weights["Bench Press"] != 120 {
		t.Errorf("expected bench best 120, got %f", weights["Bench Press"])
	}
	if weights["Squat"] != 160 {
		t.Errorf("expected squat best 160, got %f", weights["Squat"])
	}

	// Full history stays available
	all, _ := db.RecordsForExercise("Bench Press")
	if len(all) != 2 {
		t.Errorf("expected full record history, got %d", len(all))
	}
}

func TestProgressStatistics(t *testing.T) {
	db := setupTestDB(t)

	earlier := models.NewMeasurement().WithDate(time.Now().AddDate(0, -2, 0))
	earlier.SetMetric(models.MetricWeight, 80)
	earlier.SetMetric(models.MetricBodyFat, 20)
	db.AddMeasurement(earlier)

	later := models.NewMeasurement()
	later.SetMetric(models.MetricWeight, 76)
	later.SetMetric(models.MetricBodyFat, 16)
	db.AddMeasurement(later)

	stats, err := db.ProgressStatistics()
	if err != nil {
		t.Fatalf("ProgressStatistics failed: %v", err)
	}
	if stats.WeightChange != -4 {
		t.Errorf("expected weight change -4, got %f", stats.WeightChange)
	}
	if stats.BodyFatChange != -4 {
		t.Errorf("expected body fat change -4, got %f", stats.BodyFatChange)
	}
	// 76*0.84 - 80*0.80 = 63.84 - 64.00
	if math.Abs(stats.MuscleGainEstimate-(-0.16)) > 1e-9 {
		t.Errorf("expected muscle gain -0.16, got %f", stats.MuscleGainEstimate)
	}
	if stats.TotalMeasurements != 2 {
		t.Errorf("expected 2 measurements, got %d", stats.TotalMeasurements)
	}
}

func TestProgressStatisticsEmpty(t *testing.T) {
	db := setupTestDB(t)

	stats, err := db.ProgressStatistics()
	if err != nil {
		t.Fatalf("ProgressStatistics failed: %v", err)
	}
	if stats.WeightChange != 0 || stats.BodyFatChange != 0 || stats.MuscleGainEstimate != 0 {
		t.Error("expected zero deltas with no measurements")
	}
}

func TestRecommendations(t *testing.T) {
	db := setupTestDB(t)

	m := models.NewMeasurement()
	m.SetMetric(models.MetricWeight, 105)
	m.SetMetric(models.MetricBodyFat, 22)
	db.AddMeasurement(m)

	recs, err := db.Recommendations(DefaultThresholds)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 recommendations, got %d: %v", len(recs), recs)
	}
	if !strings.Contains(recs[0], "cardio") {
		t.Errorf("expected cardio suggestion first, got %q", recs[0])
	}
	if !strings.Contains(recs[1], "intensity") {
		t.Errorf("expected intensity suggestion, got %q", recs[1])
	}
	if !strings.Contains(recs[2], "personal record") {
		t.Errorf("expected record nudge, got %q", recs[2])
	}
}

func TestRecommendationsQuietWhenOnTrack(t *testing.T) {
	db := setupTestDB(t)

	m := models.NewMeasurement()
	m.SetMetric(models.MetricWeight, 75)
	m.SetMetric(models.MetricBodyFat, 15)
	db.AddMeasurement(m)
	db.AddPersonalRecord(models.NewPersonalRecord("Squat", 140))

	recs, err := db.Recommendations(DefaultThresholds)
	if err != nil {
		t.Fatalf("Recommendations failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %v", recs)
	}
}
