// ABOUTME: Tests for the demo data seeder.
// ABOUTME: Validates first-run seeding and the already-populated no-op.
package storage

import "testing"

func TestSeedDemoData(t *testing.T) {
	db := setupTestDB(t)

	seeded, err := db.SeedDemoData()
	if err != nil {
		t.Fatalf("SeedDemoData failed: %v", err)
	}
	if !seeded {
		t.Fatal("expected empty store to be seeded")
	}

	workouts, err := db.ListWorkouts(10)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("expected 2 seeded workouts, got %d", len(workouts))
	}
	for _, w := range workouts {
		if w.ExercisesCount == 0 || w.SetsCount == 0 || w.TotalVolume == 0 {
			t.Errorf("workout %q missing derived counters: %d/%d/%f",
				w.Name, w.ExercisesCount, w.SetsCount, w.TotalVolume)
		}
	}

	measurements, _ := db.ListMeasurements(10)
	if len(measurements) != 1 {
		t.Errorf("expected 1 seeded measurement, got %d", len(measurements))
	}
	records, _ := db.ListPersonalRecords()
	if len(records) != 2 {
		t.Errorf("expected 2 seeded records, got %d", len(records))
	}
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.SeedDemoData(); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	seeded, err := db.SeedDemoData()
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if seeded {
		t.Error("expected second seed to be a no-op")
	}

	workouts, _ := db.ListWorkouts(10)
	if len(workouts) != 2 {
		t.Errorf("expected workout count unchanged, got %d", len(workouts))
	}
}
