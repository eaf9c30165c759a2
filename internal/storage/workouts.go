// ABOUTME: Workout aggregate manager: the workout -> exercise -> set tree.
// ABOUTME: Derived counters are fully recomputed after every child mutation, never patched incrementally.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fitexapp/fitex/internal/models"
)

const workoutColumns = `id, name, type, date, duration, notes, status,
	muscle_groups, exercises_count, sets_count, total_volume, created_at, updated_at`

// CreateWorkout stores a new workout with zeroed aggregate counters.
// Name is required; the remaining fields default as documented on
// models.NewWorkout.
func (d *DB) CreateWorkout(w *models.Workout) (string, error) {
	if w.Name == "" {
		return "", fmt.Errorf("%w: workout name is required", ErrValidation)
	}
	if w.Type == "" {
		w.Type = models.DefaultWorkoutType
	}
	if w.Date.IsZero() {
		w.Date = time.Now()
	}
	if w.Status == "" {
		w.Status = models.StatusCompleted
	}

	groups, err := marshalMuscleGroups(w.MuscleGroups)
	if err != nil {
		return "", err
	}

	id, err := d.Insert(TableWorkouts, map[string]any{
		"name":            w.Name,
		"type":            w.Type,
		"date":            formatTime(w.Date),
		"duration":        w.Duration,
		"notes":           w.Notes,
		"status":          w.Status,
		"muscle_groups":   groups,
		"exercises_count": 0,
		"sets_count":      0,
		"total_volume":    0,
	})
	if err != nil {
		return "", err
	}
	w.ID = id
	return id, nil
}

// GetWorkout retrieves a workout by id, without its exercise tree.
func (d *DB) GetWorkout(id string) (*models.Workout, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM workouts WHERE id = ? AND deleted = 0", workoutColumns)
	return d.scanWorkoutRow(d.db.QueryRow(query, id), id)
}

// ListWorkouts retrieves workouts ordered by date descending.
// limit <= 0 means all.
func (d *DB) ListWorkouts(limit int) ([]*models.Workout, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM workouts WHERE deleted = 0 ORDER BY date DESC", workoutColumns)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, &QueryError{Statement: query, Err: err}
	}
	defer rows.Close()

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

// UpdateWorkout persists a partial update. Derived counters are managed
// by recomputation and must not be passed here.
func (d *DB) UpdateWorkout(id string, fields map[string]any) error {
	if groups, ok := fields["muscle_groups"].([]string); ok {
		serialized, err := marshalMuscleGroups(groups)
		if err != nil {
			return err
		}
		fields["muscle_groups"] = serialized
	}
	return d.Update(TableWorkouts, id, fields)
}

// DeleteWorkout removes a workout; its exercises and their sets go with
// it via the cascade.
func (d *DB) DeleteWorkout(id string) error {
	ok, err := d.exists(TableWorkouts, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: workout %s", ErrNotFound, id)
	}
	return d.Delete(TableWorkouts, id)
}

// AddExercise stores a new exercise under an existing workout and
// recomputes the workout's aggregates. The workout must exist.
func (d *DB) AddExercise(workoutID string, e *models.Exercise) (string, error) {
	if e.Name == "" {
		return "", fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	ok, err := d.exists(TableWorkouts, workoutID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: workout %s", ErrNotFound, workoutID)
	}

	id, err := d.Insert(TableExercises, map[string]any{
		"workout_id":   workoutID,
		"name":         e.Name,
		"muscle_group": e.MuscleGroup,
		"order_index":  e.OrderIndex,
		"notes":        e.Notes,
	})
	if err != nil {
		return "", err
	}
	e.ID = id
	e.WorkoutID = workoutID

	if err := d.RecomputeWorkoutAggregates(workoutID); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateExercise persists a partial update and recomputes the owning
// workout's aggregates.
func (d *DB) UpdateExercise(id string, fields map[string]any) error {
	workoutID, err := d.workoutIDForExercise(id)
	if err != nil {
		return err
	}
	if err := d.Update(TableExercises, id, fields); err != nil {
		return err
	}
	return d.RecomputeWorkoutAggregates(workoutID)
}

// DeleteExercise removes an exercise and its sets, then recomputes the
// owning workout's aggregates. Remaining exercises keep their
// order_index; gaps are the caller's concern.
func (d *DB) DeleteExercise(id string) error {
	workoutID, err := d.workoutIDForExercise(id)
	if err != nil {
		return err
	}
	if err := d.Delete(TableExercises, id); err != nil {
		return err
	}
	return d.RecomputeWorkoutAggregates(workoutID)
}

// AddSet stores a new set under an existing exercise, then recomputes the
// aggregates of the workout that owns the exercise.
func (d *DB) AddSet(exerciseID string, s *models.Set) (string, error) {
	if s.SetNumber < 1 {
		return "", fmt.Errorf("%w: set_number must be >= 1", ErrValidation)
	}
	workoutID, err := d.workoutIDForExercise(exerciseID)
	if err != nil {
		return "", err
	}

	id, err := d.Insert(TableSets, map[string]any{
		"exercise_id": exerciseID,
		"set_number":  s.SetNumber,
		"weight":      s.Weight,
		"reps":        s.Reps,
		"completed":   boolToInt(s.Completed),
		"rest_time":   s.RestTime,
		"notes":       s.Notes,
	})
	if err != nil {
		return "", err
	}
	s.ID = id
	s.ExerciseID = exerciseID

	if err := d.RecomputeWorkoutAggregates(workoutID); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSet persists a partial update (toggling completed, fixing weight
// or reps) and recomputes the owning workout's aggregates.
func (d *DB) UpdateSet(id string, fields map[string]any) error {
	workoutID, err := d.workoutIDForSet(id)
	if err != nil {
		return err
	}
	if done, ok := fields["completed"].(bool); ok {
		fields["completed"] = boolToInt(done)
	}
	if err := d.Update(TableSets, id, fields); err != nil {
		return err
	}
	return d.RecomputeWorkoutAggregates(workoutID)
}

// DeleteSet removes a set and recomputes the owning workout's aggregates.
func (d *DB) DeleteSet(id string) error {
	workoutID, err := d.workoutIDForSet(id)
	if err != nil {
		return err
	}
	if err := d.Delete(TableSets, id); err != nil {
		return err
	}
	return d.RecomputeWorkoutAggregates(workoutID)
}

// RecomputeWorkoutAggregates rewrites exercises_count, sets_count and
// total_volume from a live read of the child rows. A pure
// read-then-overwrite: safe to re-run, never an incremental patch.
func (d *DB) RecomputeWorkoutAggregates(workoutID string) error {
	exercises, err := d.count(TableExercises, "workout_id = ?", workoutID)
	if err != nil {
		return err
	}

	setRows, err := d.QueryRows(`
		SELECT COUNT(*) AS n,
		       COALESCE(SUM(CASE WHEN s.completed = 1 THEN s.weight * s.reps ELSE 0 END), 0) AS volume
		FROM sets s
		JOIN exercises e ON s.exercise_id = e.id
		WHERE e.workout_id = ? AND s.deleted = 0 AND e.deleted = 0
	`, workoutID)
	if err != nil {
		return err
	}

	sets := 0
	volume := 0.0
	if len(setRows) > 0 {
		sets = int(asInt(setRows[0]["n"]))
		volume = asFloat(setRows[0]["volume"])
	}

	return d.Update(TableWorkouts, workoutID, map[string]any{
		"exercises_count": exercises,
		"sets_count":      sets,
		"total_volume":    volume,
	})
}

// GetFullWorkout assembles the workout with its nested exercises and
// sets for detail views. Exercises come back in order_index order, sets
// in set_number order.
func (d *DB) GetFullWorkout(id string) (*models.Workout, error) {
	w, err := d.GetWorkout(id)
	if err != nil {
		return nil, err
	}

	exRows, err := d.db.Query(`
		SELECT id, workout_id, name, muscle_group, order_index, notes, created_at, updated_at
		FROM exercises
		WHERE workout_id = ? AND deleted = 0
		ORDER BY order_index ASC, created_at ASC
	`, id)
	if err != nil {
		return nil, &QueryError{Statement: "select exercises", Err: err}
	}
	defer exRows.Close()

	for exRows.Next() {
		var e models.Exercise
		var muscleGroup, notes sql.NullString
		var createdAt, updatedAt string
		if err := exRows.Scan(&e.ID, &e.WorkoutID, &e.Name, &muscleGroup,
			&e.OrderIndex, &notes, &createdAt, &updatedAt); err != nil {
			return nil, &QueryError{Statement: "scan exercise", Err: err}
		}
		if muscleGroup.Valid {
			e.MuscleGroup = &muscleGroup.String
		}
		if notes.Valid {
			e.Notes = &notes.String
		}
		e.CreatedAt = parseStoredTime(createdAt)
		e.UpdatedAt = parseStoredTime(updatedAt)
		w.Exercises = append(w.Exercises, e)
	}
	if err := exRows.Err(); err != nil {
		return nil, &QueryError{Statement: "select exercises", Err: err}
	}

	for i := range w.Exercises {
		sets, err := d.setsForExercise(w.Exercises[i].ID)
		if err != nil {
			return nil, err
		}
		w.Exercises[i].Sets = sets
	}
	return w, nil
}

func (d *DB) setsForExercise(exerciseID string) ([]models.Set, error) {
	rows, err := d.db.Query(`
		SELECT id, exercise_id, set_number, weight, reps, completed, rest_time, notes, created_at, updated_at
		FROM sets
		WHERE exercise_id = ? AND deleted = 0
		ORDER BY set_number ASC, created_at ASC
	`, exerciseID)
	if err != nil {
		return nil, &QueryError{Statement: "select sets", Err: err}
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var s models.Set
		var completed int
		var restTime sql.NullInt64
		var notes sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.ExerciseID, &s.SetNumber, &s.Weight,
			&s.Reps, &completed, &restTime, &notes, &createdAt, &updatedAt); err != nil {
			return nil, &QueryError{Statement: "scan set", Err: err}
		}
		s.Completed = completed != 0
		if restTime.Valid {
			rt := int(restTime.Int64)
			s.RestTime = &rt
		}
		if notes.Valid {
			s.Notes = &notes.String
		}
		s.CreatedAt = parseStoredTime(createdAt)
		s.UpdatedAt = parseStoredTime(updatedAt)
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// WorkoutStats summarizes the whole training history.
type WorkoutStats struct {
	TotalWorkouts   int        `json:"total_workouts"`
	TotalExercises  int        `json:"total_exercises"`
	TotalSets       int        `json:"total_sets"`
	TotalVolume     float64    `json:"total_volume"`
	StreakDays      int        `json:"streak_days"`
	LastWorkoutDate *time.Time `json:"last_workout_date,omitempty"`
}

// WorkoutStatistics computes overall totals plus the longest streak of
// consecutive calendar days that each contain at least one workout. The
// streak is the longest run anywhere in history, not necessarily one
// ending today.
func (d *DB) WorkoutStatistics() (*WorkoutStats, error) {
	rows, err := d.QueryRows(`
		SELECT COUNT(*) AS total_workouts,
		       COALESCE(SUM(exercises_count), 0) AS total_exercises,
		       COALESCE(SUM(sets_count), 0) AS total_sets,
		       COALESCE(SUM(total_volume), 0) AS total_volume,
		       MAX(date) AS last_workout
		FROM workouts
		WHERE deleted = 0
	`)
	if err != nil {
		return nil, err
	}

	stats := &WorkoutStats{}
	if len(rows) > 0 {
		stats.TotalWorkouts = int(asInt(rows[0]["total_workouts"]))
		stats.TotalExercises = int(asInt(rows[0]["total_exercises"]))
		stats.TotalSets = int(asInt(rows[0]["total_sets"]))
		stats.TotalVolume = asFloat(rows[0]["total_volume"])
		if last := asString(rows[0]["last_workout"]); last != "" {
			t := parseStoredTime(last)
			stats.LastWorkoutDate = &t
		}
	}

	days, err := d.workoutDays()
	if err != nil {
		return nil, err
	}
	stats.StreakDays = longestStreak(days)
	return stats, nil
}

// workoutDays returns the distinct calendar days (as epoch day numbers)
// on which at least one workout happened.
func (d *DB) workoutDays() ([]int, error) {
	rows, err := d.QueryRows("SELECT date FROM workouts WHERE deleted = 0")
	if err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	for _, r := range rows {
		t := parseStoredTime(asString(r["date"]))
		if t.IsZero() {
			continue
		}
		seen[epochDay(t)] = true
	}

	days := make([]int, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Ints(days)
	return days, nil
}

// longestStreak finds the maximal run of consecutive day numbers.
func longestStreak(days []int) int {
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i] == days[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// epochDay maps a timestamp to its calendar day number in the
// timestamp's own location.
func epochDay(t time.Time) int {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / 86400)
}

// CalendarDay is one day of the workout calendar.
type CalendarDay struct {
	Date         string `json:"date"` // YYYY-MM-DD
	HasWorkout   bool   `json:"has_workout"`
	WorkoutCount int    `json:"workout_count"`
}

// WorkoutCalendar reports, for every day of the given month, whether at
// least one workout occurred and how many. Always returns exactly as
// many entries as the month has days.
func (d *DB) WorkoutCalendar(year int, month time.Month) ([]CalendarDay, error) {
	rows, err := d.QueryRows("SELECT date FROM workouts WHERE deleted = 0")
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, r := range rows {
		t := parseStoredTime(asString(r["date"]))
		if t.IsZero() {
			continue
		}
		counts[t.Format("2006-01-02")]++
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	calendar := make([]CalendarDay, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		key := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		n := counts[key]
		calendar = append(calendar, CalendarDay{
			Date:         key,
			HasWorkout:   n > 0,
			WorkoutCount: n,
		})
	}
	return calendar, nil
}

// workoutIDForExercise resolves the workout owning an exercise.
func (d *DB) workoutIDForExercise(exerciseID string) (string, error) {
	row, err := d.GetByID(TableExercises, exerciseID)
	if err != nil {
		return "", err
	}
	return asString(row["workout_id"]), nil
}

// workoutIDForSet resolves the workout owning a set, through its exercise.
func (d *DB) workoutIDForSet(setID string) (string, error) {
	rows, err := d.QueryRows(`
		SELECT e.workout_id AS workout_id
		FROM sets s
		JOIN exercises e ON s.exercise_id = e.id
		WHERE s.id = ? AND s.deleted = 0 AND e.deleted = 0
	`, setID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: set %s", ErrNotFound, setID)
	}
	return asString(rows[0]["workout_id"]), nil
}

func (d *DB) scanWorkoutRow(row *sql.Row, id string) (*models.Workout, error) {
	w, err := scanWorkout(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: workout %s", ErrNotFound, id)
		}
		return nil, err
	}
	return w, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanWorkout(row scanner) (*models.Workout, error) {
	var w models.Workout
	var workoutType, status, notes, groups sql.NullString
	var date, createdAt, updatedAt string
	var duration sql.NullInt64
	var totalVolume sql.NullFloat64

	err := row.Scan(&w.ID, &w.Name, &workoutType, &date, &duration, &notes,
		&status, &groups, &w.ExercisesCount, &w.SetsCount, &totalVolume,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	w.Type = workoutType.String
	w.Status = status.String
	w.Date = parseStoredTime(date)
	w.CreatedAt = parseStoredTime(createdAt)
	w.UpdatedAt = parseStoredTime(updatedAt)
	if duration.Valid {
		w.Duration = int(duration.Int64)
	}
	if notes.Valid {
		w.Notes = &notes.String
	}
	if totalVolume.Valid {
		w.TotalVolume = totalVolume.Float64
	}
	w.MuscleGroups = parseMuscleGroups(groups.String)
	return &w, nil
}

func marshalMuscleGroups(groups []string) (string, error) {
	if groups == nil {
		groups = []string{}
	}
	data, err := json.Marshal(groups)
	if err != nil {
		return "", fmt.Errorf("%w: muscle_groups: %v", ErrValidation, err)
	}
	return string(data), nil
}

func parseMuscleGroups(serialized string) []string {
	if serialized == "" {
		return []string{}
	}
	var groups []string
	if err := json.Unmarshal([]byte(serialized), &groups); err != nil || groups == nil {
		return []string{}
	}
	return groups
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
