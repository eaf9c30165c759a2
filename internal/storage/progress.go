// ABOUTME: Progress tracker: body measurements, personal records and derived trend statistics.
// ABOUTME: Also produces the rule-based training recommendations.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fitexapp/fitex/internal/models"
)

const measurementColumns = `id, date, weight, body_fat, chest, waist, hips,
	arms, thighs, calves, neck, notes, created_at, updated_at`

const recordColumns = `id, exercise_name, weight, reps, date, notes, created_at, updated_at`

// AddMeasurement stores a body measurement snapshot. Only the metrics
// actually present on the model are written; the rest stay NULL so that
// presence-of-field queries work.
func (d *DB) AddMeasurement(m *models.Measurement) (string, error) {
	if m.Date.IsZero() {
		m.Date = time.Now()
	}

	fields := map[string]any{
		"date":  formatTime(m.Date),
		"notes": m.Notes,
	}
	for _, metric := range models.AllMeasurementMetrics {
		if v := m.Metric(metric); v != nil {
			fields[metric] = *v
		}
	}

	id, err := d.Insert(TableMeasurements, fields)
	if err != nil {
		return "", err
	}
	m.ID = id
	return id, nil
}

// ListMeasurements retrieves measurements ordered by date descending.
// limit <= 0 means all.
func (d *DB) ListMeasurements(limit int) ([]*models.Measurement, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM measurements WHERE deleted = 0 ORDER BY date DESC", measurementColumns)
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

	var measurements []*models.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

// DeleteMeasurement removes a measurement.
func (d *DB) DeleteMeasurement(id string) error {
	ok, err := d.exists(TableMeasurements, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: measurement %s", ErrNotFound, id)
	}
	return d.Delete(TableMeasurements, id)
}

// HistoryPoint is one dated value of a single measurement metric.
type HistoryPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MeasurementHistory returns the trailing window of one metric, ascending
// by date, restricted to measurements where the metric is present. The
// metric names a known column; anything else is rejected before the query.
func (d *DB) MeasurementHistory(metric string, windowDays int) ([]HistoryPoint, error) {
	if !models.IsValidMeasurementMetric(metric) {
		return nil, fmt.Errorf("%w: unknown measurement metric %q", ErrValidation, metric)
	}

	// The column name comes from the validated metric whitelist; the
	// values still travel as bound parameters.
	rows, err := d.QueryRows(fmt.Sprintf(`
		SELECT date, %s AS value
		FROM measurements
		WHERE %s IS NOT NULL AND deleted = 0
		ORDER BY date ASC
	`, metric, metric))
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)
	history := []HistoryPoint{}
	for _, r := range rows {
		t := parseStoredTime(asString(r["date"]))
		if t.Before(cutoff) {
			continue
		}
		history = append(history, HistoryPoint{Date: t, Value: asFloat(r["value"])})
	}
	return history, nil
}

// AddPersonalRecord stores a new personal record. Records accumulate;
// there is no one-row-per-exercise constraint (see BestPersonalRecords).
func (d *DB) AddPersonalRecord(r *models.PersonalRecord) (string, error) {
	if r.ExerciseName == "" {
		return "", fmt.Errorf("%w: exercise_name is required", ErrValidation)
	}
	if r.Weight <= 0 {
		return "", fmt.Errorf("%w: record weight must be positive", ErrValidation)
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}

	id, err := d.Insert(TablePersonalRecords, map[string]any{
		"exercise_name": r.ExerciseName,
		"weight":        r.Weight,
		"reps":          r.Reps,
		"date":          formatTime(r.Date),
		"notes":         r.Notes,
	})
	if err != nil {
		return "", err
	}
	r.ID = id
	return id, nil
}

// ListPersonalRecords retrieves all records, heaviest first.
func (d *DB) ListPersonalRecords() ([]*models.PersonalRecord, error) {
	return d.queryRecords(fmt.Sprintf(
		"SELECT %s FROM personal_records WHERE deleted = 0 ORDER BY weight DESC, date DESC",
		recordColumns))
}

// RecordsForExercise retrieves the record history of one exercise,
// matched by exact name, most recent first.
func (d *DB) RecordsForExercise(exerciseName string) ([]*models.PersonalRecord, error) {
	return d.queryRecords(fmt.Sprintf(
		"SELECT %s FROM personal_records WHERE exercise_name = ? AND deleted = 0 ORDER BY date DESC",
		recordColumns), exerciseName)
}

// BestPersonalRecords picks the heaviest record per exercise name,
// heaviest exercise first. This is "the" personal record view over the
// unbounded history.
func (d *DB) BestPersonalRecords() ([]*models.PersonalRecord, error) {
	all, err := d.ListPersonalRecords()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var best []*models.PersonalRecord
	for _, r := range all {
		if seen[r.ExerciseName] {
			continue
		}
		seen[r.ExerciseName] = true
		best = append(best, r)
	}
	return best, nil
}

// DeletePersonalRecord removes a record.
func (d *DB) DeletePersonalRecord(id string) error {
	ok, err := d.exists(TablePersonalRecords, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: personal record %s", ErrNotFound, id)
	}
	return d.Delete(TablePersonalRecords, id)
}

// ProgressStats summarizes measurement trends. Deltas compare the
// earliest and latest measurement that carries the respective metric;
// the reference dates for weight and body fat are found independently.
type ProgressStats struct {
	WeightChange       float64 `json:"weight_change"`
	BodyFatChange      float64 `json:"body_fat_change"`
	MuscleGainEstimate float64 `json:"muscle_gain_estimate"`
	TotalMeasurements  int     `json:"total_measurements"`
	TotalRecords       int     `json:"total_records"`
}

// ProgressStatistics computes weight and body fat deltas plus the
// lean-mass based muscle gain estimate. All deltas are zero when no
// measurements exist.
func (d *DB) ProgressStatistics() (*ProgressStats, error) {
	firstWeight, lastWeight, hasWeight, err := d.metricEndpoints(models.MetricWeight)
	if err != nil {
		return nil, err
	}
	firstFat, lastFat, hasFat, err := d.metricEndpoints(models.MetricBodyFat)
	if err != nil {
		return nil, err
	}

	totalMeasurements, err := d.count(TableMeasurements, "")
	if err != nil {
		return nil, err
	}
	totalRecords, err := d.count(TablePersonalRecords, "")
	if err != nil {
		return nil, err
	}

	stats := &ProgressStats{
		TotalMeasurements: totalMeasurements,
		TotalRecords:      totalRecords,
	}
	if hasWeight {
		stats.WeightChange = lastWeight - firstWeight
	}
	if hasFat {
		stats.BodyFatChange = lastFat - firstFat
	}
	if hasWeight && hasFat {
		stats.MuscleGainEstimate = lastWeight*(1-lastFat/100) - firstWeight*(1-firstFat/100)
	}
	return stats, nil
}

// metricEndpoints finds the earliest and latest value of one measurement
// metric, by presence of the field.
func (d *DB) metricEndpoints(metric string) (first, last float64, ok bool, err error) {
	rows, qerr := d.QueryRows(fmt.Sprintf(`
		SELECT %s AS value
		FROM measurements
		WHERE %s IS NOT NULL AND deleted = 0
		ORDER BY date ASC
	`, metric, metric))
	if qerr != nil {
		return 0, 0, false, qerr
	}
	if len(rows) == 0 {
		return 0, 0, false, nil
	}
	return asFloat(rows[0]["value"]), asFloat(rows[len(rows)-1]["value"]), true, nil
}

// Thresholds are the policy knobs behind Recommendations. Values are
// advisory policy, not invariants; the defaults can be overridden from
// the config file.
type Thresholds struct {
	MaxWeight        float64 // kg; latest weight above this flags a cardio suggestion
	MaxBodyFat       float64 // percent; latest body fat above this flags intensity
	RecordWindowDays int     // days without a new record before nudging
}

// DefaultThresholds is the built-in recommendation policy.
var DefaultThresholds = Thresholds{
	MaxWeight:        100,
	MaxBodyFat:       20,
	RecordWindowDays: 30,
}

// Recommendations returns advisory strings derived from the latest
// measurement and the recent record history. Purely informational.
func (d *DB) Recommendations(t Thresholds) ([]string, error) {
	var recommendations []string

	latest, err := d.ListMeasurements(1)
	if err != nil {
		return nil, err
	}
	if len(latest) > 0 {
		m := latest[0]
		if m.Weight != nil && *m.Weight > t.MaxWeight {
			recommendations = append(recommendations,
				fmt.Sprintf("Consider adding cardio sessions: latest weight is above %.0f kg", t.MaxWeight))
		}
		if m.BodyFat != nil && *m.BodyFat > t.MaxBodyFat {
			recommendations = append(recommendations,
				fmt.Sprintf("Consider increasing training intensity: body fat is above %.0f%%", t.MaxBodyFat))
		}
	}

	cutoff := time.Now().AddDate(0, 0, -t.RecordWindowDays)
	recent, err := d.count(TablePersonalRecords, "date > ?", formatTime(cutoff))
	if err != nil {
		return nil, err
	}
	if recent == 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("No personal record in the last %d days - try to beat one next session", t.RecordWindowDays))
	}

	return recommendations, nil
}

func (d *DB) queryRecords(query string, args ...any) ([]*models.PersonalRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, &QueryError{Statement: query, Err: err}
	}
	defer rows.Close()

	var records []*models.PersonalRecord
	for rows.Next() {
		var r models.PersonalRecord
		var reps sql.NullInt64
		var notes sql.NullString
		var date, createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.ExerciseName, &r.Weight, &reps, &date,
			&notes, &createdAt, &updatedAt); err != nil {
			return nil, &QueryError{Statement: "scan personal record", Err: err}
		}
		if reps.Valid {
			n := int(reps.Int64)
			r.Reps = &n
		}
		if notes.Valid {
			r.Notes = &notes.String
		}
		r.Date = parseStoredTime(date)
		r.CreatedAt = parseStoredTime(createdAt)
		r.UpdatedAt = parseStoredTime(updatedAt)
		records = append(records, &r)
	}
	return records, rows.Err()
}

func scanMeasurement(rows *sql.Rows) (*models.Measurement, error) {
	var m models.Measurement
	var date, createdAt, updatedAt string
	var notes sql.NullString
	metrics := make([]sql.NullFloat64, len(models.AllMeasurementMetrics))

	dest := []any{&m.ID, &date}
	for i := range metrics {
		dest = append(dest, &metrics[i])
	}
	dest = append(dest, &notes, &createdAt, &updatedAt)

	if err := rows.Scan(dest...); err != nil {
		return nil, &QueryError{Statement: "scan measurement", Err: err}
	}

	for i, metric := range models.AllMeasurementMetrics {
		if metrics[i].Valid {
			m.SetMetric(metric, metrics[i].Float64)
		}
	}
	if notes.Valid {
		m.Notes = &notes.String
	}
	m.Date = parseStoredTime(date)
	m.CreatedAt = parseStoredTime(createdAt)
	m.UpdatedAt = parseStoredTime(updatedAt)
	return &m, nil
}
