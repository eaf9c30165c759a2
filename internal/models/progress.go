// ABOUTME: Measurement and PersonalRecord models for progress tracking.
// ABOUTME: Measurements are point-in-time body snapshots; records are per-exercise bests.
package models

import "time"

// Measurement metric names, matching the measurement table columns that
// hold numeric body metrics. Used for history queries over one metric.
const (
	MetricWeight  = "weight"
	MetricBodyFat = "body_fat"
	MetricChest   = "chest"
	MetricWaist   = "waist"
	MetricHips    = "hips"
	MetricArms    = "arms"
	MetricThighs  = "thighs"
	MetricCalves  = "calves"
	MetricNeck    = "neck"
)

// AllMeasurementMetrics lists every queryable measurement metric.
var AllMeasurementMetrics = []string{
	MetricWeight, MetricBodyFat, MetricChest, MetricWaist, MetricHips,
	MetricArms, MetricThighs, MetricCalves, MetricNeck,
}

// IsValidMeasurementMetric checks if a string names a measurement metric.
func IsValidMeasurementMetric(s string) bool {
	for _, m := range AllMeasurementMetrics {
		if m == s {
			return true
		}
	}
	return false
}

// Measurement is a point-in-time snapshot of body metrics. Every metric
// is individually optional; a snapshot usually carries only a few.
type Measurement struct {
	ID        string    `json:"id" yaml:"id"`
	Date      time.Time `json:"date" yaml:"date"`
	Weight    *float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	BodyFat   *float64  `json:"body_fat,omitempty" yaml:"body_fat,omitempty"`
	Chest     *float64  `json:"chest,omitempty" yaml:"chest,omitempty"`
	Waist     *float64  `json:"waist,omitempty" yaml:"waist,omitempty"`
	Hips      *float64  `json:"hips,omitempty" yaml:"hips,omitempty"`
	Arms      *float64  `json:"arms,omitempty" yaml:"arms,omitempty"`
	Thighs    *float64  `json:"thighs,omitempty" yaml:"thighs,omitempty"`
	Calves    *float64  `json:"calves,omitempty" yaml:"calves,omitempty"`
	Neck      *float64  `json:"neck,omitempty" yaml:"neck,omitempty"`
	Notes     *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewMeasurement creates a Measurement dated now.
func NewMeasurement() *Measurement {
	return &Measurement{Date: time.Now()}
}

// WithDate sets a custom measurement date.
func (m *Measurement) WithDate(t time.Time) *Measurement {
	m.Date = t
	return m
}

// WithNotes sets notes on the measurement.
func (m *Measurement) WithNotes(notes string) *Measurement {
	m.Notes = &notes
	return m
}

// SetMetric assigns a metric by name. Unknown names are ignored and
// reported via the return value.
func (m *Measurement) SetMetric(name string, value float64) bool {
	p := m.metricField(name)
	if p == nil {
		return false
	}
	*p = &value
	return true
}

// Metric returns the value of a metric by name, nil when unset or unknown.
func (m *Measurement) Metric(name string) *float64 {
	p := m.metricField(name)
	if p == nil {
		return nil
	}
	return *p
}

func (m *Measurement) metricField(name string) **float64 {
	switch name {
	case MetricWeight:
		return &m.Weight
	case MetricBodyFat:
		return &m.BodyFat
	case MetricChest:
		return &m.Chest
	case MetricWaist:
		return &m.Waist
	case MetricHips:
		return &m.Hips
	case MetricArms:
		return &m.Arms
	case MetricThighs:
		return &m.Thighs
	case MetricCalves:
		return &m.Calves
	case MetricNeck:
		return &m.Neck
	}
	return nil
}

// LeanMass estimates fat-free mass as weight x (1 - bodyFat/100).
// Returns nil unless both weight and body fat are present.
func (m *Measurement) LeanMass() *float64 {
	if m.Weight == nil || m.BodyFat == nil {
		return nil
	}
	lean := *m.Weight * (1 - *m.BodyFat/100)
	return &lean
}

// PersonalRecord is one recorded best for an exercise. The exercise is
// matched by exact name, not by foreign key; multiple records per name
// are retained and "the" record is a query concern.
type PersonalRecord struct {
	ID           string    `json:"id" yaml:"id"`
	ExerciseName string    `json:"exercise_name" yaml:"exercise_name"`
	Weight       float64   `json:"weight" yaml:"weight"`
	Reps         *int      `json:"reps,omitempty" yaml:"reps,omitempty"`
	Date         time.Time `json:"date" yaml:"date"`
	Notes        *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewPersonalRecord creates a PersonalRecord dated now.
func NewPersonalRecord(exerciseName string, weight float64) *PersonalRecord {
	return &PersonalRecord{
		ExerciseName: exerciseName,
		Weight:       weight,
		Date:         time.Now(),
	}
}

// WithReps sets the rep count the record was achieved at.
func (r *PersonalRecord) WithReps(reps int) *PersonalRecord {
	r.Reps = &reps
	return r
}

// WithDate sets a custom record date.
func (r *PersonalRecord) WithDate(t time.Time) *PersonalRecord {
	r.Date = t
	return r
}

// WithNotes sets notes on the record.
func (r *PersonalRecord) WithNotes(notes string) *PersonalRecord {
	r.Notes = &notes
	return r
}
