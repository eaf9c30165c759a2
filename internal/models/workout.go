// ABOUTME: Workout, Exercise and Set models for the training log.
// ABOUTME: A workout owns exercises, each exercise owns its sets.
package models

import "time"

// Workout statuses.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// DefaultWorkoutType is assigned when no type is given.
const DefaultWorkoutType = "Strength"

// Workout represents a training session. ExercisesCount, SetsCount and
// TotalVolume are derived from the child rows and rewritten on every
// exercise or set mutation; never set them by hand.
type Workout struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Type           string     `json:"type" yaml:"type"`
	Date           time.Time  `json:"date" yaml:"date"`
	Duration       int        `json:"duration" yaml:"duration"` // minutes
	Notes          *string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status         string     `json:"status" yaml:"status"`
	MuscleGroups   []string   `json:"muscle_groups" yaml:"muscle_groups"`
	ExercisesCount int        `json:"exercises_count" yaml:"exercises_count"`
	SetsCount      int        `json:"sets_count" yaml:"sets_count"`
	TotalVolume    float64    `json:"total_volume" yaml:"total_volume"`
	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" yaml:"updated_at"`
	Exercises      []Exercise `json:"exercises,omitempty" yaml:"exercises,omitempty"` // Populated when fetching the full workout
}

// NewWorkout creates a Workout with the documented defaults applied.
func NewWorkout(name string) *Workout {
	return &Workout{
		Name:         name,
		Type:         DefaultWorkoutType,
		Date:         time.Now(),
		Status:       StatusCompleted,
		MuscleGroups: []string{},
	}
}

// WithType sets the workout type (freeform category).
func (w *Workout) WithType(t string) *Workout {
	w.Type = t
	return w
}

// WithDate sets a custom workout date.
func (w *Workout) WithDate(t time.Time) *Workout {
	w.Date = t
	return w
}

// WithDuration sets the duration in minutes.
func (w *Workout) WithDuration(minutes int) *Workout {
	w.Duration = minutes
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// WithStatus sets the workout status.
func (w *Workout) WithStatus(status string) *Workout {
	w.Status = status
	return w
}

// WithMuscleGroups sets the ordered muscle group list.
func (w *Workout) WithMuscleGroups(groups ...string) *Workout {
	w.MuscleGroups = groups
	return w
}

// Exercise represents one movement within a workout.
type Exercise struct {
	ID          string    `json:"id" yaml:"id"`
	WorkoutID   string    `json:"workout_id" yaml:"workout_id"`
	Name        string    `json:"name" yaml:"name"`
	MuscleGroup *string   `json:"muscle_group,omitempty" yaml:"muscle_group,omitempty"`
	OrderIndex  int       `json:"order_index" yaml:"order_index"`
	Notes       *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
	Sets        []Set     `json:"sets,omitempty" yaml:"sets,omitempty"` // Populated when fetching the full workout
}

// NewExercise creates an Exercise for the given workout.
func NewExercise(workoutID, name string) *Exercise {
	return &Exercise{
		WorkoutID: workoutID,
		Name:      name,
	}
}

// WithMuscleGroup sets the targeted muscle group.
func (e *Exercise) WithMuscleGroup(group string) *Exercise {
	e.MuscleGroup = &group
	return e
}

// WithOrderIndex sets the position within the workout.
func (e *Exercise) WithOrderIndex(i int) *Exercise {
	e.OrderIndex = i
	return e
}

// WithNotes sets notes on the exercise.
func (e *Exercise) WithNotes(notes string) *Exercise {
	e.Notes = &notes
	return e
}

// Set represents a single set of an exercise. Only completed sets
// contribute to the owning workout's total volume.
type Set struct {
	ID         string    `json:"id" yaml:"id"`
	ExerciseID string    `json:"exercise_id" yaml:"exercise_id"`
	SetNumber  int       `json:"set_number" yaml:"set_number"`
	Weight     float64   `json:"weight" yaml:"weight"`
	Reps       int       `json:"reps" yaml:"reps"`
	Completed  bool      `json:"completed" yaml:"completed"`
	RestTime   *int      `json:"rest_time,omitempty" yaml:"rest_time,omitempty"` // seconds
	Notes      *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewSet creates a Set with completed defaulting to true.
func NewSet(exerciseID string, setNumber int) *Set {
	return &Set{
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
		Completed:  true,
	}
}

// WithWeight sets the weight lifted.
func (s *Set) WithWeight(kg float64) *Set {
	s.Weight = kg
	return s
}

// WithReps sets the repetition count.
func (s *Set) WithReps(reps int) *Set {
	s.Reps = reps
	return s
}

// WithCompleted marks the set completed or skipped.
func (s *Set) WithCompleted(done bool) *Set {
	s.Completed = done
	return s
}

// WithRestTime sets the rest time in seconds.
func (s *Set) WithRestTime(seconds int) *Set {
	s.RestTime = &seconds
	return s
}

// WithNotes sets notes on the set.
func (s *Set) WithNotes(notes string) *Set {
	s.Notes = &notes
	return s
}

// Volume is the contribution of this set to the workout total:
// weight x reps for completed sets, zero otherwise.
func (s *Set) Volume() float64 {
	if !s.Completed {
		return 0
	}
	return s.Weight * float64(s.Reps)
}
