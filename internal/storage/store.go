// ABOUTME: Generic record store: table-agnostic CRUD over semantic rows.
// ABOUTME: Tables are an enum and columns are whitelisted; values only ever travel as bound parameters.
package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Table identifies one of the known tables. Statements are assembled only
// from this enum and the per-table column whitelist, never from caller
// strings, so no caller input is ever interpolated into SQL text.
type Table string

const (
	TableWorkouts        Table = "workouts"
	TableExercises       Table = "exercises"
	TableSets            Table = "sets"
	TableMeasurements    Table = "measurements"
	TablePersonalRecords Table = "personal_records"
)

var syncColumns = []string{"user_id", "sync_status", "deleted"}

var tableColumns = map[Table][]string{
	TableWorkouts: {
		"id", "name", "type", "date", "duration", "notes", "status",
		"muscle_groups", "exercises_count", "sets_count", "total_volume",
		"created_at", "updated_at",
	},
	TableExercises: {
		"id", "workout_id", "name", "muscle_group", "order_index", "notes",
		"created_at", "updated_at",
	},
	TableSets: {
		"id", "exercise_id", "set_number", "weight", "reps", "completed",
		"rest_time", "notes", "created_at", "updated_at",
	},
	TableMeasurements: {
		"id", "date", "weight", "body_fat", "chest", "waist", "hips",
		"arms", "thighs", "calves", "neck", "notes",
		"created_at", "updated_at",
	},
	TablePersonalRecords: {
		"id", "exercise_name", "weight", "reps", "date", "notes",
		"created_at", "updated_at",
	},
}

// timeLayout is RFC3339 with fixed-width nanoseconds so that stored
// timestamps sort lexicographically even within the same second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseStoredTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// Row is one result row mapped by column name.
type Row map[string]any

func (d *DB) columnSet(table Table) (map[string]bool, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("%w: unknown table %q", ErrValidation, table)
	}
	set := make(map[string]bool, len(cols)+len(syncColumns))
	for _, c := range cols {
		set[c] = true
	}
	for _, c := range syncColumns {
		set[c] = true
	}
	return set, nil
}

// Execute runs a non-query statement with bound parameters.
func (d *DB) Execute(stmt string, args ...any) error {
	if _, err := d.db.Exec(stmt, args...); err != nil {
		return &QueryError{Statement: stmt, Err: err}
	}
	return nil
}

// QueryRows runs a read statement and materializes the result as ordered
// row maps. No rows is not an error; the slice is just empty.
func (d *DB) QueryRows(stmt string, args ...any) ([]Row, error) {
	rows, err := d.db.Query(stmt, args...)
	if err != nil {
		return nil, &QueryError{Statement: stmt, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Statement: stmt, Err: err}
	}

	out := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Statement: stmt, Err: err}
		}
		r := make(Row, len(cols))
		for i, c := range cols {
			switch x := values[i].(type) {
			case []byte:
				r[c] = string(x)
			case time.Time:
				// The driver parses DATETIME-declared columns into
				// time.Time; restore the stored string form.
				r[c] = formatTime(x)
			default:
				r[c] = values[i]
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Statement: stmt, Err: err}
	}
	return out, nil
}

// Insert generates a new id, stamps created_at/updated_at and persists the
// union of generated and caller fields. A caller-supplied id is overwritten.
func (d *DB) Insert(table Table, fields map[string]any) (string, error) {
	colSet, err := d.columnSet(table)
	if err != nil {
		return "", err
	}

	record := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		if !colSet[k] {
			return "", fmt.Errorf("%w: unknown column %q for table %s", ErrValidation, k, table)
		}
		record[k] = v
	}

	id := uuid.NewString()
	now := formatTime(time.Now())
	record["id"] = id
	record["created_at"] = now
	record["updated_at"] = now

	names := make([]string, 0, len(record))
	for k := range record {
		names = append(names, k)
	}
	sort.Strings(names)

	args := make([]any, len(names))
	placeholders := make([]string, len(names))
	for i, name := range names {
		args[i] = record[name]
		placeholders[i] = "?"
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	if err := d.Execute(stmt, args...); err != nil {
		return "", err
	}
	return id, nil
}

// Update stamps updated_at and persists only the supplied fields for the
// row matching id. A missing id is a silent no-op, not an error; managers
// that need existence guarantees check up front.
func (d *DB) Update(table Table, id string, fields map[string]any) error {
	colSet, err := d.columnSet(table)
	if err != nil {
		return err
	}

	record := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if !colSet[k] {
			return fmt.Errorf("%w: unknown column %q for table %s", ErrValidation, k, table)
		}
		if k == "id" {
			continue
		}
		record[k] = v
	}
	record["updated_at"] = formatTime(time.Now())

	names := make([]string, 0, len(record))
	for k := range record {
		names = append(names, k)
	}
	sort.Strings(names)

	assignments := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		assignments[i] = name + " = ?"
		args = append(args, record[name])
	}
	args = append(args, id)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(assignments, ", "))
	return d.Execute(stmt, args...)
}

// Delete removes the row. Child rows of workouts and exercises go with it
// via the foreign key cascades. A missing id is not an error.
func (d *DB) Delete(table Table, id string) error {
	if _, err := d.columnSet(table); err != nil {
		return err
	}
	return d.Execute(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
}

// GetByID returns the row matching id, or ErrNotFound.
func (d *DB) GetByID(table Table, id string) (Row, error) {
	if _, err := d.columnSet(table); err != nil {
		return nil, err
	}
	rows, err := d.QueryRows(
		fmt.Sprintf("SELECT * FROM %s WHERE id = ? AND deleted = 0 LIMIT 1", table), id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, table, id)
	}
	return rows[0], nil
}

// GetAll returns all live rows, most recently created first. The optional
// where fragment is combined with bound args; it is for internal callers
// composing known filters, not for user input.
func (d *DB) GetAll(table Table, where string, args ...any) ([]Row, error) {
	if _, err := d.columnSet(table); err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("SELECT * FROM %s WHERE deleted = 0", table)
	if where != "" {
		stmt += " AND (" + where + ")"
	}
	stmt += " ORDER BY created_at DESC"
	return d.QueryRows(stmt, args...)
}

// exists reports whether a live row with the given id is present.
func (d *DB) exists(table Table, id string) (bool, error) {
	rows, err := d.QueryRows(
		fmt.Sprintf("SELECT 1 FROM %s WHERE id = ? AND deleted = 0 LIMIT 1", table), id)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// count returns the number of live rows matching the optional where fragment.
func (d *DB) count(table Table, where string, args ...any) (int, error) {
	stmt := fmt.Sprintf("SELECT COUNT(*) AS n FROM %s WHERE deleted = 0", table)
	if where != "" {
		stmt += " AND (" + where + ")"
	}
	rows, err := d.QueryRows(stmt, args...)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return int(asInt(rows[0]["n"])), nil
}

// Loose conversions for generic row values: the sqlite driver hands back
// int64, float64, string or nil depending on column affinity.

func asInt(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case float64:
		return int64(x)
	}
	return 0
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	}
	return 0
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
