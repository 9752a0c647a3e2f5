// ABOUTME: Editable set fields and parsing of raw field values from user input.
// ABOUTME: Malformed numbers become 0 or unset instead of errors.
package setlog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/coach/internal/models"
)

// Field names one editable attribute of a set.
type Field string

const (
	FieldWeight    Field = "weight"
	FieldReps      Field = "reps"
	FieldCompleted Field = "completed"
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldWeight, FieldReps, FieldCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field %q (expected weight, reps or completed)", s)
	}
}

// apply stores value on set. Unparseable weights become 0, unparseable reps
// become unset and unparseable completion flags become false.
func (f Field) apply(set *models.SetLog, value string) {
	value = strings.TrimSpace(value)
	switch f {
	case FieldWeight:
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			w = 0
		}
		set.Weight = w
	case FieldReps:
		set.Reps = models.ParseReps(value)
	case FieldCompleted:
		done, err := strconv.ParseBool(value)
		set.Completed = err == nil && done
	}
}
