// ABOUTME: Reps value type with an explicit "not entered yet" state.
// ABOUTME: Encodes the unset state as an empty string in JSON and YAML.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reps is a rep count that may not have been entered yet.
// The zero value is unset.
type Reps struct {
	value int
	set   bool
}

// NoReps is the unset sentinel.
var NoReps = Reps{}

// RepsOf returns a set rep count.
func RepsOf(n int) Reps {
	return Reps{value: n, set: true}
}

// ParseReps parses user input. Empty or non-numeric input yields NoReps.
func ParseReps(s string) Reps {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoReps
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return NoReps
	}
	return RepsOf(n)
}

// IsSet reports whether a value was entered.
func (r Reps) IsSet() bool {
	return r.set
}

// Int returns the rep count, or 0 when unset.
func (r Reps) Int() int {
	if !r.set {
		return 0
	}
	return r.value
}

// String renders the count, or "-" when unset.
func (r Reps) String() string {
	if !r.set {
		return "-"
	}
	return strconv.Itoa(r.value)
}

// MarshalJSON writes a number, or "" when unset.
func (r Reps) MarshalJSON() ([]byte, error) {
	if !r.set {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(r.value)), nil
}

// UnmarshalJSON accepts an integer, "", null, or an integer string.
// Anything else, fractional numbers such as 9.9 included, decodes as unset.
func (r *Reps) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = NoReps
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ParseReps(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || f != math.Trunc(f) {
		*r = NoReps
		return nil
	}
	*r = RepsOf(int(f))
	return nil
}

// MarshalYAML writes an int, or an empty string when unset.
func (r Reps) MarshalYAML() (interface{}, error) {
	if !r.set {
		return "", nil
	}
	return r.value, nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (r *Reps) UnmarshalYAML(node *yaml.Node) error {
	*r = ParseReps(node.Value)
	return nil
}
