// ABOUTME: Parses an exercise's default rep string into a numeric target.
// ABOUTME: "8-10" yields 10, "6x10s" yields 6, "15" yields 15, otherwise 10.
package progression

import (
	"regexp"
	"strconv"
)

var (
	rangePattern   = regexp.MustCompile(`^\s*\d+\s*-\s*(\d+)`)
	leadingPattern = regexp.MustCompile(`^\s*(\d+)`)
)

// ParseTargetReps turns a default rep string into a target rep count.
func ParseTargetReps(defaultReps string) int {
	if m := rangePattern.FindStringSubmatch(defaultReps); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	if m := leadingPattern.FindStringSubmatch(defaultReps); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return DefaultTargetReps
}
