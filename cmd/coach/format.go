// ABOUTME: Shared CLI helpers for printing sessions and sets and resolving arguments.
// ABOUTME: Keeps the plain-text table layout consistent across commands.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/coach/internal/analytics"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
	"github.com/harperreed/coach/internal/session"
)

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// formatWeight prints whole weights without decimals.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseDate accepts YYYY-MM-DD in local time.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// resolveRoutine matches a routine id case-insensitively.
func resolveRoutine(cat *models.Catalog, arg string) (models.Routine, error) {
	for _, r := range cat.Routines {
		if strings.EqualFold(string(r.ID), arg) {
			return r, nil
		}
	}
	var known []string
	for _, r := range cat.Routines {
		known = append(known, string(r.ID))
	}
	return models.Routine{}, fmt.Errorf("unknown routine: %s (use %s)", arg, strings.Join(known, ", "))
}

// resolveSet maps a 1-based position or an id prefix to a set id.
func resolveSet(sets []models.SetLog, arg string) (string, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(sets) {
			return "", fmt.Errorf("set %d out of range (1-%d)", n, len(sets))
		}
		return sets[n-1].ID, nil
	}
	var match string
	for _, s := range sets {
		if strings.HasPrefix(s.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("ambiguous set id: %s", arg)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("set not found: %s", arg)
	}
	return match, nil
}

func recommendationLine(r progression.Result) string {
	if r.Status == progression.StatusCalibration {
		return r.Note
	}
	return fmt.Sprintf("%s  (%s)", formatWeight(r.RecommendedWeight), r.Note)
}

// printStep shows the current exercise with its sets.
func printStep(w io.Writer, step session.Step) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintf(w, "[%d/%d] %s", step.Index+1, step.Total, step.Exercise.Name)
	faint.Fprintf(w, "  %s · %d x %s\n", step.Exercise.ID, step.Exercise.DefaultSets, step.Exercise.DefaultReps)
	if step.Exercise.Notes != "" {
		faint.Fprintf(w, "  %s\n", step.Exercise.Notes)
	}
	if !step.Exercise.HideWeight {
		fmt.Fprintf(w, "  Next: %s\n", recommendationLine(step.Recommendation))
	}
	if step.Log.Skipped {
		color.New(color.FgYellow).Fprintln(w, "  skipped")
	}
	printSets(w, step.Log.Sets)
}

// printSets prints a numbered table; the first incomplete set is marked with >.
func printSets(w io.Writer, sets []models.SetLog) {
	if len(sets) == 0 {
		return
	}
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)

	active := -1
	for i, s := range sets {
		if !s.Completed {
			active = i
			break
		}
	}

	for i, s := range sets {
		marker := " "
		if i == active {
			marker = ">"
		}
		label := fmt.Sprintf("set %d", s.SetNumber)
		if s.IsDropSet {
			label = "  drop"
		}
		reps := "-"
		if s.Reps.IsSet() {
			reps = s.Reps.String()
		}
		line := fmt.Sprintf("%s %2d  %s %6s x %-3s (target %d)",
			marker, i+1, padRight(label, 6), formatWeight(s.Weight), reps, s.TargetReps)
		if s.Completed {
			green.Fprintf(w, "%s ✓", line)
		} else {
			fmt.Fprint(w, line)
		}
		faint.Fprintf(w, "  %s\n", shortID(s.ID))
	}
}

// printSessionSummary prints a one-line session overview.
func printSessionSummary(w io.Writer, ws models.WorkoutSession) {
	faint := color.New(color.Faint)
	fb := ""
	if ws.Feedback != nil {
		fb = faint.Sprint(" ✎")
	}
	fmt.Fprintf(w, "%s %s %s %s volume %s%s\n",
		faint.Sprint(shortID(ws.ID)),
		faint.Sprint(ws.Date.Local().Format("2006-01-02 15:04")),
		padRight(string(ws.RoutineID), 9),
		padRight(string(ws.TimeOfDay), 10),
		formatWeight(analytics.SessionVolume(ws)),
		fb)
}

// printSession prints every exercise and set of a recorded session.
func printSession(w io.Writer, ws models.WorkoutSession) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s  Routine %s (%s)\n", ws.Date.Local().Format("2006-01-02 15:04"), ws.RoutineID, ws.TimeOfDay)
	fmt.Fprintf(w, "  ID: %s\n", ws.ID)
	fmt.Fprintf(w, "  Volume: %s\n", formatWeight(analytics.SessionVolume(ws)))
	for _, l := range ws.Logs {
		fmt.Fprintln(w)
		if l.Skipped {
			color.New(color.FgYellow).Fprintf(w, "%s (skipped)\n", l.ExerciseName)
			continue
		}
		fmt.Fprintln(w, l.ExerciseName)
		printSets(w, l.Sets)
	}
	if ws.Feedback != nil {
		fmt.Fprintln(w)
		color.New(color.FgCyan).Fprintln(w, *ws.Feedback)
	}
}
