// ABOUTME: Read-only aggregations over session history for the dashboard.
// ABOUTME: Weekly consistency, volume with week-over-week trend, personal records and progress series.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/harperreed/coach/internal/models"
)

const week = 7 * 24 * time.Hour

// DayActivity records whether any session happened on a calendar day.
type DayActivity struct {
	Date   time.Time `json:"date"`
	Active bool      `json:"active"`
}

// VolumeSummary is this week's volume load and its change against last week.
type VolumeSummary struct {
	Volume   float64 `json:"volume"`
	LastWeek float64 `json:"last_week"`
	Trend    int     `json:"trend"`
}

// PersonalRecord is a new best top weight for an exercise.
type PersonalRecord struct {
	ExerciseID   string    `json:"exercise_id"`
	ExerciseName string    `json:"exercise_name"`
	Weight       float64   `json:"weight"`
	Previous     float64   `json:"previous"`
	Date         time.Time `json:"date"`
}

// ExerciseStat is one point of an exercise's progress series.
type ExerciseStat struct {
	SessionID  string    `json:"session_id"`
	Date       time.Time `json:"date"`
	TopWeight  float64   `json:"top_weight"`
	VolumeLoad float64   `json:"volume_load"`
}

// WeeklyConsistency returns seven entries, six days ago through today,
// each marking whether a session fell on that calendar day in now's location.
func WeeklyConsistency(history []models.WorkoutSession, now time.Time) []DayActivity {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	days := make([]DayActivity, 7)
	for i := range days {
		days[i].Date = today.AddDate(0, 0, i-6)
	}

	for _, s := range history {
		y, m, d := s.Date.In(loc).Date()
		for i := range days {
			dy, dm, dd := days[i].Date.Date()
			if y == dy && m == dm && d == dd {
				days[i].Active = true
			}
		}
	}
	return days
}

// SessionVolume sums weight × reps over every set, drop sets included.
func SessionVolume(s models.WorkoutSession) float64 {
	var total float64
	for _, l := range s.Logs {
		total += LogVolume(l)
	}
	return total
}

// LogVolume sums weight × reps over one exercise log.
func LogVolume(l models.ExerciseLog) float64 {
	var total float64
	for _, set := range l.Sets {
		total += set.Volume()
	}
	return total
}

// VolumeTrend compares the last seven days of volume with the seven before.
// Trend is a rounded percentage and 0 when last week had no volume.
func VolumeTrend(history []models.WorkoutSession, now time.Time) VolumeSummary {
	thisStart := now.Add(-week)
	lastStart := now.Add(-2 * week)

	var out VolumeSummary
	for _, s := range history {
		switch {
		case !s.Date.Before(thisStart):
			out.Volume += SessionVolume(s)
		case !s.Date.Before(lastStart):
			out.LastWeek += SessionVolume(s)
		}
	}
	out.Trend = Trend(out.Volume, out.LastWeek)
	return out
}

// Trend is the rounded percentage change from previous to current.
func Trend(current, previous float64) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

// PersonalRecords reports exercises whose latest top weight beats every earlier session.
// Exercises need at least two recorded sessions to qualify. A skipped log
// counts as a session with a top weight of 0.
func PersonalRecords(history []models.WorkoutSession, exercises []models.Exercise) []PersonalRecord {
	var records []PersonalRecord
	for _, ex := range exercises {
		series := topWeightSeries(ex.ID, history)
		if len(series) < 2 {
			continue
		}
		latest := series[len(series)-1]
		var prior float64
		for i, st := range series[:len(series)-1] {
			if i == 0 || st.TopWeight > prior {
				prior = st.TopWeight
			}
		}
		if latest.TopWeight > prior && latest.TopWeight > 0 {
			records = append(records, PersonalRecord{
				ExerciseID:   ex.ID,
				ExerciseName: ex.Name,
				Weight:       latest.TopWeight,
				Previous:     prior,
				Date:         latest.Date,
			})
		}
	}
	return records
}

// ExerciseProgress returns top weight and volume load per session for an
// exercise, oldest first. Skipped logs are left out.
func ExerciseProgress(exerciseID string, history []models.WorkoutSession) []ExerciseStat {
	var stats []ExerciseStat
	for _, s := range history {
		for _, l := range s.Logs {
			if l.ExerciseID != exerciseID || l.Skipped {
				continue
			}
			stats = append(stats, ExerciseStat{
				SessionID:  s.ID,
				Date:       s.Date,
				TopWeight:  topWeight(l),
				VolumeLoad: LogVolume(l),
			})
			break
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date.Before(stats[j].Date)
	})
	return stats
}

// topWeightSeries is the top weight per session holding a log for the
// exercise, oldest first, skipped logs included.
func topWeightSeries(exerciseID string, history []models.WorkoutSession) []ExerciseStat {
	var stats []ExerciseStat
	for _, s := range history {
		for _, l := range s.Logs {
			if l.ExerciseID != exerciseID {
				continue
			}
			st := ExerciseStat{SessionID: s.ID, Date: s.Date}
			if !l.Skipped {
				st.TopWeight = topWeight(l)
			}
			stats = append(stats, st)
			break
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date.Before(stats[j].Date)
	})
	return stats
}

func topWeight(l models.ExerciseLog) float64 {
	var top float64
	for _, set := range l.Sets {
		if !set.IsDropSet && set.Weight > top {
			top = set.Weight
		}
	}
	return top
}
