// ABOUTME: Dashboard bundles the analytics shown by the CLI, MCP and HTTP surfaces.
// ABOUTME: Built from a history snapshot and an explicit clock.
package analytics

import (
	"time"

	"github.com/harperreed/coach/internal/models"
)

// Dashboard is the combined analytics view.
type Dashboard struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	TotalSessions int              `json:"total_sessions"`
	Consistency   []DayActivity    `json:"consistency"`
	Volume        VolumeSummary    `json:"volume"`
	Records       []PersonalRecord `json:"records"`
}

// ActiveDays counts the days in the consistency window with a session.
func (d Dashboard) ActiveDays() int {
	n := 0
	for _, day := range d.Consistency {
		if day.Active {
			n++
		}
	}
	return n
}

// BuildDashboard computes every dashboard aggregate at once.
func BuildDashboard(history []models.WorkoutSession, exercises []models.Exercise, now time.Time) Dashboard {
	records := PersonalRecords(history, exercises)
	if records == nil {
		records = []PersonalRecord{}
	}
	return Dashboard{
		GeneratedAt:   now,
		TotalSessions: len(history),
		Consistency:   WeeklyConsistency(history, now),
		Volume:        VolumeTrend(history, now),
		Records:       records,
	}
}
