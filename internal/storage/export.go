// ABOUTME: Export and import of session history.
// ABOUTME: Supports JSON, YAML and Markdown export; JSON and YAML import.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/coach/internal/analytics"
	"github.com/harperreed/coach/internal/models"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for session history.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Sessions   []models.WorkoutSession `json:"sessions" yaml:"sessions"`
}

// GetAllData retrieves all sessions for export.
func GetAllData(repo Repository, now time.Time) (*ExportData, error) {
	sessions, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: now,
		Tool:       "coach",
		Sessions:   sessions,
	}, nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository, now time.Time) ([]byte, error) {
	data, err := GetAllData(repo, now)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository, now time.Time) ([]byte, error) {
	data, err := GetAllData(repo, now)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportMarkdown renders sessions since the given time (nil for all) as tables.
func ExportMarkdown(repo Repository, since *time.Time, now time.Time) (string, error) {
	sessions, err := repo.Load()
	if err != nil {
		return "", fmt.Errorf("load sessions: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Training Log - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, s := range sessions {
		if since != nil && s.Date.Before(*since) {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s - Routine %s (%s)\n\n", s.Date.Format("2006-01-02 15:04"), s.RoutineID, s.TimeOfDay))
		sb.WriteString(fmt.Sprintf("Volume: %.0f\n\n", analytics.SessionVolume(s)))
		sb.WriteString("| Exercise | Set | Weight | Reps | Target | Done |\n")
		sb.WriteString("|----------|-----|--------|------|--------|------|\n")
		for _, l := range s.Logs {
			if l.Skipped {
				sb.WriteString(fmt.Sprintf("| %s | skipped | | | | |\n", l.ExerciseName))
				continue
			}
			for _, set := range l.Sets {
				label := fmt.Sprintf("%d", set.SetNumber)
				if set.IsDropSet {
					label += " (drop)"
				}
				done := ""
				if set.Completed {
					done = "yes"
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %g | %s | %d | %s |\n",
					l.ExerciseName, label, set.Weight, set.Reps, set.TargetReps, done))
			}
		}
		if s.Feedback != nil {
			sb.WriteString(fmt.Sprintf("\n> %s\n", strings.ReplaceAll(*s.Feedback, "\n", "\n> ")))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ParseExport decodes JSON or YAML export data. JSON is detected by a leading brace.
func ParseExport(raw []byte) (*ExportData, error) {
	var data ExportData
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &data); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &data); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
	}
	return &data, nil
}

// ImportSummary counts what an import changed.
type ImportSummary struct {
	Added    int
	Replaced int
}

// ImportData merges data into the stored history. Sessions whose id already
// exists replace the stored copy in place; new sessions are appended.
func ImportData(repo Repository, data *ExportData) (*ImportSummary, error) {
	history, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	index := make(map[string]int, len(history))
	for i, s := range history {
		index[s.ID] = i
	}

	summary := &ImportSummary{}
	for _, s := range data.Sessions {
		if s.ID == "" {
			return nil, fmt.Errorf("import session dated %s: missing id", s.Date.Format(time.RFC3339))
		}
		if i, ok := index[s.ID]; ok {
			history[i] = s
			summary.Replaced++
			continue
		}
		index[s.ID] = len(history)
		history = append(history, s)
		summary.Added++
	}

	if err := repo.Save(history); err != nil {
		return nil, fmt.Errorf("save sessions: %w", err)
	}
	return summary, nil
}

// ImportJSON imports data from JSON or YAML bytes.
func ImportJSON(repo Repository, raw []byte) (*ImportSummary, error) {
	data, err := ParseExport(raw)
	if err != nil {
		return nil, err
	}
	return ImportData(repo, data)
}
