// ABOUTME: Progression engine mapping an exercise's session history to a load recommendation.
// ABOUTME: Pure and deterministic: increase on success, hold on drop sets or a first miss, deload on two misses.
package progression

import (
	"math"
	"sort"

	"github.com/harperreed/coach/internal/models"
)

// Status is the kind of recommendation.
type Status string

const (
	StatusCalibration Status = "calibration"
	StatusIncrease    Status = "increase"
	StatusMaintain    Status = "maintain"
	StatusDeload      Status = "deload"
)

const (
	// Increment is the load added after a fully successful session.
	Increment = 5.0
	// DefaultTargetReps applies when a set carries no target.
	DefaultTargetReps = 10

	NoteCalibration = "Find your baseline weight."
	NoteIncrease    = "Hit target reps. Increase weight."
	NoteDropSet     = "Volume saved via Drop Set. Keep weight."
	NoteDeload      = "Stalled twice. Deload -10% to reset CNS."
	NoteRetry       = "Missed reps. Retry this weight."
)

// Result is a load recommendation for the next session.
// A RecommendedWeight of 0 means there is no baseline yet.
type Result struct {
	RecommendedWeight float64 `json:"recommended_weight"`
	Note              string  `json:"note"`
	Status            Status  `json:"status"`
}

// Calibration is the result for an exercise with no usable history.
var Calibration = Result{RecommendedWeight: 0, Note: NoteCalibration, Status: StatusCalibration}

// Recommend computes the next load for exerciseID from history.
// Sessions with equal timestamps keep their relative order from history.
func Recommend(exerciseID string, history []models.WorkoutSession) Result {
	logs := matchingLogs(exerciseID, history)
	if len(logs) == 0 || len(logs[0].Sets) == 0 {
		return Calibration
	}

	last := summarize(logs[0])

	if last.successful && !last.usedDropSet {
		return Result{
			RecommendedWeight: last.topWeight + Increment,
			Note:              NoteIncrease,
			Status:            StatusIncrease,
		}
	}

	if last.usedDropSet {
		return Result{
			RecommendedWeight: last.topWeight,
			Note:              NoteDropSet,
			Status:            StatusMaintain,
		}
	}

	if len(logs) > 1 {
		prev := summarize(logs[1])
		if !prev.successful {
			return Result{
				RecommendedWeight: DeloadWeight(last.topWeight),
				Note:              NoteDeload,
				Status:            StatusDeload,
			}
		}
	}

	return Result{
		RecommendedWeight: last.topWeight,
		Note:              NoteRetry,
		Status:            StatusMaintain,
	}
}

// RecommendAll computes a recommendation for each exercise, keyed by id.
func RecommendAll(exercises []models.Exercise, history []models.WorkoutSession) map[string]Result {
	out := make(map[string]Result, len(exercises))
	for _, ex := range exercises {
		out[ex.ID] = Recommend(ex.ID, history)
	}
	return out
}

// DeloadWeight drops the load by 10%, rounds down to a multiple of 5 and never goes below 5.
func DeloadWeight(topWeight float64) float64 {
	return math.Max(5, math.Floor(topWeight*0.9/5)*5)
}

type logSummary struct {
	topWeight   float64
	targetReps  int
	successful  bool
	usedDropSet bool
}

func summarize(log models.ExerciseLog) logSummary {
	mainSets := log.MainSets()

	s := logSummary{
		targetReps: DefaultTargetReps,
		successful: true,
	}
	if len(mainSets) > 0 && mainSets[0].TargetReps > 0 {
		s.targetReps = mainSets[0].TargetReps
	}

	for i, set := range mainSets {
		if i == 0 || set.Weight > s.topWeight {
			s.topWeight = set.Weight
		}
		if set.Reps.Int() < s.targetReps {
			s.successful = false
		}
	}
	for _, set := range log.Sets {
		if set.IsDropSet {
			s.usedDropSet = true
			break
		}
	}
	return s
}

// matchingLogs returns the non-skipped logs for exerciseID, newest session first.
func matchingLogs(exerciseID string, history []models.WorkoutSession) []models.ExerciseLog {
	type match struct {
		session models.WorkoutSession
		log     models.ExerciseLog
	}
	var matches []match
	for _, s := range history {
		for _, l := range s.Logs {
			if l.ExerciseID == exerciseID && !l.Skipped {
				matches = append(matches, match{session: s, log: l})
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].session.Date.After(matches[j].session.Date)
	})

	logs := make([]models.ExerciseLog, len(matches))
	for i, m := range matches {
		logs[i] = m.log
	}
	return logs
}
