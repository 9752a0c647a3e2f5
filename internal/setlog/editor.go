// ABOUTME: Set-log editor owning one exercise's ordered sets during a live session.
// ABOUTME: Supports field edits, completion, drop sets, extra sets and context-sensitive undo.
package setlog

import (
	"math"

	"github.com/harperreed/coach/internal/ids"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
)

// DropSetReduction is the fraction of weight removed for a drop set.
const DropSetReduction = 0.2

// Editor tracks the set sequence for a single exercise.
// It has exactly one owner and is not safe for concurrent use.
type Editor struct {
	exercise models.Exercise
	rec      progression.Result
	gen      ids.Generator
	sets     []models.SetLog
}

// New creates an editor. An empty initial sequence is filled with the
// exercise's default sets, pre-loaded with the recommended weight.
func New(exercise models.Exercise, initial []models.SetLog, rec progression.Result, gen ids.Generator) *Editor {
	if gen == nil {
		gen = ids.UUID{}
	}
	e := &Editor{
		exercise: exercise,
		rec:      rec,
		gen:      gen,
	}

	if len(initial) == 0 && exercise.DefaultSets > 0 {
		target := progression.ParseTargetReps(exercise.DefaultReps)
		e.sets = make([]models.SetLog, 0, exercise.DefaultSets)
		for i := 1; i <= exercise.DefaultSets; i++ {
			e.sets = append(e.sets, models.SetLog{
				ID:         gen.NewID(),
				SetNumber:  i,
				Weight:     rec.RecommendedWeight,
				Reps:       models.NoReps,
				TargetReps: target,
			})
		}
		return e
	}

	e.sets = make([]models.SetLog, len(initial))
	copy(e.sets, initial)
	return e
}

// Exercise returns the exercise being edited.
func (e *Editor) Exercise() models.Exercise {
	return e.exercise
}

// Recommendation returns the recommendation used for default weights.
func (e *Editor) Recommendation() progression.Result {
	return e.rec
}

// Sets returns a copy of the current sequence.
func (e *Editor) Sets() []models.SetLog {
	out := make([]models.SetLog, len(e.sets))
	copy(out, e.sets)
	return out
}

// Active returns the first incomplete set in sequence order.
func (e *Editor) Active() (models.SetLog, bool) {
	if i := e.activeIndex(); i >= 0 {
		return e.sets[i], true
	}
	return models.SetLog{}, false
}

// UpdateField replaces one field on the set with setID. Unknown ids are ignored.
func (e *Editor) UpdateField(setID string, field Field, value string) []models.SetLog {
	if i := e.indexOf(setID); i >= 0 {
		field.apply(&e.sets[i], value)
	}
	return e.Sets()
}

// ToggleComplete flips the completed flag of the set with setID.
func (e *Editor) ToggleComplete(setID string) []models.SetLog {
	if i := e.indexOf(setID); i >= 0 {
		e.sets[i].Completed = !e.sets[i].Completed
	}
	return e.Sets()
}

// AddDropSet inserts a reduced-weight set directly after parentID.
// Unknown parents are ignored.
func (e *Editor) AddDropSet(parentID string) []models.SetLog {
	i := e.indexOf(parentID)
	if i < 0 {
		return e.Sets()
	}
	parent := e.sets[i]
	drop := models.SetLog{
		ID:          e.gen.NewID(),
		SetNumber:   parent.SetNumber,
		Weight:      DropSetWeight(parent.Weight),
		Reps:        models.NoReps,
		TargetReps:  parent.TargetReps,
		IsDropSet:   true,
		ParentSetID: parent.ID,
	}

	next := make([]models.SetLog, 0, len(e.sets)+1)
	next = append(next, e.sets[:i+1]...)
	next = append(next, drop)
	next = append(next, e.sets[i+1:]...)
	e.sets = next
	return e.Sets()
}

// AddStandardSet appends a set numbered after the last one, copying weight
// and target from the most recent main set.
func (e *Editor) AddStandardSet() []models.SetLog {
	number := 1
	if n := len(e.sets); n > 0 {
		number = e.sets[n-1].SetNumber + 1
	}

	weight := e.rec.RecommendedWeight
	target := progression.DefaultTargetReps
	for i := len(e.sets) - 1; i >= 0; i-- {
		if !e.sets[i].IsDropSet {
			weight = e.sets[i].Weight
			if e.sets[i].TargetReps > 0 {
				target = e.sets[i].TargetReps
			}
			break
		}
	}

	e.sets = append(e.sets, models.SetLog{
		ID:         e.gen.NewID(),
		SetNumber:  number,
		Weight:     weight,
		Reps:       models.NoReps,
		TargetReps: target,
	})
	return e.Sets()
}

// Undo reverses one step. A drop set being worked is removed. Main sets
// beyond the default count are extras: while one exists, the last incomplete
// main set is removed, which makes Undo the inverse of AddStandardSet.
// Otherwise the active set is reset to the recommended weight with no reps.
// With every set completed, the last set is removed if it is a drop set or
// an extra, and reopened otherwise. Drop sets never count toward the default,
// so the exercise always keeps at least DefaultSets main sets.
func (e *Editor) Undo() []models.SetLog {
	if len(e.sets) == 0 {
		return e.Sets()
	}
	extras := e.mainSetCount() > e.exercise.DefaultSets

	active := e.activeIndex()
	if active < 0 {
		last := len(e.sets) - 1
		if extras || e.sets[last].IsDropSet {
			e.remove(last)
		} else {
			e.sets[last].Completed = false
		}
		return e.Sets()
	}

	switch {
	case e.sets[active].IsDropSet:
		e.remove(active)
	case extras:
		e.remove(e.lastIncompleteMainIndex())
	default:
		e.sets[active].Weight = e.rec.RecommendedWeight
		e.sets[active].Reps = models.NoReps
	}
	return e.Sets()
}

// DropSetWeight is the parent weight less 20%, rounded to a multiple of 5
// and never negative.
func DropSetWeight(parentWeight float64) float64 {
	w := math.Round((parentWeight-parentWeight*DropSetReduction)/5) * 5
	return math.Max(0, w)
}

func (e *Editor) indexOf(setID string) int {
	for i := range e.sets {
		if e.sets[i].ID == setID {
			return i
		}
	}
	return -1
}

func (e *Editor) activeIndex() int {
	for i := range e.sets {
		if !e.sets[i].Completed {
			return i
		}
	}
	return -1
}

func (e *Editor) lastIncompleteMainIndex() int {
	for i := len(e.sets) - 1; i >= 0; i-- {
		if !e.sets[i].Completed && !e.sets[i].IsDropSet {
			return i
		}
	}
	return -1
}

func (e *Editor) mainSetCount() int {
	n := 0
	for _, s := range e.sets {
		if !s.IsDropSet {
			n++
		}
	}
	return n
}

func (e *Editor) remove(i int) {
	next := make([]models.SetLog, 0, len(e.sets)-1)
	next = append(next, e.sets[:i]...)
	next = append(next, e.sets[i+1:]...)
	e.sets = next
}
