// ABOUTME: Built-in exercise catalog and lookup helpers.
// ABOUTME: Defines routines A, B, Finisher, Warmup and the standalone core circuit.
package models

// Catalog holds every routine plus exercises that belong to no active routine.
type Catalog struct {
	Routines []Routine `json:"routines" yaml:"routines"`
	Extra    []Exercise `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Routine returns the routine with the given id.
func (c *Catalog) Routine(id RoutineID) (Routine, bool) {
	for _, r := range c.Routines {
		if r.ID == id {
			return r, true
		}
	}
	return Routine{}, false
}

// Exercise finds an exercise by id across all routines and extras.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	for _, ex := range c.Exercises() {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}

// Exercises returns every exercise once, routines first, in catalog order.
func (c *Catalog) Exercises() []Exercise {
	seen := make(map[string]bool)
	var out []Exercise
	add := func(ex Exercise) {
		if seen[ex.ID] {
			return
		}
		seen[ex.ID] = true
		out = append(out, ex)
	}
	for _, r := range c.Routines {
		for _, ex := range r.Exercises {
			add(ex)
		}
	}
	for _, ex := range c.Extra {
		add(ex)
	}
	return out
}

// DefaultCatalog returns the built-in program.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Routines: []Routine{
			{
				ID:   RoutineA,
				Name: "Upper Body (Chest Supported)",
				Exercises: []Exercise{
					{ID: "b1", Name: "Chest-Supported Row", DefaultSets: 3, DefaultReps: "10-12", Notes: "Bench 30-45°. Pull with elbows."},
					{ID: "b2", Name: "DB Bench Press (Flat)", DefaultSets: 3, DefaultReps: "8-10", Notes: "Feet planted. Natural arch only."},
					{ID: "b3", Name: "Lat Pulldowns", DefaultSets: 3, DefaultReps: "10-12", Notes: "Lean back 10°. Decompress spine."},
					{ID: "b4", Name: "High-Incline DB Press", DefaultSets: 3, DefaultReps: "10-12", Notes: "Bench 70°. Safer OHP alternative."},
					{ID: "b5", Name: "Face Pulls", DefaultSets: 3, DefaultReps: "15-20", Notes: "Rear delts/rotator cuff health."},
				},
			},
			{
				ID:   RoutineB,
				Name: "Lower Body (Posterior Chain)",
				Exercises: []Exercise{
					{ID: "a1", Name: "Bulgarian Split Squats", DefaultSets: 3, DefaultReps: "8-10", Notes: "Torso forward to load glutes."},
					{ID: "a2", Name: "Machine Hip Thrusts", DefaultSets: 3, DefaultReps: "10-12", Notes: "Chin tucked. No hyperextension."},
					{ID: "a3", Name: "45° Back Extensions", DefaultSets: 3, DefaultReps: "10-12", Notes: "Hinge at hips, stretch hams. Do not arch back."},
					{ID: "a4", Name: "Leg Extensions", DefaultSets: 3, DefaultReps: "15-20", Notes: "Go to failure. Safe quad volume."},
					{ID: "a5", Name: "Standing Calf Raises", DefaultSets: 3, DefaultReps: "15-20", Notes: "Squeeze glutes to prevent lumbar extension."},
				},
			},
			{
				ID:   RoutineFinisher,
				Name: "Finisher",
				Exercises: []Exercise{
					{ID: "f1", Name: "DB Lateral Raises", DefaultSets: 2, DefaultReps: "15", Notes: "Do Set 1 here. Move immediately to Curls."},
					{ID: "f2", Name: "Incline DB Curls", DefaultSets: 2, DefaultReps: "12", Notes: "Do Set 1 here. Then REST. Repeat for Round 2."},
					{ID: "f3", Name: "Tricep Pushdowns", DefaultSets: 2, DefaultReps: "15", Notes: "Standard Sets. Perform after the 2 Superset Rounds."},
				},
			},
			{
				ID:   RoutineWarmup,
				Name: "Phase 0: Warm-Up",
				Exercises: []Exercise{
					{ID: "wu1", Name: "Cat-Camel", DefaultSets: 1, DefaultReps: "8", Notes: "Focus on moving upper back, not lower.", IsWarmup: true, HideWeight: true},
					{ID: "wu2", Name: "Quadruped T-Spine Rotations", DefaultSets: 1, DefaultReps: "8/side", Notes: "Hand behind head, rotate elbow to sky.", IsWarmup: true, HideWeight: true},
					{ID: "wu3", Name: "McGill Big 3 Primer", DefaultSets: 1, DefaultReps: "10s holds", Notes: "Curl-up, Side Plank, Bird Dog (1 round).", IsWarmup: true, HideWeight: true},
				},
			},
		},
		// Core circuit was pulled out of A and B but stays available for detail views.
		Extra: []Exercise{
			{ID: "cc1", Name: "McGill Curl-Up", DefaultSets: 1, DefaultReps: "6x10s", Notes: "Maintain neutral spine.", HideWeight: true},
			{ID: "cc2", Name: "Side Planks", DefaultSets: 1, DefaultReps: "30-45s", Notes: "Per side.", HideWeight: true},
			{ID: "cc3", Name: "Bird Dogs", DefaultSets: 1, DefaultReps: "6x10s", Notes: "Reach long, not high. Fist tight.", HideWeight: true},
			{ID: "cc4", Name: "Suitcase Carry", DefaultSets: 3, DefaultReps: "30 steps", Notes: "Heavy load, stay upright."},
		},
	}
}
