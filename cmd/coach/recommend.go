// ABOUTME: CLI command for showing load recommendations.
// ABOUTME: Recommends one exercise or every exercise in a routine from history.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/progression"
)

var recommendRoutine string

var recommendCmd = &cobra.Command{
	Use:     "recommend [exercise-id]",
	Aliases: []string{"rec"},
	Short:   "Show what to lift next",
	Long: `Show the next recommended weight for an exercise, or for every exercise in a
routine with --routine.

RULES:

  No history                 find your baseline weight
  Every main set hit target  last top weight +5
  Missed, with a drop set    keep the weight
  Missed twice in a row      deload to 90%, rounded to 5
  Missed once                retry the weight

EXAMPLES:

  coach recommend b2           # DB Bench Press
  coach recommend --routine A  # Every exercise in routine A`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && recommendRoutine == "" {
			return fmt.Errorf("pass an exercise id or --routine")
		}

		history, err := repo.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		var exercises []models.Exercise
		if len(args) == 1 {
			ex, ok := catalog.Exercise(args[0])
			if !ok {
				return fmt.Errorf("unknown exercise: %s", args[0])
			}
			exercises = []models.Exercise{ex}
		} else {
			routine, err := resolveRoutine(catalog, recommendRoutine)
			if err != nil {
				return err
			}
			exercises = routine.Exercises
		}

		out := cmd.OutOrStdout()
		recs := progression.RecommendAll(exercises, history)
		for _, ex := range exercises {
			r := recs[ex.ID]
			c := color.New(color.Reset)
			switch r.Status {
			case progression.StatusIncrease:
				c = color.New(color.FgGreen)
			case progression.StatusDeload:
				c = color.New(color.FgRed)
			case progression.StatusCalibration:
				c = color.New(color.Faint)
			}
			fmt.Fprintf(out, "%s %s ", padRight(ex.ID, 4), padRight(truncate(ex.Name, 30), 30))
			if ex.HideWeight {
				color.New(color.Faint).Fprintln(out, "bodyweight")
				continue
			}
			c.Fprintln(out, recommendationLine(r))
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendRoutine, "routine", "", "recommend every exercise in a routine")
	rootCmd.AddCommand(recommendCmd)
}
