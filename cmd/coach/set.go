// ABOUTME: CLI commands for editing the sets of the current exercise.
// ABOUTME: Supports done, update, toggle, drop, add, and undo subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/setlog"
)

var (
	doneWeight string
	doneReps   string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Log sets for the current exercise",
	Long: `Log sets for the current exercise of the session in progress.

Sets are addressed by their position in the table shown by 'coach session show'
(1, 2, 3...) or by a prefix of their ID. Commands that take an optional set
default to the active set, the first one not yet completed.

EXAMPLES:

  coach set done --weight 40 --reps 12   # Log and complete the active set
  coach set update 2 reps 9              # Fix the reps on set 2
  coach set drop 3                       # Add a drop set after set 3
  coach set add                          # Add another standard set
  coach set undo                         # Step back once`,
}

var setDoneCmd = &cobra.Command{
	Use:   "done [set]",
	Short: "Complete a set, optionally logging weight and reps",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSets(cmd, func(ed *setlog.Editor) ([]models.SetLog, error) {
			id, err := targetSet(ed, args)
			if err != nil {
				return nil, err
			}
			if doneWeight != "" {
				ed.UpdateField(id, setlog.FieldWeight, doneWeight)
			}
			if doneReps != "" {
				ed.UpdateField(id, setlog.FieldReps, doneReps)
			}
			return ed.UpdateField(id, setlog.FieldCompleted, "true"), nil
		})
	},
}

var setUpdateCmd = &cobra.Command{
	Use:   "update <set> <field> <value>",
	Short: "Change weight, reps, or completed on a set",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := setlog.ParseField(args[1])
		if err != nil {
			return err
		}
		return editSets(cmd, func(ed *setlog.Editor) ([]models.SetLog, error) {
			id, err := resolveSet(ed.Sets(), args[0])
			if err != nil {
				return nil, err
			}
			return ed.UpdateField(id, field, args[2]), nil
		})
	},
}

var setToggleCmd = &cobra.Command{
	Use:   "toggle <set>",
	Short: "Flip a set between completed and not completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSets(cmd, func(ed *setlog.Editor) ([]models.SetLog, error) {
			id, err := resolveSet(ed.Sets(), args[0])
			if err != nil {
				return nil, err
			}
			return ed.ToggleComplete(id), nil
		})
	},
}

var setDropCmd = &cobra.Command{
	Use:   "drop [set]",
	Short: "Insert a drop set after a set",
	Long: `Insert a drop set directly after a set. The drop set starts at the parent's
weight less 20%, rounded to the nearest 5, and keeps its target reps.

Defaults to the most recently completed set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSets(cmd, func(ed *setlog.Editor) ([]models.SetLog, error) {
			var id string
			if len(args) == 1 {
				var err error
				if id, err = resolveSet(ed.Sets(), args[0]); err != nil {
					return nil, err
				}
			} else {
				for _, set := range ed.Sets() {
					if set.Completed {
						id = set.ID
					}
				}
				if id == "" {
					return nil, fmt.Errorf("no completed set to drop from (pass a set number)")
				}
			}
			return ed.AddDropSet(id), nil
		})
	},
}

var setAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append another standard set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSets(cmd, func(ed *setlog.Editor) ([]models.SetLog, error) {
			return ed.AddStandardSet(), nil
		})
	},
}

var setUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Step back once",
	Long: `Step back once on the current exercise.

  A drop set being worked is removed.
  Extra main sets beyond the routine's default are removed, last one first.
  Drop sets never count as extras.
  Otherwise the active set goes back to the recommended weight with no reps.
  With every set completed, the last set is reopened, or removed if it is a
  drop set or an extra.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSets(cmd, func(ed *setlog.Editor) ([]models.SetLog, error) {
			return ed.Undo(), nil
		})
	},
}

// editSets resumes the session, applies edit to the current exercise and saves.
func editSets(cmd *cobra.Command, edit func(*setlog.Editor) ([]models.SetLog, error)) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	ed := s.Editor()
	if ed == nil {
		return fmt.Errorf("routine has no exercises")
	}
	sets, err := edit(ed)
	if err != nil {
		return err
	}
	s.Apply(sets)
	if err := saveSession(s); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	step := s.Current()
	color.New(color.Bold).Fprintln(out, step.Exercise.Name)
	printSets(out, step.Log.Sets)
	if step.IsLast() && allCompleted(step.Log.Sets) {
		fmt.Fprintln(out)
		color.New(color.FgGreen).Fprintln(out, "Last exercise done. Run 'coach session finish' to record it.")
	}
	return nil
}

// targetSet returns the set named by args, or the active set.
func targetSet(ed *setlog.Editor, args []string) (string, error) {
	if len(args) == 1 {
		return resolveSet(ed.Sets(), args[0])
	}
	active, ok := ed.Active()
	if !ok {
		return "", fmt.Errorf("every set is complete (use 'coach set add' for another)")
	}
	return active.ID, nil
}

func allCompleted(sets []models.SetLog) bool {
	if len(sets) == 0 {
		return false
	}
	for _, s := range sets {
		if !s.Completed {
			return false
		}
	}
	return true
}

func init() {
	setDoneCmd.Flags().StringVarP(&doneWeight, "weight", "w", "", "weight lifted")
	setDoneCmd.Flags().StringVarP(&doneReps, "reps", "r", "", "reps performed")

	setCmd.AddCommand(setDoneCmd)
	setCmd.AddCommand(setUpdateCmd)
	setCmd.AddCommand(setToggleCmd)
	setCmd.AddCommand(setDropCmd)
	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setUndoCmd)
	rootCmd.AddCommand(setCmd)
}
