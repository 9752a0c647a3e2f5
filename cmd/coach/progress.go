// ABOUTME: CLI command for an exercise's progress over time.
// ABOUTME: Prints top weight and volume load per recorded session.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/analytics"
)

var progressLimit int

var progressCmd = &cobra.Command{
	Use:   "progress <exercise-id>",
	Short: "Show top weight and volume for an exercise over time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, ok := catalog.Exercise(args[0])
		if !ok {
			return fmt.Errorf("unknown exercise: %s", args[0])
		}
		history, err := repo.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		out := cmd.OutOrStdout()
		stats := analytics.ExerciseProgress(ex.ID, history)
		color.New(color.Bold).Fprintf(out, "%s (%s)\n", ex.Name, ex.ID)
		if len(stats) == 0 {
			fmt.Fprintln(out, "No sessions recorded for this exercise.")
			return nil
		}
		if progressLimit > 0 && len(stats) > progressLimit {
			stats = stats[len(stats)-progressLimit:]
		}

		faint := color.New(color.Faint)
		faint.Fprintf(out, "%s %s %s\n", padRight("DATE", 12), padRight("TOP", 8), "VOLUME")
		var best float64
		for _, st := range stats {
			line := fmt.Sprintf("%s %s %s", padRight(st.Date.Local().Format("2006-01-02"), 12),
				padRight(formatWeight(st.TopWeight), 8), formatWeight(st.VolumeLoad))
			if st.TopWeight > best {
				best = st.TopWeight
			}
			fmt.Fprintln(out, line)
		}
		faint.Fprintf(out, "best %s over %d sessions\n", formatWeight(best), len(stats))
		return nil
	},
}

func init() {
	progressCmd.Flags().IntVarP(&progressLimit, "limit", "n", 0, "only the most recent N sessions")
	rootCmd.AddCommand(progressCmd)
}
