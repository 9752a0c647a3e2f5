// ABOUTME: CLI command for the training dashboard.
// ABOUTME: Prints weekly consistency, volume trend and new personal records.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/analytics"
)

var dashboardJSON bool

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Show the week at a glance",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := repo.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		d := analytics.BuildDashboard(history, catalog.Exercises(), nowFunc())

		out := cmd.OutOrStdout()
		if dashboardJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}
		printDashboard(out, d)
		return nil
	},
}

func printDashboard(w io.Writer, d analytics.Dashboard) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)

	bold.Fprintln(w, "CONSISTENCY")
	var days, marks []string
	for _, day := range d.Consistency {
		days = append(days, day.Date.Format("Mon")[:2])
		if day.Active {
			marks = append(marks, green.Sprint("● "))
		} else {
			marks = append(marks, faint.Sprint("○ "))
		}
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(days, " "))
	fmt.Fprintf(w, "  %s\n", strings.Join(marks, " "))
	faint.Fprintf(w, "  %d of 7 days · %d sessions total\n\n", d.ActiveDays(), d.TotalSessions)

	bold.Fprintln(w, "VOLUME (7 days)")
	fmt.Fprintf(w, "  %s", formatWeight(d.Volume.Volume))
	switch {
	case d.Volume.Trend > 0:
		green.Fprintf(w, "  ▲ %d%%", d.Volume.Trend)
	case d.Volume.Trend < 0:
		color.New(color.FgRed).Fprintf(w, "  ▼ %d%%", -d.Volume.Trend)
	}
	faint.Fprintf(w, "  (last week %s)\n\n", formatWeight(d.Volume.LastWeek))

	bold.Fprintln(w, "PERSONAL RECORDS")
	if len(d.Records) == 0 {
		faint.Fprintln(w, "  None yet. Keep lifting.")
		return
	}
	for _, r := range d.Records {
		fmt.Fprintf(w, "  %s %s", padRight(truncate(r.ExerciseName, 30), 30), formatWeight(r.Weight))
		faint.Fprintf(w, "  (was %s, %s)\n", formatWeight(r.Previous), r.Date.Local().Format("Jan 2"))
	}
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(dashboardCmd)
}
