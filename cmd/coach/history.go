// ABOUTME: CLI commands for browsing recorded sessions.
// ABOUTME: Supports list and show subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/session"
)

var (
	historyLimit   int
	historyRoutine string
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Browse recorded sessions",
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent sessions, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := repo.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if historyRoutine != "" {
			var filtered []models.WorkoutSession
			for _, s := range history {
				if strings.EqualFold(string(s.RoutineID), historyRoutine) {
					filtered = append(filtered, s)
				}
			}
			history = filtered
		}

		out := cmd.OutOrStdout()
		recent := session.Recent(history, historyLimit)
		if len(recent) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}
		for _, s := range recent {
			printSessionSummary(out, s)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show every set of a session",
	Long: `Show every exercise and set of a recorded session.

The session can be named by its full ID or a unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := repo.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		ws, err := session.Find(history, args[0])
		if err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), ws)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of sessions")
	historyListCmd.Flags().StringVarP(&historyRoutine, "routine", "r", "", "only sessions of this routine")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
