// ABOUTME: CLI command for generating coaching feedback on a recorded session.
// ABOUTME: Feedback is attached once per session.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/session"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <session-id>",
	Short: "Generate coaching feedback for a recorded session",
	Long: `Generate coaching feedback for a recorded session and store it with the session.

Feedback comes from a local Ollama model when one is reachable, otherwise from
a rule-based summary. Pass --no-ai to skip the model. A session keeps the first
feedback it receives; running this again shows the stored text.

EXAMPLES:

  coach feedback 01J5ZK         # Session by ID prefix
  coach --no-ai feedback 01J5ZK # Rule-based summary only`,
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

		out := cmd.OutOrStdout()
		if ws.Feedback != nil {
			color.New(color.Faint).Fprintf(out, "Feedback already attached to %s:\n", shortID(ws.ID))
			color.New(color.FgCyan).Fprintln(out, *ws.Feedback)
			return nil
		}
		return attachFeedback(cmd.Context(), out, history, ws)
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}
