// ABOUTME: CLI commands for running a live workout session.
// ABOUTME: Supports start, show, next, prev, skip, finish, and discard subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/feedback"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/session"
)

var (
	startForce       bool
	finishNoFeedback bool
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Run a workout session",
	Long: `Run a workout session one exercise at a time.

WORKFLOW:

  1. Start a routine:        coach session start A
  2. Log sets:               coach set done --weight 40 --reps 12
  3. Move between exercises: coach session next / prev / skip
  4. Record it:              coach session finish

The session in progress is saved after every command, so you can close the
terminal between sets. Only one session can be in progress at a time.

Warmup sessions are never recorded.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <routine>",
	Short: "Start a routine (A, B, Finisher, Warmup)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		routine, err := resolveRoutine(catalog, args[0])
		if err != nil {
			return err
		}

		if _, err := repo.LoadDraft(); err == nil && !startForce {
			return fmt.Errorf("a session is already in progress (finish it, run 'coach session discard', or use --force)")
		} else if err != nil && !errors.Is(err, session.ErrNoDraft) {
			return fmt.Errorf("failed to load session: %w", err)
		}

		history, err := repo.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		s := session.Start(routine, history, nowFunc(), idGen)
		s.Editor()
		if err := saveSession(s); err != nil {
			return err
		}
		logger.Debug("session started", "id", s.ID(), "routine", routine.ID)

		out := cmd.OutOrStdout()
		workout := s.Workout()
		color.New(color.FgGreen).Fprintf(out, "✓ Started %s: %s\n", routine.ID, routine.Name)
		fmt.Fprintf(out, "  %s · %s\n\n", workout.Date.Local().Format("Mon Jan 2 15:04"), workout.TimeOfDay)
		printStep(out, s.Current())
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current exercise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		printStep(cmd.OutOrStdout(), s.Current())
		return nil
	},
}

var sessionNextCmd = &cobra.Command{
	Use:     "next",
	Aliases: []string{"n"},
	Short:   "Move to the next exercise",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd.OutOrStdout(), (*session.Session).Next, "Already on the last exercise. Run 'coach session finish' to record it.")
	},
}

var sessionPrevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"p"},
	Short:   "Move to the previous exercise",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd.OutOrStdout(), (*session.Session).Prev, "Already on the first exercise.")
	},
}

var sessionSkipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip the current exercise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		name := s.Current().Exercise.Name
		s.Skip()
		s.Editor()
		if err := saveSession(s); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		color.New(color.FgYellow).Fprintf(out, "Skipped %s\n\n", name)
		printStep(out, s.Current())
		return nil
	},
}

var sessionFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Record the session and get feedback",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession()
		if err != nil {
			return err
		}
		history, err := repo.Load()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		out := cmd.OutOrStdout()
		updated, done, err := s.Finish(history)
		if errors.Is(err, session.ErrNotRecorded) {
			if err := repo.ClearDraft(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			color.New(color.FgGreen).Fprintln(out, "✓ Warmup complete (not recorded)")
			return nil
		}
		if err != nil {
			return err
		}

		if err := repo.Save(updated); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		if err := repo.ClearDraft(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		logger.Debug("session finished", "id", done.ID, "routine", done.RoutineID)

		color.New(color.FgGreen).Fprintf(out, "✓ Recorded %s (ID: %s)\n", done.RoutineID, shortID(done.ID))
		printSession(out, done)

		if finishNoFeedback {
			return nil
		}
		fmt.Fprintln(out)
		return attachFeedback(cmd.Context(), out, updated, done)
	},
}

var sessionDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Throw away the session in progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := repo.LoadDraft(); errors.Is(err, session.ErrNoDraft) {
			fmt.Fprintln(cmd.OutOrStdout(), "No session in progress.")
			return nil
		}
		if err := repo.ClearDraft(); err != nil {
			return fmt.Errorf("failed to discard session: %w", err)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Discarded session")
		return nil
	},
}

// loadSession resumes the stored draft.
func loadSession() (*session.Session, error) {
	d, err := repo.LoadDraft()
	if errors.Is(err, session.ErrNoDraft) {
		return nil, fmt.Errorf("no session in progress (run 'coach session start <routine>')")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	history, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return session.Resume(d, history, idGen)
}

func saveSession(s *session.Session) error {
	if err := repo.SaveDraft(s.Draft(nowFunc())); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func navigate(out io.Writer, move func(*session.Session) bool, atEdge string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	if !move(s) {
		fmt.Fprintln(out, atEdge)
		return nil
	}
	s.Editor()
	if err := saveSession(s); err != nil {
		return err
	}
	printStep(out, s.Current())
	return nil
}

// attachFeedback generates coaching feedback for done and stores it.
// Generation failures are warnings; the session is already recorded.
func attachFeedback(ctx context.Context, out io.Writer, history []models.WorkoutSession, done models.WorkoutSession) error {
	if ctx == nil {
		ctx = context.Background()
	}
	gen, release := newFeedback()
	defer release()

	timeout := feedback.DefaultTimeout * 2
	if cfg != nil {
		timeout = cfg.OllamaConfig().Timeout * 2
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make(chan feedback.Result, 1)
	feedback.AttachAsync(ctx, gen, done, history, func(r feedback.Result) { results <- r })

	var r feedback.Result
	select {
	case r = <-results:
	case <-ctx.Done():
		r = feedback.Result{SessionID: done.ID, Err: ctx.Err()}
	}
	if r.Err != nil {
		color.New(color.FgYellow).Fprintf(out, "⚠ Feedback unavailable: %v\n", r.Err)
		return nil
	}

	updated, err := session.AttachFeedback(history, done.ID, r.Text)
	if err != nil {
		color.New(color.FgYellow).Fprintf(out, "⚠ Feedback not saved: %v\n", err)
		return nil
	}
	if err := repo.Save(updated); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	color.New(color.FgCyan).Fprintln(out, r.Text)
	return nil
}

func init() {
	sessionStartCmd.Flags().BoolVarP(&startForce, "force", "f", false, "replace a session already in progress")
	sessionFinishCmd.Flags().BoolVar(&finishNoFeedback, "no-feedback", false, "skip coaching feedback")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionNextCmd)
	sessionCmd.AddCommand(sessionPrevCmd)
	sessionCmd.AddCommand(sessionSkipCmd)
	sessionCmd.AddCommand(sessionFinishCmd)
	sessionCmd.AddCommand(sessionDiscardCmd)
	rootCmd.AddCommand(sessionCmd)
}
