// ABOUTME: Root Cobra command for coach CLI.
// ABOUTME: Loads config and opens storage via PersistentPreRunE, closes it in PersistentPostRunE.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/feedback"
	"github.com/harperreed/coach/internal/ids"
	"github.com/harperreed/coach/internal/logging"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

var (
	cfg       *config.Config
	repo      storage.Repository
	catalog   *models.Catalog
	idGen     ids.Generator
	logger    *log.Logger
	logCloser io.Closer

	// nowFunc is replaced in tests.
	nowFunc = time.Now
	// newFeedback builds the feedback generator; replaced in tests.
	newFeedback = defaultFeedback

	flagBackend  string
	flagDataDir  string
	flagLogLevel string
	flagNoAI     bool
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Personal strength-training coach",
	Long: `Coach tracks strength workouts and tells you what to lift next.

HOW IT WORKS:

  Every exercise gets a recommendation from your history:
    hit every target rep      +5 next time
    finished with a drop set  keep the weight
    missed reps once          retry the weight
    missed reps twice         deload 10%

QUICK START:

  $ coach routines                    # See routines A, B, Finisher, Warmup
  $ coach session start A             # Start routine A
  $ coach set done --weight 40 --reps 12
  $ coach set drop 2                  # Add a drop set after set 2
  $ coach session next                # Move to the next exercise
  $ coach session finish              # Record it and get feedback

ANALYTICS:

  $ coach dashboard                   # Week at a glance
  $ coach progress b2                 # Bench press over time
  $ coach history list                # Recent sessions

INTEGRATIONS:

  coach mcp     Model Context Protocol server for AI assistants
  coach serve   Read-only JSON API with Prometheus metrics

DATA STORAGE:

  Sessions are stored in SQLite at ~/.local/share/coach/coach.db.
  Set "backend": "badger" in ~/.config/coach/config.json to use Badger.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsStorage(cmd) {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func skipsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion", "routines", "migrate", "install-skill":
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}

func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err = logging.Setup(logging.Params{
		Level:  cfg.GetLogLevel(),
		File:   cfg.GetLogFile(),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	idGen, err = cfg.IDGenerator()
	if err != nil {
		return err
	}

	catalog, err = cfg.LoadCatalog()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	repo, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.GetBackend(), "dir", cfg.GetDataDir())
	return nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if flagNoAI {
		c.DisableAI = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func teardown() error {
	var err error
	if repo != nil {
		err = multierr.Append(err, repo.Close())
		repo = nil
	}
	if logCloser != nil {
		err = multierr.Append(err, logCloser.Close())
		logCloser = nil
	}
	return err
}

// defaultFeedback uses the local model when enabled, falling back to the
// rule-based summary on any failure.
func defaultFeedback() (feedback.Generator, func()) {
	if cfg == nil || cfg.DisableAI {
		return feedback.Fallback{}, func() {}
	}
	client := feedback.NewOllamaClient(cfg.OllamaConfig(), logger)
	return feedback.WithFallback(client, feedback.Fallback{}), client.Close
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend (sqlite or badger)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/coach)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagNoAI, "no-ai", false, "use rule-based feedback only")
}
