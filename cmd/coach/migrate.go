// ABOUTME: CLI command for moving session history between storage backends.
// ABOUTME: Copies sessions and any session in progress from one backend to another.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/storage"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move history between storage backends",
	Long: `Copy session history from one storage backend to another.

Both backends live under the data directory (~/.local/share/coach by default):

  sqlite   coach.db
  badger   badger/

The destination must be empty. The source is left untouched. After migrating,
set "backend" in ~/.config/coach/config.json to the new backend.

USAGE:

  coach migrate --from sqlite --to badger --dry-run   # Preview
  coach migrate --from sqlite --to badger             # Copy`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to must differ")
		}
		c, err := loadConfig()
		if err != nil {
			return err
		}
		dataDir := c.GetDataDir()
		out := cmd.OutOrStdout()

		if migrateTo == config.BackendBadger {
			nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dataDir, "badger"))
			if err != nil {
				return err
			}
			if nonEmpty && !migrateDryRun {
				return fmt.Errorf("destination %s already has data", filepath.Join(dataDir, "badger"))
			}
		}

		src, err := config.OpenBackend(migrateFrom, dataDir)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer func() { err = multierr.Append(err, src.Close()) }()

		if migrateDryRun {
			sessions, err := src.Load()
			if err != nil {
				return fmt.Errorf("failed to load source: %w", err)
			}
			sets := 0
			for _, s := range sessions {
				for _, l := range s.Logs {
					sets += len(l.Sets)
				}
			}
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintf(out, "Would migrate %d sessions (%d sets) from %s to %s\n", len(sessions), sets, migrateFrom, migrateTo)
			return nil
		}

		dst, err := config.OpenBackend(migrateTo, dataDir)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer func() { err = multierr.Append(err, dst.Close()) }()

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Migrated %d sessions (%d sets) from %s to %s\n",
			summary.Sessions, summary.Sets, migrateFrom, migrateTo)
		if summary.Draft {
			fmt.Fprintln(out, "  Session in progress copied too.")
		}
		fmt.Fprintf(out, "\nSet \"backend\": %q in %s to use it.\n", migrateTo, config.GetConfigPath())
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendSQLite, "source backend (sqlite or badger)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendBadger, "destination backend (sqlite or badger)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
