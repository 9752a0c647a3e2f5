// ABOUTME: CLI commands for exporting and importing session history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/coach/internal/storage"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export session history",
	Long: `Export session history in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for sharing with a coach)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include sessions since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  coach export json                        # Export all data as JSON
  coach export json -o backup.json         # Save to file
  coach export yaml                        # Export as YAML
  coach export markdown --since 2025-01-01 # Sessions from 2025 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		now := nowFunc()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo, now)
		case "yaml":
			data, err = storage.ExportYAML(repo, now)
		case "markdown", "md":
			var since *time.Time
			if exportSince != "" {
				t, perr := parseDate(exportSince)
				if perr != nil {
					return perr
				}
				since = &t
			}
			var md string
			md, err = storage.ExportMarkdown(repo, since, now)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(out, "✓ Exported to %s\n", exportOutput)
			return nil
		}
		fmt.Fprintln(out, string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import session history from JSON or YAML",
	Long: `Import session history from a file written by 'coach export json' or 'coach export yaml'.

Sessions are matched by ID. A session already stored is replaced by the
imported copy; new sessions are added.

EXAMPLES:

  coach import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		summary, err := storage.ImportJSON(repo, raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		logger.Debug("import finished", "added", summary.Added, "replaced", summary.Replaced)

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported from %s (%d added, %d replaced)\n",
			args[0], summary.Added, summary.Replaced)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only sessions since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
