// ABOUTME: CLI command for listing the training program.
// ABOUTME: Prints every routine with its exercises, defaults and cues.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var routinesVerbose bool

var routinesCmd = &cobra.Command{
	Use:   "routines",
	Short: "List routines and their exercises",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := c.LoadCatalog()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for i, r := range cat.Routines {
			if i > 0 {
				fmt.Fprintln(out)
			}
			bold.Fprintf(out, "%s", r.ID)
			fmt.Fprintf(out, "  %s\n", r.Name)
			for _, ex := range r.Exercises {
				fmt.Fprintf(out, "  %s %s %d x %s\n", padRight(ex.ID, 4), padRight(truncate(ex.Name, 30), 30), ex.DefaultSets, ex.DefaultReps)
				if routinesVerbose && ex.Notes != "" {
					faint.Fprintf(out, "       %s\n", ex.Notes)
				}
			}
		}
		return nil
	},
}

func init() {
	routinesCmd.Flags().BoolVarP(&routinesVerbose, "verbose", "v", false, "show coaching cues")
	rootCmd.AddCommand(routinesCmd)
}
