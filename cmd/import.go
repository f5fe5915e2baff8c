package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge an exported project bundle",
	Long: `Merge a project bundle produced by 'swpro export' into the local
collections.

Importing is strictly additive: existing projects and sessions are never
modified or removed, and the bundle's ids are never reused. Importing the
same bundle twice creates two projects; the second gets a date suffix to
keep listings unambiguous. A malformed bundle is rejected before anything
is written.

Example:
  swpro import training.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		importBundle(args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importBundle(path string) {
	svc, ok := newService()
	if !ok {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read '%s'\n", path)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the file exists and is readable")
		deps.Exit(1)
		return
	}

	var bundle model.ProjectPayload
	if err := json.Unmarshal(data, &bundle); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: '%s' is not a valid project bundle\n", path)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Bundles are produced by 'swpro export <project>'")
		deps.Exit(1)
		return
	}

	p, err := svc.MergeProjectFromPayload(bundle)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to import project bundle")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		if errors.Is(err, session.ErrInvalidPayload) {
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Nothing was imported; the bundle is malformed")
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Imported: %s (%d %s)\n",
		p.Name, len(bundle.Results), pluralize("session", len(bundle.Results)))
}
