package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stats"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "swpro",
	Short: "A lap stopwatch with projects and voice control",
	Long: `swpro is a lap stopwatch for timing repeated activities, with saved
sessions organized into projects.

Usage:
  swpro                                List projects with totals
  swpro tui                            Launch the interactive stopwatch
  swpro voice                          Drive the stopwatch from transcripts
  swpro projects add <name>            Create a project
  swpro results <project>              List a project's saved sessions
  swpro export <project> > file.json   Export a project bundle
  swpro import file.json               Merge a project bundle
  swpro config                         Show configuration

Times are displayed as MM:SS.hh (minutes, seconds, hundredths).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showOverview()
	},
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"swpro version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newService builds the persistence service over the configured data
// directory. Prints the error triple and exits on failure; the second
// return value tells the caller whether to continue (tests stub Exit).
func newService() (*session.Service, bool) {
	dir, err := deps.DataDir()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine data location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return nil, false
	}
	return session.NewService(store.NewFileStore(dir)), true
}

// showOverview lists every project with its session count, total time and
// earnings.
func showOverview() {
	svc, ok := newService()
	if !ok {
		return
	}

	projects, err := svc.Projects()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read projects")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(projects) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No projects yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Create one with 'swpro projects add <name>' or save a session from the TUI")
		return
	}

	results, err := svc.Results("")
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read results")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Projects:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, p := range projects {
		totals := stats.CalculateProjectTotals(p.ID, results)
		line := fmt.Sprintf("%s  %d %s, %s total",
			p.Name, totals.ResultCount,
			pluralize("session", totals.ResultCount),
			formatStopwatch(totals.TotalMs))
		if totals.Earnings > 0 {
			line += fmt.Sprintf(", earned %s", formatEarnings(totals.Earnings))
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s\n", len(results), pluralize("session", len(results)))
}
