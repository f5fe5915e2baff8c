package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/model"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/stats"
)

var resultsYesFlag bool

// resultsCmd represents the results parent command
var resultsCmd = &cobra.Command{
	Use:   "results [project]",
	Short: "Manage saved sessions",
	Long: `List and manage saved stopwatch sessions (results).

Usage:
  swpro results                        List all sessions
  swpro results <project>              List a project's sessions
  swpro results laps <session>         Show a session's laps with statistics
  swpro results rename <session> <new-name>
  swpro results delete <session>       Delete a session
  swpro results remove-lap <session> <lap-number>
  swpro results wage <session> <hourly-wage>
  swpro results image <session> <uri>  Attach an image reference

Sessions can be referred to by name or by id.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		project := ""
		if len(args) == 1 {
			project = args[0]
		}
		listResults(project)
	},
}

var resultsLapsCmd = &cobra.Command{
	Use:   "laps <session>",
	Short: "Show a session's laps with statistics",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showLaps(args[0])
	},
}

var resultsRenameCmd = &cobra.Command{
	Use:   "rename <session> <new-name>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		renameResult(args[0], args[1])
	},
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete <session>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteResult(args[0])
	},
}

var resultsRemoveLapCmd = &cobra.Command{
	Use:   "remove-lap <session> <lap-number>",
	Short: "Remove a lap from a session",
	Long: `Remove a single lap from a saved session. Remaining laps are
renumbered from 1 and the session total is recomputed from the per-lap
times.

The lap number is the 1-based number shown by 'swpro results laps'.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		removeLap(args[0], args[1])
	},
}

var resultsWageCmd = &cobra.Command{
	Use:   "wage <session> <hourly-wage>",
	Short: "Set a session's hourly wage",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setWage(args[0], args[1])
	},
}

var resultsImageCmd = &cobra.Command{
	Use:   "image <session> <uri>",
	Short: "Attach an image reference to a session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setImage(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsLapsCmd)
	resultsCmd.AddCommand(resultsRenameCmd)
	resultsCmd.AddCommand(resultsDeleteCmd)
	resultsCmd.AddCommand(resultsRemoveLapCmd)
	resultsCmd.AddCommand(resultsWageCmd)
	resultsCmd.AddCommand(resultsImageCmd)

	resultsDeleteCmd.Flags().BoolVarP(&resultsYesFlag, "yes", "y", false, "skip confirmation prompt")
}

// findResultOrExit resolves a session by name or id, exiting with the
// error triple when it doesn't exist.
func findResultOrExit(svc *session.Service, idOrName string) (model.Result, bool) {
	r, err := svc.FindResult(idOrName)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Session '%s' not found\n", idOrName)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List sessions with 'swpro results'")
		deps.Exit(1)
		return model.Result{}, false
	}
	return r, true
}

func listResults(project string) {
	svc, ok := newService()
	if !ok {
		return
	}

	projectID := ""
	heading := "All sessions"
	if project != "" {
		p, err := svc.FindProject(project)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Project '%s' not found\n", project)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List projects with 'swpro projects'")
			deps.Exit(1)
			return
		}
		projectID = p.ID
		heading = fmt.Sprintf("Sessions in %s", p.Name)
	}

	results, err := svc.Results(projectID)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read results")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(results) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No sessions found")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s:\n", heading)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	var totalMs int64
	for _, r := range results {
		line := fmt.Sprintf("%s  %s, %d %s (%s)",
			formatStopwatch(r.TotalTime), r.Name,
			len(r.Laps), pluralize("lap", len(r.Laps)),
			humanize.Time(r.CreatedAt))
		if e := stats.ResultEarnings(r); e > 0 {
			line += fmt.Sprintf(", earned %s", formatEarnings(e))
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
		totalMs += r.TotalTime
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", formatStopwatch(totalMs))
}

func showLaps(idOrName string) {
	svc, ok := newService()
	if !ok {
		return
	}
	r, ok := findResultOrExit(svc, idOrName)
	if !ok {
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s (%s)\n", r.Name, formatStopwatch(r.TotalTime))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, lap := range r.Laps {
		_, _ = fmt.Fprintf(deps.Stdout, "[%3d] %s  (at %s)\n",
			lap.Number, formatStopwatch(lap.Time), formatStopwatch(lap.Cumulative))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	s := stats.CalculateLapStats(r.Laps)
	if s.Count == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No laps")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Average: %s\n", formatStopwatch(s.AverageMs))
	_, _ = fmt.Fprintf(deps.Stdout, "Fastest: %s (lap %d)\n", formatStopwatch(s.Fastest.Time), s.Fastest.Number)
	_, _ = fmt.Fprintf(deps.Stdout, "Slowest: %s (lap %d)\n", formatStopwatch(s.Slowest.Time), s.Slowest.Number)
}

func renameResult(idOrName, newName string) {
	svc, ok := newService()
	if !ok {
		return
	}
	r, ok := findResultOrExit(svc, idOrName)
	if !ok {
		return
	}

	updated, applied, err := svc.UpdateResult(r.ID, session.ResultPatch{Name: &newName})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to rename session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	if !applied {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Session '%s' no longer exists\n", idOrName)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Renamed session: %s -> %s\n", r.Name, updated.Name)
}

func deleteResult(idOrName string) {
	svc, ok := newService()
	if !ok {
		return
	}
	r, ok := findResultOrExit(svc, idOrName)
	if !ok {
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Session to delete: %s (%s)\n", r.Name, formatStopwatch(r.TotalTime))
	if !resultsYesFlag {
		if !promptConfirmation("Delete this session? [y/N]: ") {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	if err := svc.DeleteResult(r.ID); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to delete session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s (%s)\n", r.Name, formatStopwatch(r.TotalTime))
}

func removeLap(idOrName, lapNumber string) {
	svc, ok := newService()
	if !ok {
		return
	}
	r, ok := findResultOrExit(svc, idOrName)
	if !ok {
		return
	}

	number, err := strconv.Atoi(lapNumber)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid lap number '%s'. Lap number must be a number\n", lapNumber)
		deps.Exit(1)
		return
	}
	if number < 1 || number > len(r.Laps) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Lap %d is out of range\n", number)
		_, _ = fmt.Fprintf(deps.Stderr, "Valid range: 1-%d\n", len(r.Laps))
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Show laps with 'swpro results laps'")
		deps.Exit(1)
		return
	}

	updated, err := svc.RemoveLap(r.ID, number-1)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to remove lap")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed lap %d from %s (new total %s, %d %s)\n",
		number, updated.Name, formatStopwatch(updated.TotalTime),
		len(updated.Laps), pluralize("lap", len(updated.Laps)))
}

func setWage(idOrName, wageStr string) {
	svc, ok := newService()
	if !ok {
		return
	}
	r, ok := findResultOrExit(svc, idOrName)
	if !ok {
		return
	}

	wage, err := strconv.ParseFloat(wageStr, 64)
	if err != nil || wage < 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid hourly wage '%s'\n", wageStr)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a non-negative number, e.g. 'swpro results wage run 120'")
		deps.Exit(1)
		return
	}

	updated, _, err := svc.UpdateResult(r.ID, session.ResultPatch{HourlyWage: &wage})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to update session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Set hourly wage for %s: %s (earnings %s)\n",
		updated.Name, formatEarnings(wage), formatEarnings(stats.ResultEarnings(updated)))
}

func setImage(idOrName, uri string) {
	svc, ok := newService()
	if !ok {
		return
	}
	r, ok := findResultOrExit(svc, idOrName)
	if !ok {
		return
	}

	updated, _, err := svc.UpdateResult(r.ID, session.ResultPatch{Image: &uri})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to update session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Attached image to %s: %s\n", updated.Name, updated.Image)
}
