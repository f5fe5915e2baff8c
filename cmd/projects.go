package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/session"
)

var projectsYesFlag bool

// projectsCmd represents the projects parent command
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
	Long: `Manage the projects that saved sessions are organized into.

Usage:
  swpro projects                       List projects
  swpro projects add <name>            Create a project
  swpro projects rename <project> <new-name>
  swpro projects delete <project>      Delete a project and all its sessions

Projects can be referred to by name or by id.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listProjects()
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new project",
	Long: `Create a new project. Names must be unique.

The optional color flags set the badge colors used by the TUI.

Examples:
  swpro projects add Training
  swpro projects add Training --color '#ff5555' --text-color '#ffffff'`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		color, _ := cmd.Flags().GetString("color")
		textColor, _ := cmd.Flags().GetString("text-color")
		addProject(args[0], color, textColor)
	},
}

var projectsRenameCmd = &cobra.Command{
	Use:   "rename <project> <new-name>",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		renameProject(args[0], args[1])
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project>",
	Short: "Delete a project and all of its sessions",
	Long: `Delete a project. Every session saved in the project is deleted with
it. A confirmation prompt is shown unless --yes is specified.

Example:
  swpro projects delete Training
  swpro projects delete Training --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteProject(args[0])
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsRenameCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)

	projectsAddCmd.Flags().String("color", "", "badge background color (hex)")
	projectsAddCmd.Flags().String("text-color", "", "badge text color (hex)")
	projectsDeleteCmd.Flags().BoolVarP(&projectsYesFlag, "yes", "y", false, "skip confirmation prompt")
}

func listProjects() {
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
		return
	}

	for _, p := range projects {
		_, _ = fmt.Fprintf(deps.Stdout, "%s  (created %s)\n",
			p.Name, humanize.Time(p.CreatedAt))
	}
}

func addProject(name, color, textColor string) {
	svc, ok := newService()
	if !ok {
		return
	}

	p, err := svc.CreateProject(name, color, textColor)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create project '%s'\n", name)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		if errors.Is(err, session.ErrProjectExists) {
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List existing projects with 'swpro projects'")
		}
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created project: %s\n", p.Name)
}

func renameProject(idOrName, newName string) {
	svc, ok := newService()
	if !ok {
		return
	}

	p, err := svc.FindProject(idOrName)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Project '%s' not found\n", idOrName)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List projects with 'swpro projects'")
		deps.Exit(1)
		return
	}

	renamed, err := svc.RenameProject(p.ID, newName)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to rename project")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Renamed project: %s -> %s\n", p.Name, renamed.Name)
}

func deleteProject(idOrName string) {
	svc, ok := newService()
	if !ok {
		return
	}

	p, err := svc.FindProject(idOrName)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Project '%s' not found\n", idOrName)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List projects with 'swpro projects'")
		deps.Exit(1)
		return
	}

	results, err := svc.Results(p.ID)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read results")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Project to delete: %s (%d %s)\n",
		p.Name, len(results), pluralize("session", len(results)))

	if !projectsYesFlag {
		if !promptConfirmation(fmt.Sprintf("Delete this project and its %d %s? [y/N]: ",
			len(results), pluralize("session", len(results)))) {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	removed, err := svc.DeleteProject(p.ID)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to delete project")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s (%d %s removed)\n",
		p.Name, removed, pluralize("session", removed))
}

// promptConfirmation asks the user to confirm an action.
// Returns true if user confirms with 'y' or 'Y', false otherwise
func promptConfirmation(prompt string) bool {
	_, _ = fmt.Fprint(deps.Stdout, prompt)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
