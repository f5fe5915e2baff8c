package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <project>",
	Short: "Export a project and its sessions as JSON",
	Long: `Export a project bundle for backup or sharing.

The output is a JSON object with a "project" object and a "results"
array, the same shape 'swpro import' accepts. Importing the bundle on
another installation always creates a new project; ids are never reused.

Examples:
  swpro export Training                    Print the bundle to stdout
  swpro export Training > training.json    Export to a file
  swpro export Training --output training.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		exportProject(args[0], output)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "write the bundle to a file instead of stdout")
}

func exportProject(idOrName, output string) {
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

	bundle, err := svc.ExportProject(p.ID)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to export project")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	out := deps.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create output file")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the directory exists and is writable: %s\n", output)
			deps.Exit(1)
			return
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to encode JSON output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if output != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Exported %s (%d %s) to %s\n",
			bundle.Project.Name, len(bundle.Results),
			pluralize("session", len(bundle.Results)), output)
	}
}
