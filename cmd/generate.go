package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/terraforge/terraforge/internal/exec"
)

// generateCmd renders the whole input tree into the output directory.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render templates and copy static files into the output directory",
	Long: `This command loads and deep-merges the configured data files, renders every
template in the input tree against the merged data, and copies the remaining
files unchanged, mirroring the directory structure into the output directory.`,
	Example: "terraforge generate --input-dir templates --output-dir build --data-file base.yaml --data-file prod.yaml\n" +
		"terraforge generate --source git --repo-url https://github.com/org/templates.git --input-dir stacks --output-dir build",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := printBanner(cmd); err != nil {
			return err
		}
		return e.ExecuteGenerateCmd(cmd, args)
	},
}

func init() {
	generateCmd.Flags().StringP("source", "s", "", "Where the input tree comes from: local, git or remote")
	generateCmd.Flags().StringP("repo-url", "r", "", "Repository URL for git sources, or go-getter URL for remote sources")
	generateCmd.Flags().StringP("branch", "b", "", "Branch to check out for git sources")
	generateCmd.Flags().String("token", "", "Personal access token for https git clones")
	generateCmd.Flags().String("ssh-key", "", "Path to the SSH private key for ssh git clones")
	generateCmd.Flags().StringP("input-dir", "i", "", "Directory holding templates and static files")
	generateCmd.Flags().StringP("output-dir", "o", "", "Directory to write rendered and copied files to")
	generateCmd.Flags().StringSliceP("data-file", "d", nil, "Data file to merge; repeatable, later files override earlier ones")
	generateCmd.Flags().String("schema", "", "JSON Schema (path or URL) to validate the merged data against")
	generateCmd.Flags().String("engine", "", "Template engine: gotemplate or pongo2")
	generateCmd.Flags().String("marker", "", "Filename suffix identifying templates (default .tmpl, or .j2 for pongo2)")
	generateCmd.Flags().String("output-suffix", "", "Suffix appended to every rendered file name after the marker is stripped")
	generateCmd.Flags().Bool("skip-empty", true, "Skip writing files whose rendered content is empty")

	RootCmd.AddCommand(generateCmd)
}
