package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/terraforge/terraforge/internal/exec"
)

// renderCmd renders one template. No banner here: with --output unset the
// rendered text goes to stdout and must stay clean.
var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a single template against the merged data files",
	Long: `This command loads and deep-merges the configured data files and renders one
template against the result. Pass '-' as the template to read it from stdin.
The rendered text is written to --output, or to stdout when no output is set.`,
	Example: "terraforge render main.tf.tmpl --data-file base.yaml --output main.tf\n" +
		"cat main.tf.tmpl | terraforge render - --data-file base.yaml",
	Args: cobra.ExactArgs(1),
	RunE: e.ExecuteRenderCmd,
}

func init() {
	renderCmd.Flags().StringSliceP("data-file", "d", nil, "Data file to merge; repeatable, later files override earlier ones")
	renderCmd.Flags().StringP("output", "o", "", "File to write the rendered output to (stdout when empty)")
	renderCmd.Flags().String("engine", "", "Template engine: gotemplate or pongo2")

	RootCmd.AddCommand(renderCmd)
}
