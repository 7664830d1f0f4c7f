package cmd

import (
	"github.com/spf13/cobra"

	e "github.com/terraforge/terraforge/internal/exec"
)

// validateCmd checks the merged data files against a JSON Schema.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the merged data files against a JSON Schema",
	Long: `This command loads and deep-merges the configured data files and validates the
result against the JSON Schema. It prints "valid" on success and reports the
violations otherwise.`,
	Example: "terraforge validate --data-file base.yaml --data-file prod.yaml --schema schema.json",
	Args:    cobra.NoArgs,
	RunE:    e.ExecuteValidateCmd,
}

func init() {
	validateCmd.Flags().StringSliceP("data-file", "d", nil, "Data file to merge; repeatable, later files override earlier ones")
	validateCmd.Flags().String("schema", "", "JSON Schema (path or URL) to validate the merged data against")

	RootCmd.AddCommand(validateCmd)
}
