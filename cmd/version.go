package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	u "github.com/terraforge/terraforge/pkg/utils"
	"github.com/terraforge/terraforge/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the CLI version",
	Long:    `This command prints the CLI version`,
	Example: "terraforge version",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := printBanner(cmd); err != nil {
			return err
		}

		u.PrintMessage(fmt.Sprintf("TerraForge %s on %s/%s", version.Version, runtime.GOOS, runtime.GOARCH))
		fmt.Println()
		return nil
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
