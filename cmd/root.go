package cmd

import (
	"fmt"

	"github.com/elewis787/boa"
	"github.com/spf13/cobra"

	errUtils "github.com/terraforge/terraforge/errors"
	tuiUtils "github.com/terraforge/terraforge/internal/tui/utils"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "terraforge",
	Short: "Generate infrastructure configuration from templates and layered data",
	Long: `TerraForge renders a directory tree of templates against deep-merged data files
and mirrors the result (plus any static files) into an output directory. The
input tree can live locally, in a git repository or behind any go-getter URL.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Errors are formatted centrally in main; usage spam would bury them.
		// Help output keeps the default behavior.
		isHelpRequested := cmd.Name() == "help" || cmd.Flags().Changed("help")

		cmd.SilenceUsage = !isHelpRequested
		cmd.SilenceErrors = !isHelpRequested
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := printBanner(cmd); err != nil {
			return err
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to the terraforge.yaml config file. When set, the file must exist")
	RootCmd.PersistentFlags().String("logs-level", "Info", "Logs level. Supported log levels are Trace, Debug, Info, Warning, Off. If the log level is set to Off, TerraForge will not log any messages")
	RootCmd.PersistentFlags().String("logs-file", "/dev/stderr", "The file to write TerraForge logs to. Logs can be written to any file or any standard file descriptor, including '/dev/stdout', '/dev/stderr' and '/dev/null'")
	RootCmd.PersistentFlags().Bool("no-banner", false, "Suppress the ASCII-art banner")

	cobra.OnInitialize(initStyling)
}

// initStyling swaps in boa's styled usage and help rendering, with the banner
// printed ahead of help output.
func initStyling() {
	b := boa.New(boa.WithStyles(boa.DefaultStyles()))

	RootCmd.SetUsageFunc(b.UsageFunc)

	RootCmd.SetHelpFunc(func(command *cobra.Command, args []string) {
		if err := printBanner(command); err != nil {
			errUtils.Exit(errUtils.GetExitCode(err))
		}
		b.HelpFunc(command, args)
	})
}

// printBanner prints the TerraForge banner unless disabled by --no-banner.
// The banner helper itself skips non-TTY stdout.
func printBanner(cmd *cobra.Command) error {
	noBanner, err := cmd.Flags().GetBool("no-banner")
	if err == nil && noBanner {
		return nil
	}

	fmt.Println()
	return tuiUtils.PrintStyledText("TerraForge")
}
