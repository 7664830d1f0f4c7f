package exec

import (
	"fmt"

	"github.com/spf13/cobra"

	errUtils "github.com/terraforge/terraforge/errors"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// ExecuteValidateCmd executes the `validate` command: load and merge the data
// files, validate the result against the JSON Schema and print "valid" when
// it passes. Violations surface as the command error.
func ExecuteValidateCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := initPipelineConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("data-file") {
		if cfg.DataFiles, err = flags.GetStringSlice("data-file"); err != nil {
			return err
		}
	}
	if flags.Changed("schema") {
		if cfg.Schema, err = flags.GetString("schema"); err != nil {
			return err
		}
	}

	if cfg.Schema == "" {
		return errUtils.Build(errUtils.ErrFailedToInitConfig).
			WithCause(fmt.Errorf("schema is not set")).
			WithHint("Set 'schema' in terraforge.yaml or pass --schema").
			Err()
	}

	if _, err := loadAndMergeDataFiles(&cfg, logger, cfg.DataFiles); err != nil {
		return err
	}

	u.PrintMessage("valid")
	return nil
}
