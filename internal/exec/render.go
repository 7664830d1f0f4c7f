package exec

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	errUtils "github.com/terraforge/terraforge/errors"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
	"github.com/terraforge/terraforge/pkg/templater"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// ExecuteRenderCmd executes the `render` command: render a single template
// against the merged data files and write the result to --output, or to
// stdout when no output is set.
func ExecuteRenderCmd(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("invalid arguments. The command requires one argument `template`")
	}

	cfg, logger, err := initPipelineConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("engine") {
		if cfg.Templates.Engine, err = flags.GetString("engine"); err != nil {
			return err
		}
	}
	if flags.Changed("data-file") {
		if cfg.DataFiles, err = flags.GetStringSlice("data-file"); err != nil {
			return err
		}
	}

	output, err := flags.GetString("output")
	if err != nil {
		return err
	}

	return renderSingleTemplate(&cfg, logger, args[0], cfg.DataFiles, output)
}

// renderSingleTemplate loads the data files, renders one template and writes
// the result. The template is read from stdin when templatePath is "-".
// Unlike the directory pipeline there is no tally here: every error is fatal.
func renderSingleTemplate(
	cfg *schema.TerraforgeConfiguration,
	logger *log.Logger,
	templatePath string,
	dataFiles []string,
	outputPath string,
) error {
	merged, err := loadAndMergeDataFiles(cfg, logger, dataFiles)
	if err != nil {
		return err
	}

	engine, err := templater.New(cfg, logger)
	if err != nil {
		return err
	}

	var rendered string
	if templatePath == "-" {
		content, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return errUtils.Build(errUtils.ErrIO).WithCause(readErr).WithContext("file", "stdin").Err()
		}
		rendered, err = engine.RenderString("stdin", string(content), merged)
	} else {
		rendered, err = engine.RenderFile(filepath.Dir(templatePath), filepath.Base(templatePath), merged)
	}
	if err != nil {
		return err
	}

	if outputPath == "" {
		u.PrintMessage(rendered)
		return nil
	}

	if err := u.EnsureDir(outputPath); err != nil {
		return errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("dir", filepath.Dir(outputPath)).
			Err()
	}
	if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
		return errUtils.Build(errUtils.ErrIO).
			WithCause(err).
			WithContext("file", outputPath).
			Err()
	}

	logger.Info("Rendered template", "template", templatePath, "output", outputPath)
	return nil
}
