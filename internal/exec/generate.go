package exec

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/config"
	log "github.com/terraforge/terraforge/pkg/logger"
	"github.com/terraforge/terraforge/pkg/schema"
	"github.com/terraforge/terraforge/pkg/templater"
)

// ExecuteGenerateCmd executes the `generate` command: fetch the source tree
// if it is not local, load and merge the data files, render every template
// into the output tree and mirror the static files next to them.
func ExecuteGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := initPipelineConfig(cmd)
	if err != nil {
		return err
	}

	if err := applyGenerateFlags(&cfg, cmd.Flags()); err != nil {
		return err
	}

	if cfg.InputDir == "" {
		return errUtils.Build(errUtils.ErrFailedToInitConfig).
			WithCause(fmt.Errorf("input directory is not set")).
			WithHint("Set 'input_dir' in terraforge.yaml or pass --input-dir").
			Err()
	}
	if cfg.OutputDir == "" {
		return errUtils.Build(errUtils.ErrFailedToInitConfig).
			WithCause(fmt.Errorf("output directory is not set")).
			WithHint("Set 'output_dir' in terraforge.yaml or pass --output-dir").
			Err()
	}

	return runPipeline(&cfg, logger)
}

// runPipeline runs the fetch → load → render → copy sequence. Structural
// errors (missing roots, unloadable data, engine construction) are returned
// and become the process exit status; per-file render and copy failures only
// show up in the tallies.
func runPipeline(cfg *schema.TerraforgeConfiguration, logger *log.Logger) error {
	inputRoot, tempDir, err := fetchSource(cfg, logger)
	defer removeTempDir(logger, tempDir)
	if err != nil {
		return err
	}

	merged, err := loadAndMergeDataFiles(cfg, logger, cfg.DataFiles)
	if err != nil {
		return err
	}

	engine, err := templater.New(cfg, logger)
	if err != nil {
		return err
	}

	renderTally, err := renderTemplates(cfg, logger, engine, inputRoot, cfg.OutputDir, merged)
	if err != nil {
		return err
	}
	logger.Info("Rendered templates",
		"found", renderTally.Found,
		"succeeded", renderTally.Succeeded,
		"skipped", renderTally.Skipped,
		"failed", renderTally.Failed,
	)

	copyTally, err := copyStaticFiles(cfg, logger, inputRoot, cfg.OutputDir)
	if err != nil {
		return err
	}
	logger.Info("Copied static files",
		"found", copyTally.Found,
		"succeeded", copyTally.Succeeded,
		"failed", copyTally.Failed,
	)

	return nil
}

// initPipelineConfig loads the layered configuration and builds the logger,
// honoring the persistent --config, --logs-level and --logs-file flags.
func initPipelineConfig(cmd *cobra.Command) (schema.TerraforgeConfiguration, *log.Logger, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return schema.TerraforgeConfiguration{}, nil, err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, nil, err
	}

	if flags.Changed("logs-level") {
		if cfg.Logs.Level, err = flags.GetString("logs-level"); err != nil {
			return cfg, nil, err
		}
	}
	if flags.Changed("logs-file") {
		if cfg.Logs.File, err = flags.GetString("logs-file"); err != nil {
			return cfg, nil, err
		}
	}

	logger, err := log.NewFromConfig(&cfg)
	if err != nil {
		return cfg, nil, err
	}

	return cfg, logger, nil
}

// applyGenerateFlags overrides the loaded configuration with any `generate`
// flags the user set explicitly.
func applyGenerateFlags(cfg *schema.TerraforgeConfiguration, flags *pflag.FlagSet) error {
	stringFlags := map[string]*string{
		"source":        &cfg.Source.Type,
		"repo-url":      &cfg.Source.Url,
		"branch":        &cfg.Source.Branch,
		"token":         &cfg.Source.Token,
		"ssh-key":       &cfg.Source.SshKeyPath,
		"input-dir":     &cfg.InputDir,
		"output-dir":    &cfg.OutputDir,
		"schema":        &cfg.Schema,
		"engine":        &cfg.Templates.Engine,
		"marker":        &cfg.Templates.Marker,
		"output-suffix": &cfg.Templates.OutputSuffix,
	}

	for name, target := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*target = value
	}

	if flags.Changed("data-file") {
		dataFiles, err := flags.GetStringSlice("data-file")
		if err != nil {
			return err
		}
		cfg.DataFiles = dataFiles
	}

	if flags.Changed("skip-empty") {
		skipEmpty, err := flags.GetBool("skip-empty")
		if err != nil {
			return err
		}
		cfg.Templates.SkipEmpty = skipEmpty
	}

	// A marker inherited from the other engine's default follows an --engine
	// override; an explicit --marker always wins.
	if flags.Changed("engine") && !flags.Changed("marker") {
		switch cfg.Templates.Engine {
		case templater.EnginePongo2:
			if cfg.Templates.Marker == config.DefaultGoTemplateMarker {
				cfg.Templates.Marker = config.DefaultPongo2Marker
			}
		case templater.EngineGoTemplate:
			if cfg.Templates.Marker == config.DefaultPongo2Marker {
				cfg.Templates.Marker = config.DefaultGoTemplateMarker
			}
		}
	}

	return nil
}
