package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	errUtils "github.com/terraforge/terraforge/errors"
	"github.com/terraforge/terraforge/pkg/schema"
	"github.com/terraforge/terraforge/pkg/templater"
	u "github.com/terraforge/terraforge/pkg/utils"
)

// LoadConfig loads `terraforge.yaml` into a TerraforgeConfiguration.
//
// The config is merged from the following locations (from lower to higher priority):
//  1. System directory (`/usr/local/etc/terraforge`; `%LOCALAPPDATA%/terraforge` on Windows)
//  2. Home directory (`~/.terraforge`)
//  3. Current directory
//  4. The directory named by the TERRAFORGE_CLI_CONFIG_PATH ENV var
//  5. The explicit `--config` path
//
// Missing files in the standard locations are fine (defaults apply); a path named
// explicitly (ENV var or flag) must exist, and a malformed found file is an error.
// Flag overrides are applied by the command layer on top of the returned config.
func LoadConfig(configPath string) (schema.TerraforgeConfiguration, error) {
	var cfg schema.TerraforgeConfiguration

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetTypeByDefaultValue(true)

	setDefaults(v)

	// 1. System directory.
	configFilePathSystem := ""
	if runtime.GOOS == "windows" {
		appDataDir := os.Getenv(WindowsAppDataEnvVar)
		if len(appDataDir) > 0 {
			configFilePathSystem = filepath.Join(appDataDir, CliConfigFileName)
		}
	} else {
		configFilePathSystem = SystemDirConfigFilePath
	}
	if len(configFilePathSystem) > 0 {
		if _, err := processConfigFile(filepath.Join(configFilePathSystem, CliConfigFileName), v); err != nil {
			return cfg, err
		}
	}

	// 2. Home directory.
	homeDir, err := homedir.Dir()
	if err != nil {
		return cfg, errUtils.Build(errUtils.ErrFailedToInitConfig).WithCause(err).Err()
	}
	homeConfigFile := filepath.Join(homeDir, "."+CliConfigFileName, CliConfigFileName)
	if _, err = processConfigFile(homeConfigFile, v); err != nil {
		return cfg, err
	}

	// 3. Current directory.
	cwd, err := os.Getwd()
	if err != nil {
		return cfg, errUtils.Build(errUtils.ErrFailedToInitConfig).WithCause(err).Err()
	}
	if _, err = processConfigFile(filepath.Join(cwd, CliConfigFileName), v); err != nil {
		return cfg, err
	}

	// 4. ENV-provided directory. When the ENV var is set, the config must be there.
	if envDir := os.Getenv(EnvCliConfigPath); envDir != "" {
		found, err := processConfigFile(filepath.Join(envDir, CliConfigFileName), v)
		if err != nil {
			return cfg, err
		}
		if !found {
			return cfg, errUtils.Build(errUtils.ErrFailedToInitConfig).
				WithCause(fmt.Errorf("%w: config not found in %s: %s", errUtils.ErrNotFound, EnvCliConfigPath, envDir)).
				Err()
		}
	}

	// 5. Explicit --config path.
	if configPath != "" {
		found, err := processConfigFile(configPath, v)
		if err != nil {
			return cfg, err
		}
		if !found {
			return cfg, errUtils.Build(errUtils.ErrFailedToInitConfig).
				WithCause(fmt.Errorf("%w: config file not found: %s", errUtils.ErrNotFound, configPath)).
				Err()
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, errUtils.Build(errUtils.ErrFailedToInitConfig).WithCause(err).Err()
	}

	applyEngineDefaults(&cfg)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.type", "local")
	v.SetDefault("logs.file", "/dev/stderr")
	v.SetDefault("logs.level", "Info")
	v.SetDefault("templates.engine", templater.EngineGoTemplate)
	v.SetDefault("templates.skip_empty", true)
	v.SetDefault("templates.sprig.enabled", true)
	v.SetDefault("templates.gomplate.enabled", true)
	v.SetDefault("settings.list_merge_strategy", "replace")
}

// applyEngineDefaults completes the settings whose defaults depend on other settings.
func applyEngineDefaults(cfg *schema.TerraforgeConfiguration) {
	if cfg.Templates.Marker == "" {
		if cfg.Templates.Engine == templater.EnginePongo2 {
			cfg.Templates.Marker = DefaultPongo2Marker
		} else {
			cfg.Templates.Marker = DefaultGoTemplateMarker
		}
	}
}

// processConfigFile merges one config file into the accumulated viper state.
// `path` may omit the extension; `.yaml` and `.yml` are tried in that order.
func processConfigFile(path string, v *viper.Viper) (bool, error) {
	configPath, fileExists := searchConfigFile(path)
	if !fileExists {
		return false, nil
	}

	reader, err := os.Open(configPath)
	if err != nil {
		return false, errUtils.Build(errUtils.ErrIO).WithCause(err).WithContext("file", configPath).Err()
	}
	defer reader.Close()

	if err = v.MergeConfig(reader); err != nil {
		return false, errUtils.Build(errUtils.ErrParse).WithCause(err).WithContext("file", configPath).Err()
	}

	return true, nil
}

func searchConfigFile(path string) (string, bool) {
	if filepath.Ext(path) != "" {
		return path, u.FileExists(path)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		candidate := path + ext
		if u.FileExists(candidate) {
			return candidate, true
		}
	}

	return "", false
}
