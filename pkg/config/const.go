package config

const (
	// CliConfigFileName is the config file basename, without extension.
	CliConfigFileName = "terraforge"

	// SystemDirConfigFilePath is the system-wide config location on unix.
	SystemDirConfigFilePath = "/usr/local/etc/terraforge"

	// WindowsAppDataEnvVar points at the system-wide config location on Windows.
	WindowsAppDataEnvVar = "LOCALAPPDATA"

	// EnvCliConfigPath names a directory to search for the config file,
	// merged on top of the standard locations.
	EnvCliConfigPath = "TERRAFORGE_CLI_CONFIG_PATH"

	// DefaultGoTemplateMarker is the template filename suffix when the Go
	// template engine is selected and no marker is configured.
	DefaultGoTemplateMarker = ".tmpl"

	// DefaultPongo2Marker is the template filename suffix when the pongo2
	// engine is selected and no marker is configured.
	DefaultPongo2Marker = ".j2"
)
