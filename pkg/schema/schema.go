package schema

// TerraforgeConfiguration represents the schema for the `terraforge.yaml`
// CLI config. Values merge from config files, environment and flags; the
// zero value is completed by the defaults in pkg/config.
type TerraforgeConfiguration struct {
	Source    Source    `yaml:"source,omitempty" json:"source,omitempty" mapstructure:"source"`
	InputDir  string    `yaml:"input_dir" json:"input_dir" mapstructure:"input_dir"`
	OutputDir string    `yaml:"output_dir" json:"output_dir" mapstructure:"output_dir"`
	DataFiles []string  `yaml:"data_files,omitempty" json:"data_files,omitempty" mapstructure:"data_files"`
	Schema    string    `yaml:"schema,omitempty" json:"schema,omitempty" mapstructure:"schema"`
	Templates Templates `yaml:"templates,omitempty" json:"templates,omitempty" mapstructure:"templates"`
	Settings  Settings  `yaml:"settings,omitempty" json:"settings,omitempty" mapstructure:"settings"`
	Logs      Logs      `yaml:"logs,omitempty" json:"logs,omitempty" mapstructure:"logs"`
}

// Source describes where the input directory tree comes from.
type Source struct {
	// Type is one of `local` (default), `git` or `remote`.
	Type string `yaml:"type" json:"type" mapstructure:"type"`
	// Url is the repository URL (git) or go-getter source (remote).
	Url string `yaml:"url,omitempty" json:"url,omitempty" mapstructure:"url"`
	// Branch checks out a specific branch for git sources.
	Branch string `yaml:"branch,omitempty" json:"branch,omitempty" mapstructure:"branch"`
	// Token authenticates https git clones (personal access token).
	Token string `yaml:"token,omitempty" json:"token,omitempty" mapstructure:"token"`
	// SshKeyPath authenticates ssh git clones.
	SshKeyPath string `yaml:"ssh_key_path,omitempty" json:"ssh_key_path,omitempty" mapstructure:"ssh_key_path"`
	// SshKeyPassword decrypts the SSH key when it is passphrase-protected.
	SshKeyPassword string `yaml:"ssh_key_password,omitempty" json:"ssh_key_password,omitempty" mapstructure:"ssh_key_password"`
}

// Templates configures template discovery and rendering.
type Templates struct {
	// Engine selects the template language: `gotemplate` (default) or `pongo2`.
	Engine string `yaml:"engine" json:"engine" mapstructure:"engine"`
	// Marker is the filename suffix identifying templates (default `.tmpl`;
	// `.j2` when the pongo2 engine is selected and no marker is set).
	Marker string `yaml:"marker" json:"marker" mapstructure:"marker"`
	// OutputSuffix is appended to every derived output path after the marker
	// is stripped (e.g. `.tf`).
	OutputSuffix string `yaml:"output_suffix,omitempty" json:"output_suffix,omitempty" mapstructure:"output_suffix"`
	// SkipEmpty skips writing files whose rendered content is whitespace-only.
	SkipEmpty   bool              `yaml:"skip_empty" json:"skip_empty" mapstructure:"skip_empty"`
	Delimiters  []string          `yaml:"delimiters,omitempty" json:"delimiters,omitempty" mapstructure:"delimiters"`
	Sprig       Sprig             `yaml:"sprig" json:"sprig" mapstructure:"sprig"`
	Gomplate    Gomplate          `yaml:"gomplate" json:"gomplate" mapstructure:"gomplate"`
	Env         map[string]string `yaml:"env,omitempty" json:"env,omitempty" mapstructure:"env"`
}

// Sprig toggles the Sprig function map for the gotemplate engine.
type Sprig struct {
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
}

// Gomplate toggles the Gomplate function map and configures its datasources.
type Gomplate struct {
	Enabled     bool                  `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Timeout     int                   `yaml:"timeout,omitempty" json:"timeout,omitempty" mapstructure:"timeout"`
	Datasources map[string]Datasource `yaml:"datasources,omitempty" json:"datasources,omitempty" mapstructure:"datasources"`
}

// Datasource is a named gomplate datasource.
type Datasource struct {
	Url     string              `yaml:"url" json:"url" mapstructure:"url"`
	Headers map[string][]string `yaml:"headers,omitempty" json:"headers,omitempty" mapstructure:"headers"`
}

// Settings holds cross-cutting pipeline settings.
type Settings struct {
	// ListMergeStrategy controls sequence handling during deep merge:
	// `replace` (default), `append` or `merge`.
	ListMergeStrategy string `yaml:"list_merge_strategy" json:"list_merge_strategy" mapstructure:"list_merge_strategy"`
}

// Logs configures the log sink and verbosity.
type Logs struct {
	// File is the log destination: /dev/stderr (default), /dev/stdout,
	// /dev/null or a file path opened for append.
	File string `yaml:"file,omitempty" json:"file,omitempty" mapstructure:"file"`
	// Level is one of Trace, Debug, Info, Warning, Off.
	Level string `yaml:"level,omitempty" json:"level,omitempty" mapstructure:"level"`
}
