package version

// Version holds the TerraForge version. It is overridden at build time with
// `-ldflags "-X github.com/terraforge/terraforge/pkg/version.Version=..."`.
var Version = "dev"
