package cli

// Common flag names and descriptions
const (
	FlagConfig   = "config"
	FlagSource   = "source"
	FlagOutDir   = "out-dir"
	FlagFileName = "file-name"
	FlagSet      = "set"
	FlagNoColor  = "no-color"
	FlagQuiet    = "quiet"
	FlagDebug    = "debug"

	DescConfig   = "Path to config file (default: genstep.{json,toml,yaml} or the user config)"
	DescSource   = "Template file to materialize"
	DescOutDir   = "Build output directory (default: $OUT_DIR)"
	DescFileName = "Generated file name inside the output directory"
	DescSet      = "Set an expansion variable (KEY=VALUE, repeatable)"
	DescNoColor  = "Disable colored output"
	DescQuiet    = "Suppress non-error output"
	DescDebug    = "Enable debug logging"
)
