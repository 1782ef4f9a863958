package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Engine names.
const (
	EngineDirective = "directive"
	EngineCommand   = "command"
)

// OutDirEnv names the environment variable holding the build output directory.
const OutDirEnv = "OUT_DIR"

// ProjectFileNames are the config files looked up in the working directory,
// in order.
var ProjectFileNames = []string{
	"genstep.json",
	"genstep.toml",
	"genstep.yaml",
	"genstep.yml",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source:   filepath.Join("gen", "lib.go.in"),
		FileName: "lib.go",
		Expand: ExpandConfig{
			Engine:          EngineDirective,
			MaxIncludeDepth: 10,
		},
	}
}

// DefaultConfigPath returns the per-user configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "genstep", "config.json")
}
