package config

// Config is the genstep configuration for one materialization.
type Config struct {
	// Source is the template path, relative to the working directory.
	Source string `json:"source" toml:"source" yaml:"source"`
	// FileName is the generated file's name inside OutDir.
	FileName string `json:"file_name" toml:"file_name" yaml:"file_name"`
	// OutDir is the build output directory. Usually left empty in files and
	// supplied through OUT_DIR or --out-dir.
	OutDir string `json:"out_dir,omitempty" toml:"out_dir,omitempty" yaml:"out_dir,omitempty"`
	// Expand configures the expansion facility. Only read and validated by
	// binaries built with the expand tag.
	Expand ExpandConfig `json:"expand" toml:"expand" yaml:"expand"`
}

// ExpandConfig selects and configures the expansion facility.
type ExpandConfig struct {
	// Engine is "directive" (built-in @gen-*@ directives) or "command".
	Engine string `json:"engine" toml:"engine" yaml:"engine"`
	// Command is the command line run by the command engine.
	Command string `json:"command,omitempty" toml:"command,omitempty" yaml:"command,omitempty"`
	// Stdout makes the command's standard output the generated file.
	Stdout bool `json:"stdout,omitempty" toml:"stdout,omitempty" yaml:"stdout,omitempty"`
	// TemplateRoot bounds @gen-include: paths; empty means the source's directory.
	TemplateRoot string `json:"template_root,omitempty" toml:"template_root,omitempty" yaml:"template_root,omitempty"`
	// MaxIncludeDepth is the maximum nested include depth.
	MaxIncludeDepth int `json:"max_include_depth" toml:"max_include_depth" yaml:"max_include_depth"`
	// Variables are the values available to the directive engine.
	Variables map[string]interface{} `json:"variables,omitempty" toml:"variables,omitempty" yaml:"variables,omitempty"`
}
