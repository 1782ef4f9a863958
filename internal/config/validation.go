package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks that cfg describes a runnable materialization.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Source) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "source", "source template path is required")
	}

	if err := validateFileName(cfg.FileName); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.OutDir) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "out_dir",
			fmt.Sprintf("build output directory is not set (set %s or --out-dir)", OutDirEnv))
	}

	return nil
}

// ValidateExpand checks the expand section. Only binaries built with the
// expand tag call it; a copy build ignores the section entirely.
func ValidateExpand(cfg *Config) error {
	switch cfg.Expand.Engine {
	case EngineDirective:
	case EngineCommand:
		if strings.TrimSpace(cfg.Expand.Command) == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", "expand.command",
				"command is required when expand.engine is \"command\"")
		}
	default:
		return NewConfigErrorWithField(ConfigValidationFailed, "", "expand.engine",
			fmt.Sprintf("unknown engine %q (must be %q or %q)", cfg.Expand.Engine, EngineDirective, EngineCommand))
	}

	if cfg.Expand.MaxIncludeDepth < 1 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "expand.max_include_depth",
			"max include depth must be at least 1")
	}

	return nil
}

// validateFileName requires a bare file name: the destination is always
// directly inside the output directory.
func validateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "file_name", "file name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "file_name",
			fmt.Sprintf("file name must not contain a directory: %s", name))
	}
	return nil
}
