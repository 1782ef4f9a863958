//go:build expand

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tacogips/genstep/internal/config"
)

// validateCmd checks a template without producing output.
var validateCmd = &cobra.Command{
	Use:   "validate [template]",
	Short: "Check template directive syntax",
	Long: `Check the @gen-*@ directives of a template and list the variables it uses.

The template defaults to the configured source. Only the built-in directive
engine can be validated.

Examples:
  genstep validate
  genstep validate gen/lib.go.in`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateConfig string

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, FlagConfig, "c", "", DescConfig)
}

func runValidate(cmd *cobra.Command, args []string) error {
	names, err := validateTemplate(validateConfig, args)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		printWarning("Template references no variables")
	} else {
		printInfo(fmt.Sprintf("Variables: %s", strings.Join(names, ", ")))
	}
	printSuccess("Template is valid")
	return nil
}

// validateTemplate checks syntax and returns the referenced variable names.
func validateTemplate(configPath string, args []string) ([]string, error) {
	loader := config.NewLoader()
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = loader.Load(configPath)
	} else {
		cfg, err = loader.LoadOrDefault(config.Discover("."))
	}
	if err != nil {
		return nil, err
	}

	if err := config.ValidateExpand(cfg); err != nil {
		return nil, err
	}
	if cfg.Expand.Engine != config.EngineDirective {
		return nil, fmt.Errorf("validate supports only the %q engine (configured: %q)", config.EngineDirective, cfg.Expand.Engine)
	}

	source := cfg.Source
	if len(args) == 1 {
		source = args[0]
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	engine := newEngine(cfg)
	if err := engine.Validate(content); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return engine.Variables(content)
}
