//go:build expand

package cli

import (
	"fmt"
	"strings"

	"github.com/tacogips/genstep/internal/config"
	"github.com/tacogips/genstep/internal/directive"
	"github.com/tacogips/genstep/internal/external"
	"github.com/tacogips/genstep/internal/materialize"
)

func init() {
	rootCmd.Flags().StringArrayVar(&runOpts.Sets, FlagSet, nil, DescSet)
	rootCmd.AddCommand(validateCmd)
}

// newMaterializer returns the expansion strategy over the configured engine.
func newMaterializer(cfg *config.Config) (materialize.Materializer, error) {
	if err := config.ValidateExpand(cfg); err != nil {
		return nil, err
	}
	expander, err := newExpander(cfg)
	if err != nil {
		return nil, err
	}
	return materialize.NewExpandMaterializer(expander), nil
}

func newExpander(cfg *config.Config) (materialize.Expander, error) {
	switch cfg.Expand.Engine {
	case config.EngineDirective:
		return directive.NewFileExpander(newEngine(cfg), cfg.Expand.Variables), nil
	case config.EngineCommand:
		return external.NewCommandExpander(cfg.Expand.Command, cfg.Expand.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown expand engine: %s", cfg.Expand.Engine)
	}
}

func newEngine(cfg *config.Config) *directive.Engine {
	return &directive.Engine{
		Root:            cfg.Expand.TemplateRoot,
		MaxIncludeDepth: cfg.Expand.MaxIncludeDepth,
	}
}

// applySets merges --set KEY=VALUE flags into the expansion variables.
func applySets(cfg *config.Config, sets []string) error {
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("invalid --%s %q (expected KEY=VALUE)", FlagSet, set)
		}
		if cfg.Expand.Variables == nil {
			cfg.Expand.Variables = make(map[string]interface{})
		}
		cfg.Expand.Variables[key] = directive.ParseValue(value)
	}
	return nil
}
