package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/genstep/internal/build"
	"github.com/tacogips/genstep/internal/config"
	"github.com/tacogips/genstep/internal/debug"
	"github.com/tacogips/genstep/internal/materialize"
)

// runOptions are the root command's flags.
type runOptions struct {
	ConfigPath string
	Source     string
	OutDir     string
	FileName   string
	Sets       []string
}

var runOpts runOptions

func runMaterialize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(runOpts)
	if err != nil {
		return err
	}

	m, err := newMaterializer(cfg)
	if err != nil {
		return err
	}

	step, err := materializeStep(cmd.Context(), cfg, m)
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Generated %s from %s (%s)", step.Destination, step.Source, build.Strategy))
	return nil
}

// resolveConfig builds the effective configuration. Precedence, lowest
// first: defaults, config file, $OUT_DIR, flags.
func resolveConfig(opts runOptions) (*config.Config, error) {
	loader := config.NewLoader()

	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = loader.Load(opts.ConfigPath)
	} else {
		cfg, err = loader.LoadOrDefault(config.Discover("."))
	}
	if err != nil {
		return nil, err
	}

	config.ApplyEnv(cfg)

	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.OutDir != "" {
		cfg.OutDir = opts.OutDir
	}
	if opts.FileName != "" {
		cfg.FileName = opts.FileName
	}
	if err := applySets(cfg, opts.Sets); err != nil {
		return nil, err
	}

	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}

	debug.Debug("[cli] config: source=%s out_dir=%s file_name=%s engine=%s",
		cfg.Source, cfg.OutDir, cfg.FileName, cfg.Expand.Engine)
	return cfg, nil
}

// materializeStep runs one step from cfg.Source to <cfg.OutDir>/<cfg.FileName>.
func materializeStep(ctx context.Context, cfg *config.Config, m materialize.Materializer) (*materialize.Step, error) {
	step := materialize.NewStep(m, cfg.Source, materialize.Destination(cfg.OutDir, cfg.FileName))
	if err := step.Run(ctx); err != nil {
		return step, err
	}
	return step, nil
}
