//go:build !expand

package cli

import (
	"path/filepath"
	"testing"

	"github.com/tacogips/genstep/internal/config"
	"github.com/tacogips/genstep/internal/materialize"
)

func TestNewMaterializer_Copy(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Expand.Engine = config.EngineCommand

	m, err := newMaterializer(cfg)
	if err != nil {
		t.Fatalf("newMaterializer() error: %v", err)
	}
	if _, ok := m.(*materialize.CopyMaterializer); !ok {
		t.Errorf("newMaterializer() = %T, want *materialize.CopyMaterializer", m)
	}
}

func TestCopyBuildHasNoExpandSurface(t *testing.T) {
	if rootCmd.Flags().Lookup(FlagSet) != nil {
		t.Errorf("--%s registered in a copy build", FlagSet)
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == "validate" {
			t.Error("validate command registered in a copy build")
		}
	}
}

func TestResolveConfig_CopyIgnoresExpandSection(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "genstep.json"), `{"expand": {"engine": "m4", "max_include_depth": -1}}`)

	cfg, err := resolveConfig(runOptions{OutDir: "out"})
	if err != nil {
		t.Fatalf("resolveConfig() error: %v", err)
	}
	if _, err := newMaterializer(cfg); err != nil {
		t.Errorf("newMaterializer() error: %v", err)
	}
}
