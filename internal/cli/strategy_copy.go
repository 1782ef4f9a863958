//go:build !expand

package cli

import (
	"github.com/tacogips/genstep/internal/config"
	"github.com/tacogips/genstep/internal/materialize"
)

// newMaterializer returns the direct-copy strategy. This build has no
// expansion facility linked in.
func newMaterializer(cfg *config.Config) (materialize.Materializer, error) {
	return materialize.NewCopyMaterializer(), nil
}

// applySets is a no-op: there is nothing to expand in a copy build.
func applySets(cfg *config.Config, sets []string) error {
	return nil
}
