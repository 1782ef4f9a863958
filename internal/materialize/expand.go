package materialize

import (
	"context"
	"errors"

	"github.com/tacogips/genstep/internal/debug"
)

// ExpandMaterializer delegates the whole transformation to an Expander.
type ExpandMaterializer struct {
	expander Expander
}

// NewExpandMaterializer creates an ExpandMaterializer over e.
func NewExpandMaterializer(e Expander) *ExpandMaterializer {
	return &ExpandMaterializer{expander: e}
}

// Materialize passes both paths to the expander. Errors are returned as
// ExpansionFailure unless the expander already reported an *Error.
func (m *ExpandMaterializer) Materialize(ctx context.Context, source, destination string) error {
	debug.Debug("[materialize] expand: %s -> %s", source, destination)

	if err := m.expander.Expand(ctx, source, destination); err != nil {
		var merr *Error
		if errors.As(err, &merr) {
			return err
		}
		return newError(ExpansionFailure, "expand", source, err)
	}

	debug.Debug("[materialize] expand complete: %s", destination)
	return nil
}
