package directive

import (
	"context"
	"os"

	"github.com/tacogips/genstep/internal/fsutil"
	"github.com/tacogips/genstep/internal/materialize"
)

// FileExpander expands a template file into a destination file.
type FileExpander struct {
	Engine *Engine
	Vars   Vars
}

// NewFileExpander creates a FileExpander.
func NewFileExpander(engine *Engine, vars Vars) *FileExpander {
	if vars == nil {
		vars = Vars{}
	}
	return &FileExpander{Engine: engine, Vars: vars}
}

// Expand reads source, expands it, and replaces destination with the
// result. Nothing is written when reading or expansion fails. Read and
// write failures are reported as materialize IOFailure errors.
func (f *FileExpander) Expand(ctx context.Context, source, destination string) error {
	content, err := os.ReadFile(source)
	if err != nil {
		return &materialize.Error{Kind: materialize.IOFailure, Op: "read source", Path: source, Cause: err}
	}

	out, err := f.Engine.ExpandFile(ctx, source, content, f.Vars)
	if err != nil {
		return err
	}

	if err := fsutil.ReplaceFile(destination, out, 0644); err != nil {
		return &materialize.Error{Kind: materialize.IOFailure, Op: "write destination", Path: destination, Cause: err}
	}
	return nil
}
