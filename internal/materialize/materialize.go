// Package materialize produces a generated source file from a template.
//
// Two strategies satisfy the same Materializer contract: CopyMaterializer
// copies the template verbatim, ExpandMaterializer hands both paths to an
// Expander. Which one runs is decided once, when the caller constructs it.
package materialize

import (
	"context"
	"path/filepath"
)

// Materializer produces the destination file from the source file.
type Materializer interface {
	// Materialize reads source and creates or replaces destination.
	// Any failure is returned as *Error and must abort the build step.
	Materialize(ctx context.Context, source, destination string) error
}

// Expander is an external macro expansion facility. It reads source,
// transforms it, and writes the result to destination. Its transformation
// rules are its own business.
type Expander interface {
	Expand(ctx context.Context, source, destination string) error
}

// Destination returns the generated file path <outDir>/<fileName>.
func Destination(outDir, fileName string) string {
	return filepath.Join(outDir, fileName)
}
