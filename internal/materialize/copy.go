package materialize

import (
	"context"
	"errors"
	"os"
	"unicode/utf8"

	"github.com/tacogips/genstep/internal/debug"
	"github.com/tacogips/genstep/internal/fsutil"
)

// errNotText is the cause reported when the source is not valid UTF-8.
var errNotText = errors.New("source is not valid UTF-8 text")

// CopyMaterializer copies the source to the destination unchanged.
type CopyMaterializer struct {
	mode os.FileMode
}

// NewCopyMaterializer creates a CopyMaterializer writing files with mode 0644.
func NewCopyMaterializer() *CopyMaterializer {
	return &CopyMaterializer{mode: 0644}
}

// Materialize reads the whole source, checks that it is text, and replaces
// the destination with it. The source is fully read before the destination
// is touched, so a bad source never creates or modifies the destination.
func (m *CopyMaterializer) Materialize(ctx context.Context, source, destination string) error {
	debug.Debug("[materialize] copy: %s -> %s", source, destination)

	contents, err := os.ReadFile(source)
	if err != nil {
		return newError(IOFailure, "read source", source, err)
	}
	if !utf8.Valid(contents) {
		return newError(IOFailure, "read source", source, errNotText)
	}

	if err := fsutil.ReplaceFile(destination, contents, m.mode); err != nil {
		return newError(IOFailure, "write destination", destination, err)
	}

	debug.Debug("[materialize] copy complete: %d bytes", len(contents))
	return nil
}
