package fsutil

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/tacogips/genstep/internal/debug"
)

// ReplaceFile writes data to filename, truncating any existing file.
// Windows has no atomic rename-over, so a failed write may leave a partial file.
func ReplaceFile(filename string, data []byte, perm os.FileMode) error {
	debug.Debug("[fsutil] ReplaceFile: %s (size: %d bytes, mode: %o)", filename, len(data), perm)
	return errors.WithStack(os.WriteFile(filename, data, perm))
}
