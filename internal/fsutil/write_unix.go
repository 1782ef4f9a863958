//go:build !windows

// Package fsutil provides the file replacement primitive used by genstep.
package fsutil

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/renameio/v2"

	"github.com/tacogips/genstep/internal/debug"
)

// ReplaceFile writes data to filename, replacing any existing file atomically.
// The parent directory must already exist; it is never created.
// A reader sees either the previous file or the complete new one, and a
// failed write leaves the previous file (if any) untouched.
func ReplaceFile(filename string, data []byte, perm os.FileMode) error {
	debug.Debug("[fsutil] ReplaceFile: %s (size: %d bytes, mode: %o)", filename, len(data), perm)
	return errors.WithStack(renameio.WriteFile(filename, data, perm))
}
