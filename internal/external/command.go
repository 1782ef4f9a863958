// Package external runs a third-party program as the expansion facility.
package external

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/tacogips/genstep/internal/debug"
	"github.com/tacogips/genstep/internal/fsutil"
)

// CommandExpander expands a template by running a command line such as
//
//	m4 -P "$SOURCE"
//	mytool --in "$SOURCE" --out "$DESTINATION"
//
// The line is split with POSIX shell rules; $SOURCE and $DESTINATION hold
// the two paths and every other variable comes from the environment.
// Command substitution is not supported.
type CommandExpander struct {
	// Command is the command line to run.
	Command string
	// Stdout makes the command's standard output the destination contents.
	// Otherwise the command must write $DESTINATION itself.
	Stdout bool
	// Dir is the working directory; empty means the current one.
	Dir string
}

// NewCommandExpander creates a CommandExpander.
func NewCommandExpander(command string, stdout bool) *CommandExpander {
	return &CommandExpander{Command: command, Stdout: stdout}
}

// Argv returns the command line split into arguments for the given paths.
func (c *CommandExpander) Argv(source, destination string) ([]string, error) {
	env := func(name string) string {
		switch name {
		case "SOURCE":
			return source
		case "DESTINATION":
			return destination
		}
		return os.Getenv(name)
	}
	argv, err := shell.Fields(c.Command, env)
	if err != nil {
		return nil, fmt.Errorf("invalid expand command %q: %w", c.Command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("expand command is empty")
	}
	return argv, nil
}

// Expand runs the command once. A spawn failure or non-zero exit is
// returned with whatever the command printed; nothing is retried.
func (c *CommandExpander) Expand(ctx context.Context, source, destination string) error {
	argv, err := c.Argv(source, destination)
	if err != nil {
		return err
	}

	debug.Debug("[external] running: %s", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stderr = &stderr
	if c.Stdout {
		cmd.Stdout = &stdout
	} else {
		cmd.Stdout = &stderr
	}

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %w\n%s", argv[0], err, msg)
		}
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}

	if !c.Stdout {
		return nil
	}
	if err := fsutil.ReplaceFile(destination, stdout.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write expanded file: %w", err)
	}
	return nil
}
