package main

import (
	"github.com/tacogips/genstep/internal/cli"
)

// Version information (set via ldflags during build). Empty version keeps
// the embedded VERSION file.
var (
	version   = ""
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if version != "" {
		cli.Version = version
	}
	cli.GitCommit = gitCommit
	cli.BuildDate = buildDate

	cli.Execute()
}
