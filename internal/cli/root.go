// Package cli implements the genstep command line.
//
// Files with the expand build tag hold the expansion build's surface, so
// both builds need testing:
//
//	go test ./...
//	go test -tags expand ./...
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/genstep/internal/build"
	"github.com/tacogips/genstep/internal/debug"
)

// Version information, overridden by main from ldflags.
var (
	Version   = build.Version()
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd materializes the generated file; it is what go:generate runs.
var rootCmd = &cobra.Command{
	Use:   "genstep",
	Short: "Prepare a generated source file for compilation",
	Long: `genstep produces one generated source file from a template as a build step.

The template is read from the source path and written to <out-dir>/<file-name>,
where out-dir comes from $OUT_DIR or --out-dir. A default build copies the
template verbatim. A build with -tags expand runs the template through the
expansion facility instead (built-in @gen-*@ directives or an external command).

Any failure aborts the step with exit status 1.

Examples:
  OUT_DIR=./internal/generated genstep
  genstep --source gen/lib.go.in --out-dir ./internal/generated --file-name lib.go
  //go:generate go run github.com/tacogips/genstep/cmd/genstep -o . -f zz_lib.go`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
	RunE: runMaterialize,
}

// Execute runs the root command and exits with status 1 on any error.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	rootCmd.Flags().StringVarP(&runOpts.ConfigPath, FlagConfig, "c", "", DescConfig)
	rootCmd.Flags().StringVarP(&runOpts.Source, FlagSource, "s", "", DescSource)
	rootCmd.Flags().StringVarP(&runOpts.OutDir, FlagOutDir, "o", "", DescOutDir)
	rootCmd.Flags().StringVarP(&runOpts.FileName, FlagFileName, "f", "", DescFileName)

	rootCmd.AddCommand(versionCmd)
}

// printError prints an error to stderr. Errors are shown even with --quiet.
func printError(err error) {
	printErrorMsg(fmt.Sprintf("Error: %v", err))
}
