package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/takedsl/take"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "take",
	Short:   "Extract structured data from HTML with take templates",
	Version: version,
	Long: `take runs declarative extraction templates against HTML documents.
A template names what to select and where to save it; running one
produces nested JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// describeCompileError prefixes a compile fault with the template file
// and the fault position.
func describeCompileError(path string, err error) error {
	var cerr take.CompileError
	if !errors.As(err, &cerr) {
		return err
	}
	line, col := cerr.Position()
	if col > 0 {
		return fmt.Errorf("%s:%d:%d: %w", path, line, col, err)
	}
	return fmt.Errorf("%s:%d: %w", path, line, err)
}
