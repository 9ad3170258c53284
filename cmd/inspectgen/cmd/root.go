package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "inspectgen",
	Short: "Generate C++ reflection boilerplate from .ins inspect sources",
	Long: `inspectgen reads a struct/field/attribute description written in the
inspect language and evaluates a pair of templates against it to produce a
generated header and source file.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

// exitWithError reports msg to stderr and returns it as an error for RunE
// to propagate, rather than calling os.Exit directly — main translates any
// non-nil Execute error into exit code 1.
func exitWithError(msg string, args ...any) error {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	return fmt.Errorf(msg, args...)
}
