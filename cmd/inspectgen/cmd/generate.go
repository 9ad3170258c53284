package cmd

import (
	"fmt"
	"os"

	"github.com/inspectgen/inspectgen/internal/orchestrator"
	"github.com/inspectgen/inspectgen/internal/template/eval"
	"github.com/spf13/cobra"
)

var (
	outputDir   string
	debugMode   bool
	showUsage   bool
	tabSize     int
	useTabsFlag bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <input.ins>",
	Short: "Generate a .gen.h/.gen.cpp pair from an inspect source",
	Long: `Parses <input.ins> and evaluates the built-in header and source
templates against it, writing the two generated files under -O's directory.

  inspectgen generate <input.ins> -O <output-dir> [-D]

Switches: -O <dir> is required exactly once (existing directory), unless
-D is given, in which case built-in debug paths are used instead of -O and
the input file and the two are mutually exclusive. -? prints usage and
exits 0.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

// usageError reports a CLI-contract violation (§7's "usage errors": no
// input, missing -O, bad directory, unknown switch, conflicting switches)
// and prints the command's usage alongside it, per §6.1's "invalid input
// prints an error and the usage". Lex/parse/evaluation failures reported
// via exitWithError alone do not get a usage dump -- those aren't malformed
// invocations, just a malformed or failing .ins/template pair.
func usageError(cmd *cobra.Command, msg string, args ...any) error {
	err := exitWithError(msg, args...)
	cmd.Usage()
	return err
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputDir, "output-dir", "O", "", "output directory (required unless -D)")
	generateCmd.Flags().BoolVarP(&debugMode, "debug", "D", false, "use built-in debug paths instead of -O/input")
	generateCmd.Flags().BoolVarP(&showUsage, "usage", "?", false, "print usage and exit")
	generateCmd.Flags().IntVar(&tabSize, "tab-size", 4, "indentation width in columns")
	generateCmd.Flags().BoolVar(&useTabsFlag, "use-tabs", true, "indent with tabs instead of spaces")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if showUsage {
		fmt.Fprint(os.Stdout, cmd.UsageString())
		os.Exit(0)
	}

	if len(args) > 1 {
		return usageError(cmd, "multiple input files given: %v", args)
	}

	opts := eval.Options{TabSize: tabSize, UseSpaces: !useTabsFlag}

	if debugMode {
		if outputDir != "" || len(args) == 1 {
			return usageError(cmd, "-D is mutually exclusive with -O and an input file")
		}
		outPath, err := debugOutputPath()
		if err != nil {
			return exitWithError("%v", err)
		}
		result, err := orchestrator.RunDebug(outPath, opts)
		if err != nil {
			return exitWithError("%v", err)
		}
		return reportResults(cmd, []orchestrator.FileResult{result})
	}

	if outputDir == "" {
		return usageError(cmd, "-O <output-dir> is required")
	}
	if len(args) != 1 {
		return usageError(cmd, "an input .ins file is required")
	}
	info, err := os.Stat(outputDir)
	if err != nil || !info.IsDir() {
		return usageError(cmd, "-O %q is not an existing directory", outputDir)
	}

	results, err := orchestrator.Run(args[0], outputDir, opts)
	if err != nil {
		return exitWithError("%v", err)
	}
	return reportResults(cmd, results)
}

// reportResults prints one success/failure line per generated file to
// standard output -- the path on success, "path -- FAILED: <error>" on
// failure --
// and returns an error if any file failed, so Execute's caller exits 1.
func reportResults(cmd *cobra.Command, results []orchestrator.FileResult) error {
	failed := false
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(out, "%s -- FAILED: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s\n", r.Path)
	}
	if failed {
		return fmt.Errorf("one or more output files failed to generate")
	}
	return nil
}

func debugOutputPath() (string, error) {
	dir, err := os.MkdirTemp("", "inspectgen-debug-out-*")
	if err != nil {
		return "", err
	}
	return dir + string(os.PathSeparator) + "debug.out", nil
}
