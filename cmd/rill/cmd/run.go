package cmd

import (
	"fmt"
	"os"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/value"
	"github.com/rcrsr/rill/pkg/rill"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Rill script or expression",
	Long: `Evaluate a Rill program from a file or an inline expression and print its
final pipe value.

Examples:
  # Run a script file
  rill run script.rill

  # Evaluate an inline expression
  rill run -e "5 -> |x| { $x + 1 }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	engine, err := rill.New(
		rill.WithTimeout(cfg.Timeout()),
		rill.WithAutoExceptionPatterns(cfg.AutoExceptionPatterns),
	)
	if err != nil {
		return fmt.Errorf("constructing engine: %w", err)
	}

	disposers, err := mountExtensions(engine, cfg)
	if err != nil {
		return fmt.Errorf("mounting extensions: %w", err)
	}
	defer func() {
		for _, d := range disposers {
			d.Dispose()
		}
	}()

	if verbose {
		logger.Debug("evaluating", "file", filename, "bytes", len(input))
	}

	result, err := engine.Eval(input)
	if err != nil {
		printRuntimeError(err)
		return fmt.Errorf("execution failed")
	}

	fmt.Println(value.FormatValue(result))
	return nil
}

// readSource resolves the input source for run and lex: inline -e text
// or a named file. With neither, it returns an error; stdin is not read.
func readSource(eval string, args []string) (input, filename string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
	}
}

// printRuntimeError prints err to stderr, including its call stack and
// help URL when it unwraps to a *rillerr.Error.
func printRuntimeError(err error) {
	fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)

	var rerr *rillerr.Error
	if !asRillErr(err, &rerr) {
		return
	}
	if url := rill.HelpURL(rerr.ID); url != "" {
		fmt.Fprintf(os.Stderr, "  see: %s\n", url)
	}
	frames, _ := rill.CallStack(err)
	for _, f := range frames {
		fmt.Fprintf(os.Stderr, "  at %s (line %d, column %d)\n", f.FunctionName, f.Location.Line, f.Location.Column)
	}
}

func asRillErr(err error, target **rillerr.Error) bool {
	for err != nil {
		if r, ok := err.(*rillerr.Error); ok {
			*target = r
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
