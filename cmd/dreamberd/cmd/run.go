package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/dreamberd-lang/dreamberd/internal/diagnostic"
	"github.com/dreamberd-lang/dreamberd/internal/interp"
	"github.com/dreamberd-lang/dreamberd/internal/langerror"
	"github.com/dreamberd-lang/dreamberd/internal/parser"
)

var (
	evalExpr string
	dumpAST  bool
	traceRun bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a DreamBerd program",
	Long: `Execute a DreamBerd program from a file or inline expression.

Examples:
  # Run a script file
  dreamberd run script.db

  # Evaluate inline source
  dreamberd run -e 'var var x = 1! print x!'

  # Run with an execution trace
  dreamberd run --trace script.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed program before running it")
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "print a [DEBUG] line to stdout each time a reverse statement runs")
}

func readSource(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("provide a file path or use -e for inline source")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	program, errs := parser.ParseProgram(source)
	if len(errs) > 0 {
		reportError(errs[0], source, filename)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println(program.String())
	}

	var opts []interp.Option
	if traceRun || cfg.Trace {
		opts = append(opts, interp.WithTrace(true))
	}

	i := interp.New(opts...)
	if runErr := i.Run(program); runErr != nil {
		if le, ok := runErr.(*langerror.Error); ok {
			reportError(le, source, filename)
			return fmt.Errorf("execution failed")
		}
		return runErr
	}
	return nil
}

func reportError(err *langerror.Error, source, filename string) {
	stderr := colorable.NewColorable(os.Stderr)
	diagnostic.Print(stderr, err, source, filename)
}
