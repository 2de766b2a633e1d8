package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamberd-lang/dreamberd/internal/diagnostic"
	"github.com/dreamberd-lang/dreamberd/internal/parser"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a DreamBerd file or expression and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline source instead of reading from a file")
}

func parseScript(_ *cobra.Command, args []string) error {
	var input, filename string
	if parseEvalExpr != "" {
		input, filename = parseEvalExpr, "<eval>"
	} else if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		input, filename = string(data), args[0]
	} else {
		return fmt.Errorf("provide a file path or use -e for inline source")
	}

	program, errs := parser.ParseProgram(input)
	if len(errs) > 0 {
		for _, e := range errs {
			stderr := os.Stderr
			diagnostic.Print(stderr, e, input, filename)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}
	fmt.Println(program.String())
	return nil
}
