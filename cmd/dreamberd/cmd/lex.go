package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamberd-lang/dreamberd/internal/lexer"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a DreamBerd file or expression",
	Long: `Tokenize a DreamBerd program and print the resulting token stream,
one token per line. Useful for debugging the whitespace-weighted
precedence rules and the number-word/terminator-run lexing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
}

func lexScript(_ *cobra.Command, args []string) error {
	var input string
	if lexEvalExpr != "" {
		input = lexEvalExpr
	} else if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		input = string(data)
	} else {
		return fmt.Errorf("provide a file path or use -e for inline source")
	}

	l := lexer.New(input)
	for {
		tok := l.NextToken()
		fmt.Printf("%-12s %-10q offset=%d\n", tok.Type, tok.Lexeme, tok.Offset)
		if tok.Type == lexer.EOF {
			break
		}
	}
	for _, e := range l.Errors() {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	return nil
}
