package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rcrsr/rill/internal/ast"
	"github.com/rcrsr/rill/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Rill source and display its AST",
	Long: `Parse Rill source code and display its Abstract Syntax Tree.

If no file is provided, reads from stdin. Use --dump-ast for the full
indented node tree; otherwise just reports the parsed statement count.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string
	switch {
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	doc, err := parser.Parse(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		fmt.Println("Document:")
		for _, stmt := range doc.Statements {
			dumpASTNode(stmt, 1)
		}
		return nil
	}

	fmt.Printf("parsed %d statement(s)\n", len(doc.Statements))
	return nil
}

func dumpASTNode(node any, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Statement:
		fmt.Printf("%sStatement (%d annotation(s))\n", pad, len(n.Annotations))
		dumpASTNode(n.Expr, indent+1)
	case *ast.PipeChain:
		fmt.Printf("%sPipeChain (%d target(s))\n", pad, len(n.Targets))
		fmt.Printf("%sHead:\n", pad)
		dumpASTNode(n.Head, indent+1)
		for _, t := range n.Targets {
			dumpASTNode(t, indent+1)
		}
	case *ast.HostCall:
		fmt.Printf("%sHostCall: %s (%d arg(s))\n", pad, n.Name, len(n.Args))
	case *ast.HostCallTarget:
		fmt.Printf("%sHostCallTarget: %s (%d arg(s))\n", pad, n.Name, len(n.Args))
	case *ast.Variable:
		fmt.Printf("%sVariable: $%s\n", pad, n.Name)
	case *ast.NumberLiteral:
		fmt.Printf("%sNumberLiteral: %g\n", pad, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral (%d part(s))\n", pad, len(n.Parts))
	case *ast.BoolLiteral:
		fmt.Printf("%sBoolLiteral: %v\n", pad, n.Value)
	case *ast.NullLiteral:
		fmt.Printf("%sNullLiteral\n", pad)
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (op %d)\n", pad, n.Op)
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.Closure:
		fmt.Printf("%sClosure (%d param(s))\n", pad, len(n.Params))
	default:
		fmt.Printf("%s%T\n", pad, node)
	}
}
