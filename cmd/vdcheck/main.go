// Command vdcheck loads and type-checks a program and prints what an
// importer sees of it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gosuda/vdraw"
	"github.com/gosuda/vdraw/ast"
	"github.com/gosuda/vdraw/internal/logger"
	"github.com/gosuda/vdraw/parser"
	"github.com/gosuda/vdraw/typecheck"
)

func main() {
	tree := flag.Bool("tree", false, "print the parse tree")
	globals := flag.Bool("globals", false, "print the types of top-level variables")
	logLevel := flag.String("log", "warn", "log level (debug, info, warn, error, off)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vdcheck [-tree] [-globals] <file.vd>")
		os.Exit(2)
	}
	lvl, err := logger.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(os.Stdout, flag.Arg(0), *tree, *globals, logger.New(os.Stderr, lvl, "vdcheck")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, path string, tree, globals bool, log *logger.Logger) error {
	if tree {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		root, err := parser.ParseProgram(string(src))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(w, root.String())
	}

	prog, err := vdraw.CompileFile(path, vdraw.Options{Log: log})
	if err != nil {
		return err
	}
	writeSignature(w, prog.Signature())
	if globals {
		writeGlobals(w, prog.Types.Globals())
	}
	return nil
}

func writeSignature(w io.Writer, sig typecheck.Signature) {
	if len(sig) == 0 {
		fmt.Fprintln(w, "no declaration fields")
		return
	}
	for _, name := range sig.Names() {
		f := sig[name]
		mark := ""
		if !f.HasDefault {
			mark = " (required)"
		}
		fmt.Fprintf(w, "%s: %s%s\n", name, f.Type, mark)
	}
}

func writeGlobals(w io.Writer, vars map[string]ast.Type) {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "let %s: %s\n", n, vars[n])
	}
}
