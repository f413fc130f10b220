// vhdl-dump prints what the front-end makes of a VHDL file: its token
// stream or its syntax tree. It is a debugging aid for rule authors.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robert-at-pretension-io/vhdl-style/internal/engine"
	"github.com/robert-at-pretension-io/vhdl-style/internal/vhdl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vhdl-dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tokens := fs.Bool("tokens", false, "print the token stream instead of the tree")
	resolve := fs.Bool("resolve", false, "resolve the units and print what names refer to")
	std := fs.String("std", "", "VHDL standard (87, 93, 93c, 00, 02, 08)")
	if err := fs.Parse(args); err != nil {
		return engine.ExitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: vhdl-dump [-tokens] [-resolve] [-std=STD] FILE")
		return engine.ExitUsage
	}

	fe := vhdl.NewFrontend()
	if *std != "" {
		if err := fe.SetOption("--std=" + *std); err != nil {
			fmt.Fprintln(stderr, err)
			return engine.ExitUsage
		}
	}
	name := fs.Arg(0)
	buf, err := os.ReadFile(name)
	if err != nil {
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return engine.ExitFatal
	}
	src := vhdl.NewSourceFile(name, buf)

	if *tokens {
		if err := dumpTokens(stdout, fe.Tokenize(src, true)); err != nil {
			fmt.Fprintf(stderr, "fatal: %v\n", err)
			return engine.ExitFatal
		}
		return engine.ExitOK
	}

	file, err := fe.Parse(src, vhdl.ParseMode{ExtendedLocations: true})
	if err != nil {
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return engine.ExitFatal
	}
	if !*resolve {
		dumpTree(stdout, file, 0)
		return engine.ExitOK
	}
	for _, du := range fe.Analyze(file) {
		if err := fe.Resolve(du); err != nil {
			fmt.Fprintf(stderr, "fatal: %v\n", err)
			return engine.ExitFatal
		}
		dumpTree(stdout, du, 0)
	}
	return engine.ExitOK
}

func dumpTokens(w io.Writer, sc *vhdl.Scanner) error {
	src := sc.Source()
	for {
		tok := sc.Next()
		if err := sc.Err(); err != nil {
			return err
		}
		if tok.Kind == vhdl.TokEOF {
			return nil
		}
		line, col := src.Position(tok.Span.Start)
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", line, col, tok.Kind, sc.Text(tok))
	}
}

func dumpTree(w io.Writer, n *vhdl.Node, depth int) {
	loc := vhdl.Locate(n)
	fmt.Fprintf(w, "%s%s", strings.Repeat("  ", depth), n.Kind)
	if n.Ident != "" {
		fmt.Fprintf(w, " %s", n.Ident)
	}
	if loc.Line > 0 {
		fmt.Fprintf(w, " @%d:%d", loc.Line, loc.Col)
	}
	if n.Ref != nil {
		fmt.Fprintf(w, " -> %s %s", n.Ref.Kind, n.Ref.Name())
		if l := vhdl.Locate(n.Ref); l.IsValid() {
			fmt.Fprintf(w, " (%s)", l)
		}
	}
	fmt.Fprintln(w)
	for _, c := range n.Children() {
		dumpTree(w, c, depth+1)
	}
}
