// Package main provides the entry point for the cc compiler: a single
// command that runs one source file through binding, typing, lowering and
// optimization and prints the resulting IR.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fsnotify/fsnotify"

	"github.com/cclang/cc/internal/ast"
	"github.com/cclang/cc/internal/cli"
	"github.com/cclang/cc/internal/codegen"
	"github.com/cclang/cc/internal/diag"
	"github.com/cclang/cc/internal/optimizer"
	"github.com/cclang/cc/internal/parser"
	"github.com/cclang/cc/internal/resolver"
	"github.com/cclang/cc/internal/typechecker"
)

// LanguageVersion is the language revision this binary accepts; a source
// file's "// lang: <constraint>" pragma is checked against it.
const LanguageVersion = "1.0.0"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		showHelp    = flag.Bool("help", false, "show help information")
		verbose     = flag.Bool("v", false, "verbose: AST dump, per-name types, phase-success messages")
		watch       = flag.Bool("watch", false, "recompile on every write to the input file")
		astOnly     = flag.Bool("ast-only", false, "stop after binding and typing; do not lower or optimize")
		langFlag    = flag.String("lang", "", "override the source's lang pragma with this semver constraint")
	)

	flag.Parse()

	if *showVersion {
		cli.PrintVersion("cc", false)

		return
	}

	if *showHelp {
		showUsage()

		return
	}

	args := flag.Args()
	if len(args) != 1 {
		showUsage()
		os.Exit(1)
	}

	inputFile := args[0]

	opts := compileOptions{verbose: *verbose, astOnly: *astOnly, langOverride: *langFlag}

	if *watch {
		if err := runWatch(inputFile, opts); err != nil {
			log.Fatalf("watch failed: %v", err)
		}

		return
	}

	if err := compileFile(inputFile, opts); err != nil {
		log.Fatalf("compilation failed: %v", err)
	}
}

func showUsage() {
	cli.PrintUsage(cli.Usage{
		Tool:     "cc",
		Summary:  "a small C-subset compiler front-end and mid-end",
		Synopsis: "cc [OPTIONS] <INPUT_FILE>",
		Flags: []cli.FlagInfo{
			{Name: "v", Usage: "verbose: AST dump, per-name types, phase-success messages"},
			{Name: "watch", Usage: "recompile on every write to the input file"},
			{Name: "ast-only", Usage: "stop after binding and typing"},
			{Name: "lang", Usage: "override the source's lang pragma with this semver constraint"},
		},
		Examples: []string{"cc hello.c", "cc -v hello.c", "cc -watch hello.c"},
	})
}

type compileOptions struct {
	verbose      bool
	astOnly      bool
	langOverride string
}

// runWatch recompiles inputFile on every write event until interrupted,
// selecting on the watcher's event and error channels alongside an
// interrupt signal.
func runWatch(inputFile string, opts compileOptions) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(inputFile); err != nil {
		return fmt.Errorf("watch %s: %w", inputFile, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	fmt.Fprintf(os.Stderr, "watching %s, press ctrl-c to stop\n", inputFile)

	if err := compileFile(inputFile, opts); err != nil {
		fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Write == 0 {
				continue
			}

			fmt.Fprintf(os.Stderr, "\n--- recompiling %s ---\n", inputFile)

			if err := compileFile(inputFile, opts); err != nil {
				fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigCh:
			return nil
		}
	}
}

func compileFile(inputFile string, opts compileOptions) error {
	source, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputFile, err)
	}

	if err := checkLangPragma(string(source), opts.langOverride); err != nil {
		return err
	}

	tu, ok, diags := parser.Parse(string(source))
	if !ok {
		return reportAndFail("parse", diags)
	}

	if opts.verbose {
		log.Println("parse: ok")
		tu.Dump(os.Stderr, 0)
	}

	if ok, diags := resolver.Bind(tu); !ok {
		return reportAndFail("binding", diags)
	}

	if opts.verbose {
		log.Println("binding: ok")
	}

	if ok, diags := typechecker.Type(tu); !ok {
		return reportAndFail("typing", diags)
	}

	if opts.verbose {
		log.Println("typing: ok")
		printTypes(tu)
	}

	if opts.astOnly {
		return nil
	}

	moduleName := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))

	m, ok, diags := codegen.Lower(tu, moduleName)
	if !ok {
		return reportAndFail("lowering", diags)
	}

	if opts.verbose {
		log.Println("lowering: ok")
	}

	if ok, diags := optimizer.Optimize(m); !ok {
		return reportAndFail("optimization", diags)
	}

	if opts.verbose {
		log.Println("optimization: ok")
	}

	fmt.Println(m.String())

	return nil
}

// checkLangPragma scans the first line of source for a "// lang:
// <constraint>" pragma, or uses override if non-empty, and rejects the
// compilation unit if the constraint excludes LanguageVersion. Absence of
// a pragma (and no override) accepts any version.
func checkLangPragma(source, override string) error {
	constraint := override

	if constraint == "" {
		firstLine, _, _ := strings.Cut(source, "\n")
		firstLine = strings.TrimSpace(firstLine)

		const prefix = "// lang:"
		if !strings.HasPrefix(firstLine, prefix) {
			return nil
		}

		constraint = strings.TrimSpace(strings.TrimPrefix(firstLine, prefix))
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid lang constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(LanguageVersion)
	if err != nil {
		return fmt.Errorf("invalid internal language version %q: %w", LanguageVersion, err)
	}

	if !c.Check(v) {
		return fmt.Errorf("source requires lang %q, compiler is %s", constraint, LanguageVersion)
	}

	return nil
}

func printTypes(tu *ast.TranslationUnit) {
	for _, d := range tu.Decls {
		switch v := d.(type) {
		case *ast.Declaration:
			log.Printf("  %s: %s", v.Decl.Direct.Name, v.NodeType())
		case *ast.FunctionDefinition:
			log.Printf("  %s: %s", v.Decl.Direct.Name, v.NodeType())
		}
	}
}

func reportAndFail(phase string, diags []diag.Diagnostic) error {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}

	return fmt.Errorf("%s failed with %d error(s)", phase, len(diags))
}
