// Command tjs is the CLI host for the compiler/runtime library (spec §6):
// `tjs compile` emits plain JavaScript, `tjs run` executes a single
// function against a fuel budget, `tjs test` runs a module's signature and
// explicit tests. It wires package config's capability backends in, in
// the teacher's own cmd/demo idiom of a small hand-built main rather than
// a CLI framework (no such framework appears anywhere in the retrieved
// example repos).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tjs-lang/tjs/atomir"
	"github.com/tjs-lang/tjs/config"
	"github.com/tjs-lang/tjs/lexer"
	"github.com/tjs-lang/tjs/parser"
	"github.com/tjs-lang/tjs/tjs"
	"github.com/tjs-lang/tjs/vm"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "compile":
		err = runCompile(os.Args[2:])
	case "run":
		err = runRun(os.Args[2:])
	case "test":
		err = runTest(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tjs <compile|run|test> <file> [flags]")
}

func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	debug := fs.Bool("debug", false, "embed source locations in emitted metadata")
	out := fs.String("out", "", "write emitted JS to this path instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("tjs compile: a source file is required")
	}
	path := fs.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tjs compile: %w", err)
	}

	result, err := tjs.TranspileToJS(string(source), tjs.Options{Filename: path, Debug: *debug, RunTests: "report"})
	if err != nil {
		return reportSyntaxError(err)
	}
	if result.Error != nil {
		return reportSyntaxError(result.Error)
	}
	if result.TestResults != nil && result.TestResults.Failed > 0 {
		for _, c := range result.TestResults.Results {
			if !c.Passed {
				fmt.Fprintf(os.Stderr, "FAIL %s: %s\n", c.Description, c.Error)
			}
		}
	}

	if *out == "" {
		fmt.Println(result.Code)
		return nil
	}
	return os.WriteFile(*out, []byte(result.Code), 0o644)
}

func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fuel := fs.Int64("fuel", 0, "fuel budget override (0 uses the configured default)")
	timeout := fs.Duration("timeout", 30*time.Second, "execution deadline")
	input := fs.String("input", "{}", "JSON object of function arguments")
	configPath := fs.String("config", "tjs.yaml", "path to host configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("tjs run: a source file is required")
	}
	path := fs.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tjs run: %w", err)
	}

	var args0 map[string]any
	if err := json.Unmarshal([]byte(*input), &args0); err != nil {
		return fmt.Errorf("tjs run: --input: %w", err)
	}

	pre, err := lexer.Preprocess(string(source))
	if err != nil {
		return reportSyntaxError(err)
	}
	prog, err := parser.Parse(pre.Source)
	if err != nil {
		return reportSyntaxError(err)
	}
	if len(prog.Functions) != 1 {
		return fmt.Errorf("tjs run: expected exactly one function declaration, found %d", len(prog.Functions))
	}
	node, err := atomir.Lower(prog.Functions[0].Body)
	if err != nil {
		return reportSyntaxError(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("tjs run: %w", err)
	}
	budget := cfg.FuelBudget
	if *fuel > 0 {
		budget = *fuel
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	caps, err := config.BuildCapabilities(ctx, cfg)
	if err != nil {
		return fmt.Errorf("tjs run: %w", err)
	}
	procs, err := config.BuildProcedureStore(cfg)
	if err != nil {
		return fmt.Errorf("tjs run: %w", err)
	}

	rctx := vm.NewRuntimeContext(budget, caps)
	rctx.Procedures = procs

	result, err := vm.Execute(ctx, rctx, node, args0)
	if err != nil {
		return fmt.Errorf("tjs run: %w", err)
	}
	return printJSON(result)
}

func runTest(args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("tjs test: a source file is required")
	}
	path := fs.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tjs test: %w", err)
	}

	result, err := tjs.TranspileToJS(string(source), tjs.Options{Filename: path, RunTests: "report"})
	if err != nil {
		return reportSyntaxError(err)
	}
	if result.Error != nil {
		return reportSyntaxError(result.Error)
	}
	report := result.TestResults
	if report == nil {
		fmt.Println("no tests ran")
		return nil
	}
	for _, c := range report.Results {
		status := "PASS"
		if c.Skipped {
			status = "SKIP"
		} else if !c.Passed {
			status = "FAIL"
		}
		fmt.Printf("%s %s\n", status, c.Description)
		if !c.Passed && !c.Skipped {
			fmt.Printf("  %s\n", c.Error)
		}
	}
	fmt.Printf("%d passed, %d failed\n", report.Passed, report.Failed)
	if report.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// reportSyntaxError prints a *lexer.SyntaxError's caret-annotated snippet
// (spec §6) when available, falling back to err.Error() for anything else.
func reportSyntaxError(err error) error {
	if se, ok := err.(*lexer.SyntaxError); ok {
		fmt.Fprint(os.Stderr, se.Snippet())
		os.Exit(1)
	}
	return err
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
