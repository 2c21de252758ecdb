// Command facet evaluates a mesh script and writes the resulting objects
// as JSON render snapshots.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/logging"
)

func main() {
	var (
		output  = flag.String("output", "", "JSON output file (default stdout)")
		timeout = flag.Duration("timeout", engine.EvalTimeout, "evaluation time limit")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: facet [flags] script\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read script: %v", err)
	}

	app := NewApp(engine.WithTimeout(*timeout), engine.WithLogger(logging.Logger()))
	result := app.Evaluate(string(source))
	for _, w := range result.Warnings {
		log.Printf("warning: object %s: %s", w.Object, w.Message)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			log.Printf("error (line %d): %s", e.Line, e.Message)
		}
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Fatalf("Failed to write JSON: %v", err)
	}
}
