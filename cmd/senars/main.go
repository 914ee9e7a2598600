// Package main provides the entry point for the senars CLI, a thin
// wrapper around the reasoning kernel (spec §6 "CLI surface"): it is not
// part of the core, only a way to feed Narsese input and observe a run.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/automenta/senars11-sub007/internal/bench"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("senars", flag.ContinueOnError)
	lm := fs.String("lm", "off", "language model bridge selector (only \"off\" is available in this build)")
	cycles := fs.Int("cycles", 0, "number of synchronous reasoning cycles to run after loading input")
	inputPath := fs.String("input", "", "path to a file of Narsese lines to load before running cycles")
	configPath := fs.String("config", "", "path to a JSON or YAML configuration file")
	runBench := fs.Bool("bench", false, "run the NAL scenario suite and report pass/fail")
	benchDB := fs.String("bench-db", "senars_bench.db", "sqlite path recording bench run history")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *lm != "off" {
		fmt.Fprintf(os.Stderr, "senars: --lm=%s is not available in this build (language model bridge is out of scope)\n", *lm)
		return 1
	}

	if *runBench {
		return runBenchSuite(*benchDB)
	}

	comps, err := Initialize(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "senars: %v\n", err)
		return 1
	}

	if *inputPath != "" {
		if code := loadInputFile(comps, *inputPath); code != 0 {
			return code
		}
	}

	if *cycles > 0 {
		result, err := comps.Kernel.RunCycles(*cycles)
		if err != nil {
			fmt.Fprintf(os.Stderr, "senars: %v\n", err)
			return 1
		}
		printStats(result.TotalCycles, result.TotalDerived, result.TotalElapsed)
	}

	return 0
}

func loadInputFile(comps *Components, path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "senars: %v\n", err)
		return 1
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if _, err := comps.Kernel.Input(line); err != nil {
			fmt.Fprintf(os.Stderr, "senars: %s:%d: %v\n", path, lineNo, err)
			return 2
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "senars: %v\n", err)
		return 1
	}
	return 0
}

func printStats(cyclesRun, derived int, elapsed time.Duration) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("ran %s cycles, derived %s tasks, in %s (%s ago)\n",
			humanize.Comma(int64(cyclesRun)), humanize.Comma(int64(derived)), elapsed, humanize.Time(time.Now().Add(-elapsed)))
		return
	}
	fmt.Printf("cycles=%d derived=%d elapsed=%s\n", cyclesRun, derived, elapsed)
}

func runBenchSuite(dbPath string) int {
	results := bench.RunAll()

	passed := 0
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
			passed++
		}
		fmt.Printf("[%s] %-28s %s\n", status, r.ScenarioName, r.Detail)
	}
	fmt.Printf("%s/%s scenarios passed\n", humanize.Comma(int64(passed)), humanize.Comma(int64(len(results))))

	store, err := bench.Open(dbPath)
	if err != nil {
		log.Printf("warning: could not open bench history at %s: %v", dbPath, err)
	} else {
		defer store.Close()
		if err := store.Save(bench.RunRecord{RunID: benchRunID(), Timestamp: time.Now(), Results: results}); err != nil {
			log.Printf("warning: could not save bench run history: %v", err)
		}
	}

	if passed != len(results) {
		return 1
	}
	return 0
}

func benchRunID() string {
	return "bench-" + time.Now().UTC().Format("20060102T150405Z")
}
