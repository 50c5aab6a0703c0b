// Copyright 2025 The StemServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the stemserve batch analyser, msgpack server and CLI.

stemserve takes inflection tables, one paradigm per row, and finds the
material shared by every word form of a paradigm. Each row is scored
under a minimum description length cost model, and candidate stems are
extracted three ways: as contiguous substrings, as multisets of letters
and as ordered subsequences.

# Usage

Analyse a table and print a report for every paradigm:

	stemserve verbs.csv

Read tab separated input with a header row and debug logging:

	stemserve -delim tab -header -d verbs.txt

Run the interactive CLI:

	stemserve -c

Serve msgpack requests on stdin/stdout, with a table preloaded into the
stem index:

	stemserve -s verbs.csv

# Input

A row is the leaf label followed by one word form per column:

	run,run,ran,running
	go,go,went,going

All rows must have the same number of columns. The format follows the
file extension: .csv is comma separated, .tsv is tab separated and .txt
uses the configured delimiter.

# Configuration

Runtime configuration lives in a TOML file that is created with defaults
if it doesn't exist:

	[cost]
	stem_used = 4
	stem_not_used = 3
	affix_used = 1
	affix_not_used = 2
	extra = 10
	lambda_bits = 5

	[engine]
	workers = 0
	normalize = true
	cache_size = 1024

	[table]
	delimiter = ","
	skip_header = false

	[server]
	max_rows = 512
	max_columns = 64
	max_word_len = 48
	max_shortest_len = 16

workers = 0 uses one worker per CPU and cache_size = 0 disables the row
cache. Flags override the file.

# Command Line Flags

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-c  Run the interactive CLI
	-s  Run the msgpack server
	-config string
	    Path to a custom config file
	-workers int
	    Rows analysed in parallel (0 for one per CPU)
	-delim string
	    Delimiter for .txt tables ("tab" for tabs)
	-header
	    Skip the first line of the table
	-no-filter
	    Analyse CLI rows containing digits or symbols
	-summary
	    Print only the batch summary
	-rebuild-config
	    Overwrite the default config file with defaults
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/stemserve/internal/cli"
	"github.com/bastiangx/stemserve/internal/logger"
	"github.com/bastiangx/stemserve/internal/utils"
	"github.com/bastiangx/stemserve/pkg/analysis"
	"github.com/bastiangx/stemserve/pkg/config"
	"github.com/bastiangx/stemserve/pkg/index"
	"github.com/bastiangx/stemserve/pkg/render"
	"github.com/bastiangx/stemserve/pkg/server"
	"github.com/bastiangx/stemserve/pkg/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "stemserve"
	gh      = "https://github.com/bastiangx/stemserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, analyzer and the selected front end together.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive CLI")
	serverMode := flag.Bool("s", false, "Run the msgpack server on stdin/stdout")
	configPath := flag.String("config", "", "Path to a custom config file")
	workers := flag.Int("workers", -1, "Rows analysed in parallel (0 for one per CPU, default from config)")
	delim := flag.String("delim", "", "Delimiter for .txt tables (default from config)")
	header := flag.Bool("header", false, "Skip the first line of the table")
	noFilter := flag.Bool("no-filter", false, "Analyse CLI rows containing digits or symbols")
	summaryOnly := flag.Bool("summary", false, "Print only the batch summary")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.SetDebug(*debugMode)

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		path, _ := config.GetDefaultConfigPath()
		log.Printf("Rebuilt config at %s", path)
		os.Exit(0)
	}

	cfg, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedPath))

	if *workers >= 0 {
		cfg.Engine.Workers = *workers
	}
	if *delim != "" {
		cfg.Table.Delimiter = *delim
	}
	if *header {
		cfg.Table.SkipHeader = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	analyzer := analysis.New(cfg.AnalysisOptions())
	log.Debug("Analyzer ready", "workers", analyzer.Workers(), "normalize", cfg.Engine.Normalize)

	var tablePath string
	if flag.NArg() > 0 {
		tablePath = resolveTable(flag.Arg(0))
	}

	switch {
	case *cliMode:
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(analyzer, cfg.TableOptions(), *noFilter, os.Stdin, os.Stdout)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	case *serverMode || tablePath == "":
		ix := index.New()
		if tablePath != "" {
			results, err := analyzeTable(analyzer, tablePath, cfg.TableOptions())
			if err != nil {
				log.Fatalf("Failed to preload %s: %v", tablePath, err)
			}
			ix.AddAll(results)
			log.Debugf("Preloaded %d paradigms, %d stems", len(results), ix.Len())
		}
		log.Debug("spawning IPC")
		srv := server.NewServer(analyzer, ix, cfg, os.Stdin, os.Stdout)
		showStartupInfo(tablePath, ix.Len())
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	default:
		results, err := analyzeTable(analyzer, tablePath, cfg.TableOptions())
		if err != nil {
			log.Fatalf("Analysis failed: %v", err)
		}
		r := render.New(os.Stdout)
		if !*summaryOnly {
			for _, res := range results {
				fmt.Println(r.Report(res))
			}
		}
		fmt.Println(r.Summary(analysis.Summarize(results)))
	}
}

// resolveTable finds the table relative to the working, executable and
// config dirs.
func resolveTable(name string) string {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Warnf("Path resolver unavailable: %v", err)
		return name
	}
	path, err := resolver.ResolveTablePath(name)
	if err != nil {
		log.Fatalf("Table not found: %s", name)
	}
	log.Debugf("Using table at: %s", path)
	return path
}

func analyzeTable(analyzer *analysis.Analyzer, path string, opts table.Options) ([]analysis.Result, error) {
	t, err := table.Load(path, opts)
	if err != nil {
		return nil, err
	}
	return analyzer.Analyze(t.Rows)
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ StemServe ] Finds the stems shared by inflection tables")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the server on stderr.
func showStartupInfo(tablePath string, stems int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " StemServe ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	if tablePath != "" {
		log.Infof("table: ( %s ), %s stems indexed", tablePath, utils.FormatWithCommas(stems))
	}
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
