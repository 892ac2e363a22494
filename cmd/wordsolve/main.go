// Copyright 2025 The WordSolve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the word solving server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordSolve finds every dictionary word that can be spelled from a handful of
letters, the way a word game board would: type up to seven letters and get
all the words made from any subset of them, grouped by length. It can operate
as a MessagePack IPC server for integration with games and editors, or as a
CLI application for testing and debugging.

Lookups go through a precomputed index that files every word under its
signature, the sorted set of its distinct letters. Solving a query enumerates
the signatures inside the typed letters, fetches their buckets and keeps the
words whose letters are really available.

# Usage

Start the server with default settings:

	wordsolve

Use a custom index and enable debug mode:

	wordsolve -dict /path/to/index.msgpack -d

Run in CLI mode for interactive testing:

	wordsolve -c -min 3

The index is a JSON or msgpack file built by wsgen from a word list.

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	min_letters = 4
	max_letters = 7
	enable_filter = true
	reload_every = 100

	[dict]
	path = "sorted_uniques.json"
	format = ""

The config file is automatically created with defaults if it doesn't exist.
Server mode reloads configuration periodically without restart.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout:

	{"id": "req1", "l": "leapt", "g": true}

	{"id": "req1", "w": ["ale", ...], "g": {3: [...], 4: [...]}, "c": 29, "t": 41}

See package server for the other actions.

# Command Line Flags

	-dict string
	    Index file (default from config)
	-format string
	    Index format: json or msgpack (default: detect from extension)
	-config string
	    Config file to use instead of the default location
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-min int
	    Minimum letters to solve
	-max int
	    Maximum letters accepted
	-no-filter
	    Disable input sanitization for debugging
	-metrics string
	    Serve Prometheus metrics on this address, e.g. localhost:9464
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordsolve/internal/cli"
	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/config"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/metrics"
	"github.com/bastiangx/wordsolve/pkg/server"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordsolve"
	gh      = "https://github.com/bastiangx/wordsolve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Index file to load (json or msgpack)")
	dictFormat := flag.String("format", "", "Index format: "+dictionary.FormatNames()+" (default: detect)")
	configFile := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	minLetters := flag.Int("min", 0, "Minimum letters to solve (default from config)")
	maxLetters := flag.Int("max", 0, "Maximum letters accepted, at most 7 (default from config)")
	noFilter := flag.Bool("no-filter", false, "Disable input sanitization (DBG only) - rejects input with non-letters instead of stripping it")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Only the CLI stays in the foreground; let Ctrl+C end the server.
	if !*cliMode {
		sigHandler(cancel)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	// Initialize path resolver for robust path handling
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Error("Either env is not set or system is not supported")
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	configPath := pathResolver.GetConfigPath(config.FileName)
	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile, configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", configPath)

	// appConfig stays as read from the file so the server can save and
	// reload it; flags only shape the effective config.
	overrides := flagOverrides(*cliMode, appConfig, *minLetters, *maxLetters, *dictPath, *dictFormat, *metricsAddr, *noFilter)
	effective := overrides.Apply(appConfig)

	format, err := dictionary.ParseFormat(effective.Dict.Format)
	if err != nil {
		log.Fatalf("Bad index format: %v", err)
	}
	indexPath := pathResolver.GetIndexPath(effective.Dict.Path)
	log.Debugf("Using index at: %s", indexPath)

	index, err := dictionary.Load(indexPath, format)
	if err != nil {
		log.Error("Did you forget to build the index with wsgen?")
		log.Fatalf("Failed to load index: %v", err)
	}
	metrics.SetIndexSize(index.Len(), index.WordCount())

	if effective.Server.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, effective.Server.MetricsAddr); err != nil {
				log.Errorf("Metrics endpoint stopped: %v", err)
			}
		}()
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minLetters", effective.Server.MinLetters,
			"maxLetters", effective.Server.MaxLetters,
			"noFilter", !effective.Server.EnableFilter)

		s := solver.New(index,
			solver.WithMinLetters(effective.Server.MinLetters),
			solver.WithMaxLetters(effective.Server.MaxLetters),
		)
		inputHandler := cli.NewInputHandler(s, !effective.Server.EnableFilter, effective.CLI.ShowTiming, effective.CLI.HistoryFile)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(index, appConfig, configPath, server.WithOverrides(overrides))

	showStartupInfo(index, configPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// flagOverrides collects the explicitly set flags. The [cli] section's
// default_no_filter only counts in CLI mode.
func flagOverrides(cliMode bool, cfg *config.Config, minLetters, maxLetters int, dictPath, dictFormat, metricsAddr string, noFilter bool) config.Overrides {
	o := config.Overrides{
		MinLetters:  minLetters,
		MaxLetters:  maxLetters,
		DictPath:    dictPath,
		DictFormat:  dictFormat,
		MetricsAddr: metricsAddr,
	}
	if noFilter || (cliMode && cfg.CLI.DefaultNoFilter) {
		off := false
		o.EnableFilter = &off
	}
	return o
}

func printVersion() {
	vlog := logger.Plain("")

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	vlog.SetStyles(styles)

	vlog.Print("")
	vlog.Print("[ WordSolve ] Every word in your letters, instantly!")
	vlog.Print("", "version", Version)
	vlog.Print("")
	vlog.Print("use -h or --help to see available options")
	vlog.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// It goes to stderr; stdout carries the IPC stream.
func showStartupInfo(index *dictionary.Index, configPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " WordSolve ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("config: ( %s )", utils.GetAbsolutePath(configPath))
	log.Infof("index: ( %s )", index.Source())
	log.Infof("words: %s in %s signatures",
		humanize.Comma(int64(index.WordCount())), humanize.Comma(int64(index.Len())))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
