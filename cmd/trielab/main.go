// Copyright 2025 The trielab Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the trie engine as a MessagePack IPC server or an interactive CLI.

One engine is built at startup and owns a trie per front-end: ranked suggestions,
spell correction, longest-prefix routing, k-mer indexing, grid word search,
redaction and an opening book. Word lists seed it before any request is served.

# Usage

Start the server with a word list:

	trielab -words data/es.txt

Add a forbidden list, a genome and debug logging:

	trielab -words data/es.txt -forbidden data/blocked.txt -genome data/sample.fa -d

Run the interactive CLI:

	trielab -c -words data/es.txt -limit 10

# Configuration

Settings live in a TOML file created with defaults on first run
(~/.config/trielab/config.toml unless -config names another):

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[suggest]
	default_limit = 10
	cache_size = 256
	case_fold = true

	[fuzzy]
	alphabet = "abcdefghijklmnopqrstuvwxyzáéíóúñ"

	[genome]
	k = 6

	[censor]
	placeholder = "*"

# Command Line Flags

	-words string      word list seeding suggestions and spelling
	-forbidden string  word list seeding the redaction filter
	-genome string     nucleotide file indexed into k-mers
	-config string     config file path
	-c                 run the CLI instead of the server
	-d                 debug logging
	-limit, -prmin, -prmax, -no-filter
	                   CLI suggestion bounds
	-version           print version info
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/trielab/internal/cli"
	"github.com/bastiangx/trielab/internal/logger"
	"github.com/bastiangx/trielab/pkg/config"
	"github.com/bastiangx/trielab/pkg/dictionary"
	"github.com/bastiangx/trielab/pkg/engine"
	"github.com/bastiangx/trielab/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "trielab"
	gh      = "https://github.com/bastiangx/trielab"
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

// main only manages the flow: config, engine seeding, then server or CLI.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configFile := flag.String("config", "", "Path to a config file (default ~/.config/trielab/config.toml)")
	wordsFile := flag.String("words", "", "Word list seeding suggestions and spelling")
	forbiddenFile := flag.String("forbidden", "", "Word list seeding the redaction filter")
	genomeFile := flag.String("genome", "", "Nucleotide file indexed into k-mers")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return in CLI mode")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for CLI suggestions")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for CLI suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering in CLI mode (DBG only)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetDefault(logger.NewWithConfig(AppName, log.DebugLevel, true, true, log.TextFormatter))
	} else {
		log.SetLevel(log.WarnLevel)
		log.SetOutput(os.Stderr)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid config %s: %v", config.GetActiveConfigPath(configPath), err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	eng := engine.New(appConfig.EngineOptions())
	if err := seed(eng, *wordsFile, *forbiddenFile, *genomeFile); err != nil {
		log.Fatalf("Failed to seed engine: %v", err)
	}

	if *cliMode {
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		handler := cli.NewInputHandler(eng, cli.Options{
			MinPrefix: *minPrefix,
			MaxPrefix: *maxPrefix,
			Limit:     *limit,
			NoFilter:  *noFilter,
		})
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(eng, configPath)
	srv := server.NewServer(eng, appConfig)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// seed loads every input file that was named. A missing word list leaves the
// dictionaries empty.
func seed(eng *engine.Engine, words, forbidden, genome string) error {
	if words == "" {
		log.Warn("No word list given, running with empty dictionaries...")
	} else {
		n, err := eng.LoadWords(words)
		if err != nil {
			return err
		}
		log.Debugf("Loaded %d words from %s", n, words)
	}
	if forbidden != "" {
		if _, err := eng.LoadForbidden(forbidden); err != nil {
			return err
		}
	}
	if genome != "" {
		seq, err := dictionary.LoadGenome(genome)
		if err != nil {
			return fmt.Errorf("load genome: %w", err)
		}
		if err := eng.IndexGenome(seq, 0); err != nil {
			return err
		}
	}
	return nil
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
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
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ trielab ] one trie engine, seven query front-ends")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo writes basic init info to stderr; stdout carries the msgpack stream.
func showStartupInfo(eng *engine.Engine, configPath string) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)
	stats := eng.Stats()

	l.Info("===========")
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	l.Infof("words: %d  routes: %d  k-mers: %d  forbidden: %d",
		stats["suggest.totalWords"], stats["route.routes"], stats["genome.sequences"], stats["censor.words"])
	l.Info("status: ready")
	l.Info("===========")
}
