// Package main is the entry point for the ropecore inspection tool.
//
// It loads a text file into an editor, reports the shape of the rope
// that backs it and prints selected lines through the line cache.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dshills/ropecore/internal/config"
	"github.com/dshills/ropecore/internal/engine"
	"github.com/dshills/ropecore/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const envPrefix = "ROPECORE"

type options struct {
	configPath string
	logLevel   string
	first      int
	count      int
	file       string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stdout, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if opts == nil {
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger := logging.New(logging.Config{Level: level, Output: stderr, Prefix: "ropecore"})

	f, err := os.Open(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer f.Close()

	ed, err := engine.NewFromReader(f, engine.WithConfig(cfg), engine.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", opts.file, err)
		return 1
	}
	logger.Debug("loaded %s", opts.file)

	report(stdout, ed, opts)
	return 0
}

func parseFlags(args []string, stdout, stderr io.Writer) (*options, error) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("ropecore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.IntVar(&opts.first, "line", -1, "First line to print (0-based)")
	fs.IntVar(&opts.count, "n", 1, "Number of lines to print with -line")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "ropecore - inspect text through the rope engine\n\n")
		fmt.Fprintf(stderr, "Usage: ropecore [options] file\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment variables named %s_SECTION_SETTING override the config file.\n", envPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if showVersion {
		fmt.Fprintf(stdout, "ropecore %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return nil, nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected exactly one file, got %d", fs.NArg())
	}
	if opts.count < 1 {
		return nil, fmt.Errorf("invalid line count %d", opts.count)
	}
	opts.file = fs.Arg(0)
	return &opts, nil
}

// loadConfig layers the config file, the environment and the command
// line, in that order.
func loadConfig(opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(envPrefix); err != nil {
		return cfg, err
	}
	if opts.logLevel != "" {
		if err := cfg.Set("log.level", opts.logLevel); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func report(w io.Writer, ed *engine.Editor, opts *options) {
	buf := ed.Buffer()
	r := buf.Rope()
	fmt.Fprintf(w, "file:   %s\n", opts.file)
	fmt.Fprintf(w, "bytes:  %d\n", r.Len())
	fmt.Fprintf(w, "chars:  %d\n", r.CharCount(0, r.Len()))
	fmt.Fprintf(w, "lines:  %d\n", r.LineCount())
	fmt.Fprintf(w, "chunks: %d\n", r.ChunkCount())
	fmt.Fprintf(w, "height: %d\n", r.Height())

	if opts.first < 0 || opts.first >= buf.LineCount() {
		return
	}
	end := min(opts.first+opts.count, buf.LineCount())
	buf.EnsureRangeCached(opts.first, end)
	for line := opts.first; line < end; line++ {
		text, _ := buf.Line(line)
		fmt.Fprintf(w, "%6d  %s\n", line, text)
	}
}
