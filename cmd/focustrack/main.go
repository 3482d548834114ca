// Package main is the entry point for the focustrack replay tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/focustrack/internal/config"
	"github.com/dshills/focustrack/internal/logging"
	"github.com/dshills/focustrack/internal/replay"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "replay":
		return runReplay(ctx, args[1:], stdout, stderr)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "focustrack %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "focustrack - selection and focus tracker tooling\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  focustrack replay [options] scenario.yaml   Replay a scenario\n")
	fmt.Fprintf(w, "  focustrack config [-config file]           Print the effective configuration\n")
	fmt.Fprintf(w, "  focustrack version                         Show version information\n")
}

type replayFlags struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
	watch      bool
	realtime   bool
}

func runReplay(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var f replayFlags
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "Path to a .env file")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	fs.BoolVar(&f.watch, "watch", false, "Replay again whenever the scenario file changes")
	fs.BoolVar(&f.realtime, "realtime", false, "Replay in real time on an event loop")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: focustrack replay [options] scenario.yaml\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	cfg, err := config.NewLoader(f.configPath, config.WithEnvFile(f.envFile)).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = stderr
	log := logging.New(logCfg)
	log.Debug("configuration loaded", "config", cfg.String())

	replayOnce := func() error {
		sc, err := replay.Load(path)
		if err != nil {
			return err
		}
		_, err = replay.Run(ctx, sc, replay.Options{
			Config:   cfg,
			Logger:   log,
			Out:      stdout,
			Realtime: f.realtime,
		})
		return err
	}

	if !f.watch {
		if err := replayOnce(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	err = replay.Watch(ctx, path, replay.DefaultWatchDebounce, log, func() {
		fmt.Fprintf(stdout, "--- replaying %s\n", path)
		if err := replayOnce(); err != nil {
			log.Error("replay failed", "path", path, "error", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a TOML or YAML configuration file")
	envFile := fs.String("env-file", config.DefaultEnvFile, "Path to a .env file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.NewLoader(*configPath, config.WithEnvFile(*envFile)).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: loading config: %v\n", err)
		return 1
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: encoding config: %v\n", err)
		return 1
	}
	_, _ = stdout.Write(data)
	return 0
}
