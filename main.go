package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/heatlegend/internal/app"
	"github.com/rook-computer/heatlegend/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("heatlegend", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML config file applied over the defaults")
	debug := fs.Bool("debug", false, "enable debug logging to ./heatlegend-debug.log")
	stdioLog := fs.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+config.EnvStdioLog)
	serve := fs.Bool("serve", false, "serve legends over HTTP instead of writing one")

	// Flags set on the command line win over the config file and environment.
	overrides := newOverrides(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(config.EnvStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./heatlegend-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			zl := app.NewFileLogger(f)
			defer func() { _ = zl.Sync() }()
			logger = zl
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Fprintln(os.Stderr, "debug log open error:", err)
		}
	}

	cfg, err := config.FromEnv(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}
	cfg = overrides.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(logger)
	if *serve {
		fmt.Fprintln(os.Stderr, "heatlegend listening on", cfg.Server.ListenAddr)
		err = a.Serve(ctx, cfg)
	} else {
		err = a.WriteOutput(ctx, cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "heatlegend:", err)
		return 1
	}
	return 0
}
