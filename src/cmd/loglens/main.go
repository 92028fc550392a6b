// FILE: loglens/src/cmd/loglens/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"loglens/src/cmd/loglens/commands"
	"loglens/src/internal/config"
	"loglens/src/internal/report"
	"loglens/src/internal/service"
	"loglens/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	router := commands.NewCommandRouter()
	handled, err := router.Route(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if handled {
		os.Exit(0)
	}

	os.Exit(run(os.Args[1:]))
}

// run performs one analysis and returns the process exit code.
func run(args []string) int {
	flagCfg, err := ParseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGLENS_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(flagCfg.ConfigArgs)
	if err != nil {
		Error("Failed to load config: %v\n", err)
		return 2
	}

	if err := initializeLogger(cfg, flagCfg.Quiet); err != nil {
		Error("Failed to initialize logger: %v\n", err)
		return 1
	}
	defer shutdownLogger()

	logger.Info("msg", "LogLens starting",
		"version", version.Short(),
		"config_file", config.GetConfigPath(),
		"input", cfg.Input.Path,
		"format", cfg.Input.Format,
		"geo", cfg.Geo.Enabled)

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	svc, err := service.NewService(cfg, logger)
	if err != nil {
		Error("Failed to create service: %v\n", err)
		return 2
	}
	defer svc.Shutdown()

	rep, err := svc.Analyze(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			Error("Analysis interrupted\n")
			return 130
		}
		Error("Analysis failed: %v\n", err)
		return 1
	}

	mode := report.ResolveMode(cfg.Report.Output, os.Stdout)
	if err := report.Write(os.Stdout, mode, rep, cfg.Report.Top); err != nil {
		Error("Failed to write report: %v\n", err)
		return 1
	}

	logger.Info("msg", "Report written",
		"mode", mode,
		"entries", rep.Entries)
	return 0
}
