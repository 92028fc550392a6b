// FILE: loglens/src/cmd/loglens/bootstrap.go
package main

import (
	"fmt"
	"strings"
	"time"

	"loglens/src/internal/config"

	"github.com/lixenwraith/log"
)

// Base log package overrides per [logging].output mode
var outputArgs = map[string][]string{
	"none":   {"disable_file=true", "enable_console=false"},
	"stdout": {"disable_file=true", "enable_console=true", "console_target=stdout"},
	"stderr": {"disable_file=true", "enable_console=true", "console_target=stderr"},
	"file":   {"disable_file=false", "enable_console=false"},
	"both":   {"disable_file=false", "enable_console=true"},
}

// initializeLogger creates the diagnostics logger from configuration
func initializeLogger(cfg *config.Config, quiet bool) error {
	args, err := loggerArgs(cfg.Logging, quiet)
	if err != nil {
		return err
	}

	logger = log.NewLogger()
	if err := logger.ApplyConfigString(args...); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}
	return logger.Start()
}

// loggerArgs translates [logging] into log package key=value overrides.
// Quiet mode silences everything regardless of config.
func loggerArgs(lc *config.LogConfig, quiet bool) ([]string, error) {
	if quiet {
		return []string{"disable_file=true", "enable_console=false", "level=255"}, nil
	}

	level, err := parseLogLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	base, ok := outputArgs[lc.Output]
	if !ok {
		return nil, fmt.Errorf("invalid log output mode: %s", lc.Output)
	}

	args := append([]string{fmt.Sprintf("level=%d", level)}, base...)
	if lc.Output == "file" || lc.Output == "both" {
		args = append(args, fileArgs(lc.File)...)
	}
	if lc.Output == "both" {
		args = append(args, consoleTargetArgs(lc.Console)...)
	}
	if lc.Console != nil && lc.Console.Format != "" {
		args = append(args, "format="+lc.Console.Format)
	}
	return args, nil
}

func fileArgs(fc *config.LogFileConfig) []string {
	if fc == nil {
		return nil
	}
	args := []string{
		"directory=" + fc.Directory,
		"name=" + fc.Name,
		fmt.Sprintf("max_size_mb=%d", fc.MaxSizeMB),
		fmt.Sprintf("max_total_size_mb=%d", fc.MaxTotalSizeMB),
	}
	if fc.RetentionHours > 0 {
		args = append(args, fmt.Sprintf("retention_period_hrs=%.1f", fc.RetentionHours))
	}
	return args
}

// consoleTargetArgs routes console output; split sends errors to stderr.
func consoleTargetArgs(cc *config.LogConsoleConfig) []string {
	target := "stderr"
	if cc != nil && cc.Target != "" {
		target = cc.Target
	}
	return []string{"console_target=" + target}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func shutdownLogger() {
	if logger == nil {
		return
	}
	if err := logger.Shutdown(2 * time.Second); err != nil {
		Error("Logger shutdown error: %v\n", err)
	}
}
