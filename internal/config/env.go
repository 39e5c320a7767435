package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvTaskFile      = "TASK_CLI_FILE"
	EnvWidth         = "TASK_CLI_WIDTH"
	EnvAssumeYes     = "TASK_CLI_YES"
	EnvColor         = "TASK_CLI_COLOR"
	EnvDryRun        = "TASK_CLI_DRY_RUN"
	EnvLogLevel      = "TASK_CLI_LOG_LEVEL"
	EnvLogFormat     = "TASK_CLI_LOG_FORMAT"
	EnvLogTimestamps = "TASK_CLI_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASK_CLI_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables and records
// each override in sources.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvTaskFile); v != "" {
		cfg.TaskFile = v
		set("task_file")
	}
	if v := os.Getenv(EnvWidth); v != "" {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: invalid width %q", EnvWidth, v)
		}
		cfg.Width = i
		set("width")
	}
	if v := os.Getenv(EnvAssumeYes); v != "" {
		cfg.AssumeYes = boolFromString(v)
		set("assume_yes")
	}
	if v := os.Getenv(EnvColor); v != "" {
		cfg.Color = v
		set("color")
	}
	if v := os.Getenv(EnvDryRun); v != "" {
		cfg.DryRun = boolFromString(v)
		set("dry_run")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
	return nil
}
