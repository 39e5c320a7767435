package config

import (
	"flag"
)

// FlagNames lists the global flags, mapped to the config field they set.
var FlagNames = map[string]string{
	"file":           "task_file",
	"width":          "width",
	"yes":            "assume_yes",
	"color":          "color",
	"dry-run":        "dry_run",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// RegisterFlags defines the global flags on fs, bound to cfg.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.TaskFile, "file", cfg.TaskFile, "Path to the task file")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Display width in columns (0 detects the terminal)")
	fs.BoolVar(&cfg.AssumeYes, "yes", cfg.AssumeYes, "Answer yes to the delete-all confirmation")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "Color output (auto, always, never)")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Show what would change without writing the task file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
}

// parseFlags parses CLI flags into cfg and records which fields they set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("task-cli", flag.ContinueOnError)
	}
	RegisterFlags(fs, cfg)

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if sources == nil {
			return
		}
		if field, ok := FlagNames[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
