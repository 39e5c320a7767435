package config

import (
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/ui"
)

// ErrInvalidFlags wraps command-line flag parse failures.
var ErrInvalidFlags = errors.New("parsing flags")

// LoadWithSources loads configuration from multiple sources in priority
// order and records where each value came from:
// 1. Defaults
// 2. User config file (~/.task-cli/config.toml or OS-specific config dir)
// 3. Project config file (task-cli.toml or .task-cli.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
		cws.UserFile = path
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
		cws.ProjectFile = path
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg, cws.Sources); err != nil {
		return nil, err
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"width",
		"color",
		"assume_yes",
		"dry_run",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile decodes a TOML file over cfg and marks every key the file
// defines with source. Unknown keys are rejected.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.Width = DefaultWidth
	cfg.Color = DefaultColor
	cfg.AssumeYes = false
	cfg.DryRun = false
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// finalizeConfig validates values and computes derived ones.
func finalizeConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := resolveTaskFile(cfg.TaskFile)
	if err != nil {
		return fmt.Errorf("task_file: %w", err)
	}
	cfg.TaskFile = path
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TaskFile) == "" {
		return fmt.Errorf("task_file must not be empty")
	}
	if c.Width < 0 || (c.Width > 0 && task.DescriptionLimit(c.Width) <= 0) {
		return fmt.Errorf("width must be 0 (detect) or wider than the id and status columns, got %d", c.Width)
	}
	if _, err := ui.ParseColorMode(c.Color); err != nil {
		return err
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
