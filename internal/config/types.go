package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Config files that were read, empty when absent.
	UserFile    string
	ProjectFile string
}

// Default values.
const (
	DefaultTaskFile  = "~/.task-cli/tasks.json"
	DefaultWidth     = 0 // detect from the terminal
	DefaultColor     = "auto"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for task-cli.
type Config struct {
	// Path of the JSON task file
	TaskFile string `toml:"task_file"`

	// Display width in columns used to bound descriptions; 0 detects it
	Width int `toml:"width"`

	// Color mode: auto, always or never
	Color string `toml:"color"`

	// Answer yes to the delete-all confirmation
	AssumeYes bool `toml:"assume_yes"`

	// Compute changes without writing the task file (env or flag only)
	DryRun bool `toml:"-"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}
