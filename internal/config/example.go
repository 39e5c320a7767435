package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# task-cli configuration file
# Values can be overridden by TASK_CLI_* environment variables or CLI flags

# Task file (supports ~ and $VAR expansion; relative paths use the current directory)
task_file = "~/.task-cli/tasks.json"

# Display width in columns. Descriptions must be narrower than width - 27.
# 0 detects the terminal width and falls back to 80.
width = 0

# Color output: auto, always, or never
color = "auto"

# Skip the delete-all confirmation
assume_yes = false

# Logging (written to stderr)
log_level = "warn"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
