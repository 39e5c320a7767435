// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.task-cli/config.toml or OS-specific config directory)
// 3. Project config file (task-cli.toml or .task-cli.toml in the current directory)
// 4. Environment variables (TASK_CLI_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.task-cli/config.toml (preferred)
// - Windows: %APPDATA%\task-cli\config.toml
// - macOS: ~/Library/Application Support/task-cli/config.toml
// - Linux/BSD: $XDG_CONFIG_HOME/task-cli/config.toml or ~/.config/task-cli/config.toml
//
// Project-level config locations (overrides user config):
// - ./task-cli.toml (preferred)
// - ./.task-cli.toml
package config
