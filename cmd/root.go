// Package cmd implements the CLI command structure for task-cli.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/commands"
	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	// ErrUnknownCommand is returned for a verb that names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command gets the wrong arguments.
	ErrUsage = errors.New("invalid usage")
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Streams are the standard streams a command runs with.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// reportedError marks an error whose message was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already shown to the user, so the
// caller only has to pick an exit code.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r) || errors.Is(err, commands.ErrFailed)
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrUnknownCommand),
		errors.Is(err, ErrUsage),
		errors.Is(err, config.ErrInvalidFlags),
		errors.Is(err, task.ErrMissingArgument):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Run executes the task-cli CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, StdStreams())
}

// RunWithIO executes the CLI with explicit streams. Global flags come
// before the command: task-cli [flags] <command> [args].
func RunWithIO(ctx context.Context, args []string, streams Streams) error {
	globals, name, rest := splitArgs(args)

	fs := flag.NewFlagSet("task-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cws, err := config.LoadWithSources(fs, globals)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a, err := newApp(ctx, cws, streams)
	if err != nil {
		return err
	}

	cmd, ok := lookup(name)
	if !ok {
		a.printer.Error("Unknown command (use task-cli -h for help)")
		a.logger.Debug("unknown command", "name", name)
		return &reportedError{fmt.Errorf("%w: %q", ErrUnknownCommand, name)}
	}
	if cmd.maxArgs >= 0 && len(rest) > cmd.maxArgs {
		a.printer.Info(fmt.Sprintf("Invalid command. Usage: task-cli %s (use task-cli -h for help)", cmd.usage()))
		return &reportedError{fmt.Errorf("%w: %s takes at most %d argument(s)", ErrUsage, cmd.name, cmd.maxArgs)}
	}
	return cmd.run(a, rest)
}

// app carries what every command needs.
type app struct {
	ctx     context.Context
	cfg     *config.Config
	sources *config.ConfigWithSources
	streams Streams
	printer *ui.Printer
	logger  *log.Logger
}

func newApp(ctx context.Context, cws *config.ConfigWithSources, streams Streams) (*app, error) {
	cfg := cws.Config
	mode, err := ui.ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}
	logger := logging.NewFromConfig(streams.Err, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	return &app{
		ctx:     ctx,
		cfg:     cfg,
		sources: cws,
		streams: streams,
		printer: ui.NewPrinter(streams.Out, mode),
		logger:  logger,
	}, nil
}

// width is the display width that bounds descriptions.
func (a *app) width() int {
	if a.cfg.Width > 0 {
		return a.cfg.Width
	}
	return ui.Width(a.streams.Out)
}

// splitArgs separates global flags from the command and its arguments.
// The command is the first token naming a known command or alias; value
// flags consume the token that follows them.
func splitArgs(args []string) (globals []string, name string, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if _, ok := lookup(arg); ok {
			return args[:i], arg, args[i+1:]
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return args[:i], arg, args[i+1:]
		}
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1], args[i+2:]
			}
			return args[:i], "", nil
		}
		flagName := strings.TrimLeft(arg, "-")
		if strings.Contains(flagName, "=") {
			continue
		}
		if valueFlags[flagName] {
			i++
		}
	}
	return args, "", nil
}

// valueFlags are the global flags that take a separate value argument.
var valueFlags = map[string]bool{
	"file":       true,
	"width":      true,
	"color":      true,
	"log-level":  true,
	"log-format": true,
}
