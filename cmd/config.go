package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/task-cli/internal/config"
)

// configCommand prints the effective configuration or an example file.
func configCommand(a *app, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "show":
		return configShow(a)
	case "example":
		fmt.Fprint(a.streams.Out, config.ExampleConfig())
		return nil
	default:
		a.printer.Info("Invalid command. Usage: task-cli config show|example (use task-cli -h for help)")
		return &reportedError{fmt.Errorf("%w: config %s", ErrUsage, sub)}
	}
}

func configShow(a *app) error {
	cfg := a.cfg
	values := map[string]string{
		"task_file":      cfg.TaskFile,
		"width":          strconv.Itoa(cfg.Width),
		"color":          cfg.Color,
		"assume_yes":     strconv.FormatBool(cfg.AssumeYes),
		"dry_run":        strconv.FormatBool(cfg.DryRun),
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": strconv.FormatBool(cfg.LogTimestamps),
		"log_caller":     strconv.FormatBool(cfg.LogCaller),
	}

	var rows [][]string
	for _, field := range config.Fields() {
		rows = append(rows, []string{field, values[field], string(a.sources.Sources[field])})
	}

	cell := a.printer.Renderer().NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Key", "Value", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		})

	w := a.streams.Out
	if path := a.sources.GetConfigFile(); path != "" {
		fmt.Fprintf(w, "Config file: %s\n", path)
	} else {
		fmt.Fprintln(w, "Config file: none")
	}
	fmt.Fprintln(w, tbl.String())
	return nil
}
