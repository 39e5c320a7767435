package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/task-cli/internal/config"
)

// printUsage prints the help menu.
func printUsage(a *app) {
	r := a.printer.Renderer()
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	tip := r.NewStyle().Foreground(lipgloss.Color("2"))
	synopsis := r.NewStyle().Foreground(lipgloss.Color("4"))
	desc := r.NewStyle().Foreground(lipgloss.Color("3"))

	w := a.streams.Out
	fmt.Fprintln(w, title.Render("task-cli - track your tasks from the command line"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  task-cli [global options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Render("Commands and Options:"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, tip.Render(`Tip: quote descriptions that contain spaces, e.g. task-cli add "buy milk".`))
	fmt.Fprintln(w)
	for _, c := range commandTable {
		names := append(append([]string{}, c.aliases...), c.name)
		line := "  " + strings.Join(names, ", ")
		if c.args != "" {
			line += " " + c.args
		}
		fmt.Fprintln(w, synopsis.Render(line))
		fmt.Fprintln(w, desc.Render("    "+c.help))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Global Options (before the command):")
	fs := flag.NewFlagSet("task-cli", flag.ContinueOnError)
	current := *a.cfg
	config.RegisterFlags(fs, &current)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	for _, name := range []string{
		config.EnvTaskFile, config.EnvWidth, config.EnvAssumeYes, config.EnvColor, config.EnvDryRun,
		config.EnvLogLevel, config.EnvLogFormat, config.EnvLogTimestamps, config.EnvLogCaller,
	} {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status: 0 on success, 1 when a command fails, 2 on usage errors, 130 when interrupted.")
}
