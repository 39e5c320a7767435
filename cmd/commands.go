package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/nibzard/task-cli/internal/commands"
	"github.com/nibzard/task-cli/internal/storage"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/ui"
)

// command is one verb of the command surface.
type command struct {
	name    string
	aliases []string
	args    string // argument synopsis for usage lines
	help    string
	maxArgs int // -1 for unbounded
	run     func(a *app, args []string) error
}

func (c *command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

// commandTable lists every command in help order.
var commandTable []*command

func init() {
	commandTable = []*command{
		{
			name: "add", aliases: []string{"-a", "--add"}, args: `"description"`, maxArgs: 1,
			help: "Add a new task with the specified description.",
			run:  addCommand,
		},
		{
			name: "list", aliases: []string{"-l", "--list"}, maxArgs: 0,
			help: "List tasks without created and updated columns.",
			run:  withCommands(func(c *commands.Commands, _ []string) error { return c.List() }),
		},
		{
			name: "list-all", aliases: []string{"-la", "--list-all"}, maxArgs: 0,
			help: "List tasks, including created and updated columns.",
			run:  withCommands(func(c *commands.Commands, _ []string) error { return c.ListAll() }),
		},
		{
			name: "update", aliases: []string{"-u", "--update"}, args: `{id} "description"`, maxArgs: 2,
			help: "Update a task by specifying its ID and new description.",
			run:  updateCommand,
		},
		{
			name: "delete", aliases: []string{"-d", "--delete"}, args: "{id} [id...]", maxArgs: -1,
			help: "Delete one or more tasks by their IDs.",
			run:  withCommands(func(c *commands.Commands, args []string) error { return c.Delete(args) }),
		},
		{
			name: "delete-all", aliases: []string{"-da", "--delete-all"}, maxArgs: 0,
			help: "Delete all tasks (asks for confirmation unless -yes is set).",
			run:  deleteAllCommand,
		},
		statusCommand("mark-todo", []string{"-mt", "--mark-todo"}, task.StatusTodo),
		statusCommand("mark-in-progress", []string{"-mp", "--mark-in-progress"}, task.StatusInProgress),
		statusCommand("mark-completed", []string{"-mc", "--mark-completed"}, task.StatusCompleted),
		{
			name: "board", aliases: []string{"-b", "--board"}, maxArgs: 0,
			help: "Open a read-only status board (terminal only).",
			run:  boardCommand,
		},
		{
			name: "doctor", maxArgs: 0,
			help: "Check the configuration and the task file.",
			run:  doctorCommand,
		},
		{
			name: "config", args: "show|example", maxArgs: 1,
			help: "Show effective configuration with sources, or print an example file.",
			run:  configCommand,
		},
		{
			name: "version", aliases: []string{"-v", "--version"}, maxArgs: 0,
			help: "Show version information.",
			run:  versionCommand,
		},
		{
			name: "help", aliases: []string{"-h", "--help"}, maxArgs: -1,
			help: "Show this help message.",
			run: func(a *app, _ []string) error {
				printUsage(a)
				return nil
			},
		},
	}
}

// lookup finds a command by name or alias.
func lookup(name string) (*command, bool) {
	if name == "" {
		return nil, false
	}
	for _, c := range commandTable {
		if c.name == name {
			return c, true
		}
		for _, alias := range c.aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return nil, false
}

func statusCommand(name string, aliases []string, status task.Status) *command {
	return &command{
		name:    name,
		aliases: aliases,
		args:    "{id} [id...]",
		maxArgs: -1,
		help:    fmt.Sprintf("Mark one or more tasks as %q by their IDs.", status),
		run: withCommands(func(c *commands.Commands, args []string) error {
			return c.SetStatus(args, status)
		}),
	}
}

func withCommands(fn func(c *commands.Commands, args []string) error) func(a *app, args []string) error {
	return func(a *app, args []string) error {
		c, err := a.open()
		if err != nil {
			return err
		}
		return fn(c, args)
	}
}

func addCommand(a *app, args []string) error {
	c, err := a.open()
	if err != nil {
		return err
	}
	var description string
	if len(args) > 0 {
		description = args[0]
	}
	return c.Add(description)
}

func updateCommand(a *app, args []string) error {
	c, err := a.open()
	if err != nil {
		return err
	}
	var id, description string
	if len(args) > 0 {
		id = args[0]
	}
	if len(args) > 1 {
		description = args[1]
	}
	return c.Update(id, description)
}

func deleteAllCommand(a *app, _ []string) error {
	c, err := a.open()
	if err != nil {
		return err
	}
	return c.DeleteAll(a.cfg.AssumeYes)
}

func boardCommand(a *app, _ []string) error {
	file := storage.NewFile(a.cfg.TaskFile, storage.WithLogger(a.logger))
	return ui.RunBoard(a.ctx, a.streams.In, a.streams.Out, file.Path(), func() ([]task.Task, error) {
		return readTasks(file)
	})
}

// readTasks reads the task file without creating it. A missing file is an
// empty collection.
func readTasks(file *storage.File) ([]task.Task, error) {
	tasks, err := file.Read()
	if errors.Is(err, os.ErrNotExist) {
		return []task.Task{}, nil
	}
	return tasks, err
}

func versionCommand(a *app, _ []string) error {
	fmt.Fprintf(a.streams.Out, "task-cli version %s\n", Version)
	return nil
}

// open loads the task file and builds the command set over it. In dry-run
// mode changes are kept in memory and never written.
func (a *app) open() (*commands.Commands, error) {
	file := storage.NewFile(a.cfg.TaskFile, storage.WithLogger(a.logger))

	var (
		tasks []task.Task
		saver task.Saver = file
		err   error
	)
	if a.cfg.DryRun {
		a.logger.Warn("dry run: the task file will not be written", "path", file.Path())
		tasks, err = readTasks(file)
		saver = storage.NewMemory(tasks)
	} else {
		tasks, err = file.Load()
	}
	if err != nil {
		return nil, err
	}

	store := task.NewStore(tasks, saver,
		task.WithDescriptionLimit(task.DescriptionLimit(a.width())),
		task.WithLogger(a.logger),
	)
	prompt := ui.NewPrompt(a.ctx, a.streams.In, a.streams.Out)
	return commands.New(store, a.printer, prompt, a.logger), nil
}
