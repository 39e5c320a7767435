package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/task-cli/internal/task"
)

// LoadFunc reads the current task collection.
type LoadFunc func() ([]task.Task, error)

// ErrNoTTY is returned by RunBoard when out is not a terminal.
var ErrNoTTY = errors.New("board requires a TTY")

// RunBoard starts the read-only board over the task file at path.
func RunBoard(ctx context.Context, in io.Reader, out io.Writer, path string, load LoadFunc) error {
	if !IsTTY(out) {
		return ErrNoTTY
	}
	model := newBoardModel(path, load)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	return err
}

type boardModel struct {
	path     string
	load     LoadFunc
	loadErr  error
	tasks    []task.Task
	counts   map[task.Status]int
	filter   task.Status // empty shows every task
	showHelp bool
}

func newBoardModel(path string, load LoadFunc) *boardModel {
	return &boardModel{path: path, load: load}
}

func (m *boardModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r", "f5":
		m.refresh()
	case "h", "?":
		m.showHelp = !m.showHelp
	case "1":
		m.filter = task.StatusTodo
	case "2":
		m.filter = task.StatusInProgress
	case "3":
		m.filter = task.StatusCompleted
	case "0":
		m.filter = ""
	}
	return m, nil
}

func (m *boardModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.filter != "" {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b)
		return b.String()
	}
	if m.counts == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.counts)
	writeTasks(&b, m.visible())
	b.WriteString(fmt.Sprintf("Task File: %s\n\n", m.path))
	writeFooter(&b)
	return b.String()
}

func (m *boardModel) refresh() {
	tasks, err := m.load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		m.counts = nil
		return
	}
	m.loadErr = nil
	m.tasks = tasks
	m.counts = map[task.Status]int{}
	for _, t := range tasks {
		m.counts[t.Status]++
	}
}

func (m *boardModel) visible() []task.Task {
	if m.filter == "" {
		return m.tasks
	}
	var out []task.Task
	for _, t := range m.tasks {
		if t.Status == m.filter {
			out = append(out, t)
		}
	}
	return out
}

func writeTitle(b *strings.Builder) {
	title := "Task Board"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, counts map[task.Status]int) {
	b.WriteString(fmt.Sprintf("  Todo: %d  In Progress: %d  Completed: %d\n\n",
		counts[task.StatusTodo],
		counts[task.StatusInProgress],
		counts[task.StatusCompleted],
	))
}

func writeTasks(b *strings.Builder, tasks []task.Task) {
	if len(tasks) == 0 {
		b.WriteString("  No tasks.\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, esc       Quit\n")
	b.WriteString("  r, F5        Reload the task file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by in-progress\n")
	b.WriteString("  3            Filter by completed\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | r to reload | q to quit\n")
}

func formatTask(t task.Task) string {
	icon := " "
	switch t.Status {
	case task.StatusInProgress:
		icon = ">"
	case task.StatusCompleted:
		icon = "x"
	}
	return fmt.Sprintf("  %s [%d] %s (updated %s)", icon, t.ID, t.Description, t.Updated)
}
