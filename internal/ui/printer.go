package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/task-cli/internal/task"
)

// Printer writes task tables and colored status lines.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer

	success lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	status  map[task.Status]lipgloss.Style
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile(w, mode))

	cell := r.NewStyle().Padding(0, 1)
	return &Printer{
		out:      w,
		renderer: r,
		success:  r.NewStyle().Foreground(lipgloss.Color("2")),
		failure:  r.NewStyle().Foreground(lipgloss.Color("1")),
		header:   cell.Bold(true),
		cell:     cell,
		status: map[task.Status]lipgloss.Style{
			task.StatusTodo:       cell.Foreground(lipgloss.Color("3")),
			task.StatusInProgress: cell.Foreground(lipgloss.Color("6")),
			task.StatusCompleted:  cell.Foreground(lipgloss.Color("2")),
		},
	}
}

// Renderer returns the lipgloss renderer bound to the output.
func (p *Printer) Renderer() *lipgloss.Renderer {
	return p.renderer
}

// Success prints msg in green.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.success.Render(msg))
}

// Failure prints msg in red.
func (p *Printer) Failure(msg string) {
	fmt.Fprintln(p.out, p.failure.Render(msg))
}

// Error prints a red "error:" label followed by msg.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, p.failure.Render("error:")+" "+msg)
}

// Info prints msg without styling.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Tasks prints the collection as a bordered table. Created and updated
// dates are only shown when withDates is set.
func (p *Printer) Tasks(tasks []task.Task, withDates bool) {
	fmt.Fprintln(p.out, p.renderTable(tasks, withDates))
}

func (p *Printer) renderTable(tasks []task.Task, withDates bool) string {
	headers := []string{"ID", "Description", "Status"}
	if withDates {
		headers = append(headers, "Created", "Updated")
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		row := []string{strconv.Itoa(int(t.ID)), t.Description, string(t.Status)}
		if withDates {
			row = append(row, t.Created.String(), t.Updated.String())
		}
		rows = append(rows, row)
	}

	const statusCol = 2
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			if col == statusCol && row >= 0 && row < len(tasks) {
				if style, ok := p.status[tasks[row].Status]; ok {
					return style
				}
			}
			return p.cell
		})
	return tbl.String()
}
