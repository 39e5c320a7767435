package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Prompt asks yes/no questions.
type Prompt struct {
	ctx context.Context
	in  io.Reader
	out io.Writer
}

// NewPrompt creates a prompt reading answers from in and writing the
// question to out.
func NewPrompt(ctx context.Context, in io.Reader, out io.Writer) *Prompt {
	return &Prompt{ctx: ctx, in: in, out: out}
}

// Confirm asks question and reports whether the answer was yes. On a
// terminal a single key answers; otherwise one line is read, where an
// empty line, "y" or "yes" mean yes.
func (p *Prompt) Confirm(question string) (bool, error) {
	if IsTTY(p.in) && IsTTY(p.out) {
		return p.confirmTTY(question)
	}
	return p.confirmLine(question)
}

func (p *Prompt) confirmLine(question string) (bool, error) {
	fmt.Fprint(p.out, question)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		// No input at all: treat as the default answer on an empty line.
		fmt.Fprintln(p.out)
	}
	return ParseAnswer(line), nil
}

func (p *Prompt) confirmTTY(question string) (bool, error) {
	model := newConfirmModel(question)
	program := tea.NewProgram(model,
		tea.WithContext(p.ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && p.ctx.Err() != nil {
			return false, p.ctx.Err()
		}
		return false, fmt.Errorf("run prompt: %w", err)
	}
	m, ok := final.(*confirmModel)
	if !ok {
		return false, nil
	}
	return m.yes, nil
}

// ParseAnswer interprets a typed answer. Empty input means yes.
func ParseAnswer(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

type confirmModel struct {
	question string
	yes      bool
	answered bool
}

func newConfirmModel(question string) *confirmModel {
	return &confirmModel{question: question}
}

func (m *confirmModel) Init() tea.Cmd {
	return nil
}

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		m.yes = true
		m.answered = true
		return m, tea.Quit
	case "n", "N", "esc", "ctrl+c":
		m.yes = false
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	if !m.answered {
		return m.question
	}
	if m.yes {
		return m.question + "y\n"
	}
	return m.question + "n\n"
}
