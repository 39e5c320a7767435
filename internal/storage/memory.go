package storage

import "github.com/nibzard/task-cli/internal/task"

// Memory keeps the collection in memory. It backs dry runs and tests.
type Memory struct {
	tasks []task.Task
	saves int
	err   error
}

// NewMemory returns a Memory seeded with a copy of tasks.
func NewMemory(tasks []task.Task) *Memory {
	return &Memory{tasks: clone(tasks)}
}

// FailWith makes every subsequent Save return err.
func (m *Memory) FailWith(err error) {
	m.err = err
}

// Load returns a copy of the stored collection.
func (m *Memory) Load() ([]task.Task, error) {
	return clone(m.tasks), nil
}

// Save replaces the stored collection.
func (m *Memory) Save(tasks []task.Task) error {
	if m.err != nil {
		return m.err
	}
	m.tasks = clone(tasks)
	m.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (m *Memory) Saves() int {
	return m.saves
}

func clone(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	return out
}
