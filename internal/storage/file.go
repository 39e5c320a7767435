package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/task"
)

// Backend loads and saves the full task collection.
type Backend interface {
	Load() ([]task.Task, error)
	Save(tasks []task.Task) error
}

var (
	_ Backend = (*File)(nil)
	_ Backend = (*Memory)(nil)
)

// ErrCorrupt is matched by every error reporting an unreadable task file.
var ErrCorrupt = errors.New("corrupt task file")

// CorruptError reports a task file whose content cannot be trusted.
type CorruptError struct {
	Path   string
	Err    error
	Errors []error // schema violations, if any
}

func (e *CorruptError) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", ErrCorrupt, e.Path, e.Err)
	for _, v := range e.Errors {
		msg += "\n  - " + v.Error()
	}
	return msg
}

// Unwrap returns both the corruption marker and the underlying cause.
func (e *CorruptError) Unwrap() []error {
	return []error{ErrCorrupt, e.Err}
}

// File persists the task collection as a JSON array in a single file.
type File struct {
	path   string
	logger *log.Logger
}

// FileOption configures a File.
type FileOption func(*File)

// WithLogger sets the logger used for load/save events.
func WithLogger(logger *log.Logger) FileOption {
	return func(f *File) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFile returns a File backed by path.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the whole task file. A missing file is created holding an
// empty collection.
func (f *File) Load() ([]task.Task, error) {
	tasks, err := f.Read()
	if errors.Is(err, os.ErrNotExist) {
		if err := f.Save([]task.Task{}); err != nil {
			return nil, fmt.Errorf("initialize task file: %w", err)
		}
		f.logger.Debug("created task file", "path", f.path)
		return []task.Task{}, nil
	}
	return tasks, err
}

// Read is Load without creating a missing file; the returned error then
// matches os.ErrNotExist.
func (f *File) Read() ([]task.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	tasks, err := decode(data)
	if err != nil {
		var corrupt *CorruptError
		if errors.As(err, &corrupt) {
			corrupt.Path = f.path
		}
		return nil, err
	}

	f.logger.Debug("loaded tasks", "path", f.path, "tasks", len(tasks))
	return tasks, nil
}

// Save overwrites the task file with the full collection, using 2-space
// indentation and a trailing newline.
func (f *File) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create task dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	f.logger.Debug("saved tasks", "path", f.path, "tasks", len(tasks))
	return nil
}

// Validate reports on the task file without creating it.
func (f *File) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		result.Warnings = append(result.Warnings, "task file not found (will be created on first use)")
		return result
	}
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("read task file: %w", err))
		return result
	}

	tasks, err := decode(data)
	if err != nil {
		result.Valid = false
		var corrupt *CorruptError
		if errors.As(err, &corrupt) && len(corrupt.Errors) > 0 {
			result.Errors = append(result.Errors, corrupt.Errors...)
		} else {
			result.Errors = append(result.Errors, err)
		}
		return result
	}
	result.Tasks = len(tasks)
	return result
}

// decode parses and validates raw task file content.
func decode(data []byte) ([]task.Task, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptError{Err: fmt.Errorf("parse task file: %w", err)}
	}

	if violations := validateSchema(raw); len(violations) > 0 {
		return nil, &CorruptError{Err: errors.New("schema validation failed"), Errors: violations}
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &CorruptError{Err: fmt.Errorf("decode tasks: %w", err)}
	}

	seen := make(map[task.ID]int, len(tasks))
	for i, t := range tasks {
		if prev, dup := seen[t.ID]; dup {
			return nil, &CorruptError{Err: &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d (first used at [%d])", t.ID, prev),
			}}
		}
		seen[t.ID] = i
	}
	return tasks, nil
}
