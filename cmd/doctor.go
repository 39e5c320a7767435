package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/task-cli/internal/storage"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/ui"
)

// ErrDoctorFailed is returned when at least one doctor check fails.
var ErrDoctorFailed = errors.New("doctor checks failed")

// doctorCommand checks the configuration and the task file.
func doctorCommand(a *app, _ []string) error {
	w := a.streams.Out
	fmt.Fprintln(w, "task-cli Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Config
	fmt.Fprintln(w, "Config:")
	if path := a.sources.GetConfigFile(); path != "" {
		fmt.Fprintf(w, "  ✅ File: %s\n", path)
	} else {
		fmt.Fprintln(w, "  ✅ File: none (using defaults)")
	}
	width := a.width()
	switch {
	case a.cfg.Width > 0:
		fmt.Fprintf(w, "  ✅ Width: %d (configured)\n", width)
	case ui.IsTTY(a.streams.Out):
		fmt.Fprintf(w, "  ✅ Width: %d (terminal)\n", width)
	default:
		fmt.Fprintf(w, "  ✅ Width: %d (default, not a terminal)\n", width)
	}
	fmt.Fprintf(w, "  ✅ Description limit: %d columns\n", task.DescriptionLimit(width)-1)
	if a.cfg.DryRun {
		fmt.Fprintln(w, "  ⚠️  Dry run enabled: changes are not written")
	}
	fmt.Fprintln(w)

	// Task file
	path := a.cfg.TaskFile
	fmt.Fprintf(w, "Task file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	case err != nil && !os.IsNotExist(err):
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	default:
		result := storage.NewFile(path, storage.WithLogger(a.logger)).Validate()
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s\n", warning)
		}
		if result.Valid {
			fmt.Fprintf(w, "  ✅ Valid (%d tasks)\n", result.Tasks)
		} else {
			fmt.Fprintln(w, "  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Fprintf(w, "     - %v\n", e)
			}
			allOK = false
		}
	}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "  ⚠️  Directory %s not found (will be created on first use)\n", dir)
		} else {
			fmt.Fprintf(w, "  ❌ Directory: %v\n", err)
			allOK = false
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. task-cli will refuse to modify an invalid task file.")
	return &reportedError{ErrDoctorFailed}
}
