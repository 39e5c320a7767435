// Package commands implements one operation per task-cli verb on top of
// the task store.
//
// Each operation reports its own outcome through a Presenter. When an
// operation fails because of user input the message has already been shown
// and the returned error matches ErrFailed, so callers only need to map it
// to an exit status. Any other error (a failed save, a broken prompt) is
// returned unreported.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/task"
)

// ErrFailed marks an operation failure that was already reported.
var ErrFailed = errors.New("command failed")

// Messages shown to the user.
const (
	MsgDescriptionTooLong = "Sorry, the description you provided is too long."
	MsgMissingDescription = "Provide a description of the task."
	MsgMissingUpdateText  = "Please provide a description for the task."
	MsgIDsExhausted       = "No more task IDs are available."
	MsgMissingID          = "Please provide an id for the task."
	MsgNoTasks            = "No tasks found! Use the 'add' or '-a' command to create one."
	MsgAllDeleted         = "All tasks have been deleted."
	MsgNoneDeleted        = "No tasks were deleted."
	DeleteAllQuestion     = "Are you sure you want to delete all the tasks? (Y/N): "
)

// Presenter shows operation results.
type Presenter interface {
	Success(msg string)
	Failure(msg string)
	Info(msg string)
	Tasks(tasks []task.Task, withDates bool)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Commands runs task operations against a store.
type Commands struct {
	store   *task.Store
	out     Presenter
	confirm Confirmer
	logger  *log.Logger
}

// New creates the command set. A nil logger discards output.
func New(store *task.Store, out Presenter, confirm Confirmer, logger *log.Logger) *Commands {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Commands{store: store, out: out, confirm: confirm, logger: logger}
}

// Add creates a task from description.
func (c *Commands) Add(description string) error {
	t, err := c.store.Add(description)
	if err != nil {
		return c.fail(err, MsgMissingDescription)
	}
	c.out.Success(fmt.Sprintf("Task added successfully (ID: %d)", t.ID))
	return nil
}

// List shows every task without its dates.
func (c *Commands) List() error {
	return c.list(false)
}

// ListAll shows every task including created and updated dates.
func (c *Commands) ListAll() error {
	return c.list(true)
}

func (c *Commands) list(withDates bool) error {
	if c.store.Len() == 0 {
		c.out.Info(MsgNoTasks)
		return nil
	}
	c.out.Tasks(c.store.Tasks(), withDates)
	return nil
}

// Update replaces the description of the task named by rawID.
func (c *Commands) Update(rawID, description string) error {
	if strings.TrimSpace(rawID) == "" {
		return c.fail(task.ErrMissingArgument, MsgMissingID)
	}
	if err := c.store.ValidateDescription(description); err != nil {
		return c.fail(err, MsgMissingUpdateText)
	}
	ids, err := c.store.Resolve([]string{rawID})
	if err != nil {
		return c.fail(err, MsgMissingID)
	}

	t, err := c.store.Update(ids[0], description)
	if err != nil {
		return c.fail(err, MsgMissingUpdateText)
	}
	c.out.Success(fmt.Sprintf("Task updated successfully (ID: %d)", t.ID))
	return nil
}

// Delete removes the tasks named by rawIDs. Nothing is removed if any id
// is invalid.
func (c *Commands) Delete(rawIDs []string) error {
	ids, err := c.store.Resolve(rawIDs)
	if err != nil {
		return c.fail(err, MsgMissingID)
	}
	if err := c.store.Delete(ids); err != nil {
		return c.fail(err, MsgMissingID)
	}
	c.out.Success(fmt.Sprintf("Task deleted successfully (ID: %s)", joinIDs(ids)))
	return nil
}

// DeleteAll removes every task after confirmation. assumeYes skips the
// question.
func (c *Commands) DeleteAll(assumeYes bool) error {
	yes := assumeYes
	if !yes {
		var err error
		yes, err = c.confirm.Confirm(DeleteAllQuestion)
		if err != nil {
			return fmt.Errorf("confirm delete-all: %w", err)
		}
	}
	if !yes {
		c.logger.Debug("delete-all declined")
		c.out.Info(MsgNoneDeleted)
		return nil
	}

	if err := c.store.DeleteAll(); err != nil {
		return err
	}
	c.out.Success(MsgAllDeleted)
	return nil
}

// SetStatus moves the tasks named by rawIDs to status. Nothing changes if
// any id is invalid.
func (c *Commands) SetStatus(rawIDs []string, status task.Status) error {
	ids, err := c.store.Resolve(rawIDs)
	if err != nil {
		return c.fail(err, MsgMissingID)
	}
	if err := c.store.SetStatus(ids, status); err != nil {
		return c.fail(err, MsgMissingID)
	}
	c.out.Success(fmt.Sprintf("Task status now updated to %q (ID: %s)", status, joinIDs(ids)))
	return nil
}

// fail reports a user-facing failure. missing is the message used for
// ErrMissingArgument in the calling operation's context. Errors that are
// not caused by user input are returned as they are.
func (c *Commands) fail(err error, missing string) error {
	var invalid *task.InvalidIDError
	switch {
	case errors.Is(err, task.ErrMissingArgument):
		c.out.Failure(missing)
	case errors.Is(err, task.ErrDescriptionTooLong):
		c.out.Failure(MsgDescriptionTooLong)
	case errors.Is(err, task.ErrIDsExhausted):
		c.out.Failure(MsgIDsExhausted)
	case errors.As(err, &invalid):
		c.out.Failure(invalid.Error())
	default:
		return err
	}
	c.logger.Debug("command rejected", "err", err)
	return fmt.Errorf("%w: %w", ErrFailed, err)
}

func joinIDs(ids []task.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
