package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingArgument is returned when a required description or id is absent.
	ErrMissingArgument = errors.New("missing argument")
	// ErrDescriptionTooLong is returned when a description does not fit the display width.
	ErrDescriptionTooLong = errors.New("description too long")
	// ErrIDsExhausted is returned by Add when the highest id is already math.MaxInt.
	ErrIDsExhausted = errors.New("no task ids left")
)

// InvalidIDError reports every id of a request that does not name a task.
// IDs keep the textual form the caller supplied.
type InvalidIDError struct {
	IDs []string
}

func (e *InvalidIDError) Error() string {
	label := "Invalid ID"
	if len(e.IDs) > 1 {
		label = "Invalid IDs"
	}
	return fmt.Sprintf("%s: %s", label, strings.Join(e.IDs, ", "))
}

// IsInvalidID reports whether err is or wraps an *InvalidIDError.
func IsInvalidID(err error) bool {
	var target *InvalidIDError
	return errors.As(err, &target)
}
