package task

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusCompleted}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses(), s)
}

// ID identifies a task within the collection.
type ID int

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

// ParseID parses a task ID from its textual form.
// Only positive base-10 integers are accepted.
func ParseID(s string) (ID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, &InvalidIDError{IDs: []string{s}}
	}
	return ID(n), nil
}

// DateLayout is the on-disk layout of task dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time-of-day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in DateLayout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task represents a single task in the collection.
type Task struct {
	ID          ID     `json:"id"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Created     Date   `json:"created"`
	Updated     Date   `json:"updated"`
}
