package task

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
)

const (
	// DefaultWidth is the display width assumed when no terminal is attached.
	DefaultWidth = 80
	// reservedColumns is the room taken by the id and status columns of the task table.
	reservedColumns = 27
)

// DescriptionLimit returns the exclusive description width limit for a
// display width. Non-positive widths fall back to DefaultWidth.
func DescriptionLimit(width int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	return width - reservedColumns
}

// Saver persists the full task collection.
type Saver interface {
	Save(tasks []Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithDescriptionLimit sets the exclusive limit on description width.
func WithDescriptionLimit(limit int) Option {
	return func(s *Store) {
		s.limit = limit
	}
}

// WithClock overrides the time source used for created/updated dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for store events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store owns the in-memory task collection. Every mutation is written
// through the Saver before it becomes visible.
type Store struct {
	tasks  []Task
	saver  Saver
	limit  int
	now    func() time.Time
	logger *log.Logger
}

// NewStore creates a store from a loaded snapshot.
func NewStore(snapshot []Task, saver Saver, opts ...Option) *Store {
	s := &Store{
		tasks:  append([]Task(nil), snapshot...),
		saver:  saver,
		limit:  DescriptionLimit(DefaultWidth),
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// DescriptionLimit returns the exclusive description width limit in use.
func (s *Store) DescriptionLimit() int {
	return s.limit
}

// ValidateDescription checks a description against the width limit.
func (s *Store) ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrMissingArgument
	}
	if runewidth.StringWidth(description) >= s.limit {
		return ErrDescriptionTooLong
	}
	return nil
}

// nextID is one past the highest id in the collection, or 1 when empty.
func (s *Store) nextID() (ID, error) {
	var max ID
	for _, t := range s.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	if max == math.MaxInt {
		return 0, ErrIDsExhausted
	}
	return max + 1, nil
}

func (s *Store) today() Date {
	return DateOf(s.now())
}

func (s *Store) index(id ID) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given id.
func (s *Store) Find(id ID) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Add appends a new todo task and persists the collection.
func (s *Store) Add(description string) (Task, error) {
	if err := s.ValidateDescription(description); err != nil {
		return Task{}, err
	}

	id, err := s.nextID()
	if err != nil {
		return Task{}, err
	}

	today := s.today()
	t := Task{
		ID:          id,
		Description: description,
		Status:      StatusTodo,
		Created:     today,
		Updated:     today,
	}

	next := append(s.Tasks(), t)
	if err := s.commit(next); err != nil {
		return Task{}, err
	}
	s.logger.Debug("task added", "id", t.ID)
	return t, nil
}

// Update replaces the description of a task and persists the collection.
func (s *Store) Update(id ID, description string) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, &InvalidIDError{IDs: []string{id.String()}}
	}
	if err := s.ValidateDescription(description); err != nil {
		return Task{}, err
	}

	next := s.Tasks()
	next[i].Description = description
	next[i].Updated = s.today()
	if err := s.commit(next); err != nil {
		return Task{}, err
	}
	s.logger.Debug("task updated", "id", id)
	return next[i], nil
}

// Delete removes every task in ids. If any id is unknown nothing is removed.
func (s *Store) Delete(ids []ID) error {
	targets, err := s.validate(ids)
	if err != nil {
		return err
	}

	next := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if _, ok := targets[t.ID]; !ok {
			next = append(next, t)
		}
	}
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Debug("tasks deleted", "count", len(targets))
	return nil
}

// DeleteAll empties the collection and persists it.
func (s *Store) DeleteAll() error {
	if err := s.commit([]Task{}); err != nil {
		return err
	}
	s.logger.Debug("all tasks deleted")
	return nil
}

// SetStatus sets the status of every task in ids. If any id is unknown
// nothing is changed.
func (s *Store) SetStatus(ids []ID, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	targets, err := s.validate(ids)
	if err != nil {
		return err
	}

	today := s.today()
	next := s.Tasks()
	for i := range next {
		if _, ok := targets[next[i].ID]; ok {
			next[i].Status = status
			next[i].Updated = today
		}
	}
	if err := s.commit(next); err != nil {
		return err
	}
	s.logger.Debug("status changed", "status", status, "count", len(targets))
	return nil
}

// Resolve parses textual ids, drops repeats, and checks each against the
// collection. All unparseable or unknown tokens are reported together.
func (s *Store) Resolve(raw []string) ([]ID, error) {
	if len(raw) == 0 {
		return nil, ErrMissingArgument
	}

	seen := make(map[ID]bool, len(raw))
	reported := make(map[string]bool)
	ids := make([]ID, 0, len(raw))
	var invalid []string
	for _, token := range raw {
		id, err := ParseID(token)
		if err != nil || s.index(id) < 0 {
			if !reported[token] {
				reported[token] = true
				invalid = append(invalid, token)
			}
			continue
		}
		if seen[id] {
			s.logger.Warn("duplicate id ignored", "id", id)
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(invalid) > 0 {
		return nil, &InvalidIDError{IDs: invalid}
	}
	return ids, nil
}

// validate checks that every id exists and returns them as a set.
func (s *Store) validate(ids []ID) (map[ID]struct{}, error) {
	if len(ids) == 0 {
		return nil, ErrMissingArgument
	}
	targets := make(map[ID]struct{}, len(ids))
	checked := make(map[ID]bool, len(ids))
	var invalid []string
	for _, id := range ids {
		if checked[id] {
			continue
		}
		checked[id] = true
		if s.index(id) < 0 {
			invalid = append(invalid, id.String())
			continue
		}
		targets[id] = struct{}{}
	}
	if len(invalid) > 0 {
		return nil, &InvalidIDError{IDs: invalid}
	}
	return targets, nil
}

// commit saves next and, on success, makes it the current collection.
func (s *Store) commit(next []Task) error {
	if s.saver != nil {
		if err := s.saver.Save(next); err != nil {
			return fmt.Errorf("save tasks: %w", err)
		}
	}
	s.tasks = next
	return nil
}
