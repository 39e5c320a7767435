package task

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/task-cli/internal/logging"
)

type recordingSaver struct {
	saves [][]Task
	err   error
}

func (r *recordingSaver) Save(tasks []Task) error {
	if r.err != nil {
		return r.err
	}
	snapshot := make([]Task, len(tasks))
	copy(snapshot, tasks)
	r.saves = append(r.saves, snapshot)
	return nil
}

func (r *recordingSaver) last() []Task {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 15, 4, 5, 0, time.Local)
	}
}

func newTestStore(t *testing.T, snapshot []Task) (*Store, *recordingSaver) {
	t.Helper()
	saver := &recordingSaver{}
	return NewStore(snapshot, saver,
		WithClock(fixedClock(2026, time.October, 18)),
		WithLogger(logging.Discard()),
	), saver
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	s, saver := newTestStore(t, nil)

	first, err := s.Add("buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	want := Task{
		ID:          1,
		Description: "buy milk",
		Status:      StatusTodo,
		Created:     Date{2026, time.October, 18},
		Updated:     Date{2026, time.October, 18},
	}
	if first != want {
		t.Errorf("first task: got %+v, want %+v", first, want)
	}

	second, err := s.Add("walk dog")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second ID: got %d, want 2", second.ID)
	}
	if len(saver.saves) != 2 {
		t.Errorf("saves: got %d, want 2", len(saver.saves))
	}
	if got := saver.last(); len(got) != 2 || got[1].Description != "walk dog" {
		t.Errorf("last save: got %+v", got)
	}
}

func TestAddDoesNotReuseIDsAfterDelete(t *testing.T) {
	s, _ := newTestStore(t, nil)
	for _, d := range []string{"one", "two", "three"} {
		if _, err := s.Add(d); err != nil {
			t.Fatalf("Add(%q) failed: %v", d, err)
		}
	}

	if err := s.Delete([]ID{1, 2}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	next, err := s.Add("four")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if next.ID != 4 {
		t.Errorf("ID after delete: got %d, want 4", next.ID)
	}
}

func TestAddUsesHighestIDWhenUnordered(t *testing.T) {
	s, _ := newTestStore(t, []Task{
		{ID: 7, Description: "seven", Status: StatusTodo},
		{ID: 3, Description: "three", Status: StatusTodo},
	})

	got, err := s.Add("next")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got.ID != 8 {
		t.Errorf("ID: got %d, want 8", got.ID)
	}
}

func TestAddFailsWhenIDsExhausted(t *testing.T) {
	s, saver := newTestStore(t, []Task{
		{ID: 3, Description: "low", Status: StatusTodo},
		{ID: math.MaxInt, Description: "last", Status: StatusTodo},
	})

	got, err := s.Add("overflow")
	if !errors.Is(err, ErrIDsExhausted) {
		t.Fatalf("Add: got %+v, %v; want ErrIDsExhausted", got, err)
	}
	if len(saver.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(saver.saves))
	}
	if s.Len() != 2 {
		t.Errorf("len: got %d, want 2", s.Len())
	}
	for _, task := range s.Tasks() {
		if task.ID < 1 {
			t.Errorf("non-positive id %d in collection", task.ID)
		}
	}
}

func TestDescriptionLimitBoundary(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		length  int
		wantErr error
	}{
		{"default width at limit", 80, 53, ErrDescriptionTooLong},
		{"default width below limit", 80, 52, nil},
		{"wide terminal at limit", 120, 93, ErrDescriptionTooLong},
		{"wide terminal below limit", 120, 92, nil},
		{"zero width falls back to default", 0, 53, ErrDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil, &recordingSaver{}, WithDescriptionLimit(DescriptionLimit(tt.width)))
			_, err := s.Add(strings.Repeat("x", tt.length))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Add(len=%d): got %v, want %v", tt.length, err, tt.wantErr)
			}
		})
	}
}

func TestDescriptionWidthCountsColumns(t *testing.T) {
	s := NewStore(nil, &recordingSaver{}, WithDescriptionLimit(5))

	// Four CJK runes occupy eight columns.
	if _, err := s.Add("漢字漢字"); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("wide runes: got %v, want ErrDescriptionTooLong", err)
	}
	if _, err := s.Add("abcd"); err != nil {
		t.Errorf("narrow text: unexpected error %v", err)
	}
}

func TestAddRejectsBlankDescription(t *testing.T) {
	s, saver := newTestStore(t, nil)

	for _, d := range []string{"", "   "} {
		if _, err := s.Add(d); !errors.Is(err, ErrMissingArgument) {
			t.Errorf("Add(%q): got %v, want ErrMissingArgument", d, err)
		}
	}
	if len(saver.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(saver.saves))
	}
}

func TestFind(t *testing.T) {
	s, _ := newTestStore(t, []Task{
		{ID: 1, Description: "first", Status: StatusTodo},
		{ID: 2, Description: "second", Status: StatusCompleted},
	})

	got, ok := s.Find(2)
	if !ok {
		t.Fatal("Find(2) returned false")
	}
	if got.Description != "second" {
		t.Errorf("Description: got %s, want second", got.Description)
	}

	if _, ok := s.Find(9); ok {
		t.Error("Find(9) should return false")
	}
}

func TestUpdate(t *testing.T) {
	created := Date{2026, time.January, 2}
	s, saver := newTestStore(t, []Task{
		{ID: 1, Description: "old", Status: StatusInProgress, Created: created, Updated: created},
	})

	got, err := s.Update(1, "new")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Description != "new" {
		t.Errorf("Description: got %s, want new", got.Description)
	}
	if got.Status != StatusInProgress {
		t.Errorf("Status: got %s, want in-progress", got.Status)
	}
	if got.Created != created {
		t.Errorf("Created: got %s, want %s", got.Created, created)
	}
	if got.Updated != (Date{2026, time.October, 18}) {
		t.Errorf("Updated: got %s, want 2026-10-18", got.Updated)
	}
	if len(saver.saves) != 1 {
		t.Errorf("saves: got %d, want 1", len(saver.saves))
	}
}

func TestUpdateUnknownID(t *testing.T) {
	original := []Task{{ID: 1, Description: "keep", Status: StatusTodo}}
	s, saver := newTestStore(t, original)

	_, err := s.Update(5, "changed")
	var invalid *InvalidIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("Update(5): got %v, want InvalidIDError", err)
	}
	if !reflect.DeepEqual(invalid.IDs, []string{"5"}) {
		t.Errorf("invalid IDs: got %v, want [5]", invalid.IDs)
	}
	if !reflect.DeepEqual(s.Tasks(), original) {
		t.Errorf("collection changed: %+v", s.Tasks())
	}
	if len(saver.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(saver.saves))
	}
}

func TestUpdateTooLong(t *testing.T) {
	s := NewStore([]Task{{ID: 1, Description: "short", Status: StatusTodo}}, &recordingSaver{}, WithDescriptionLimit(10))

	if _, err := s.Update(1, strings.Repeat("y", 10)); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("Update: got %v, want ErrDescriptionTooLong", err)
	}
	if got, _ := s.Find(1); got.Description != "short" {
		t.Errorf("Description changed to %q", got.Description)
	}
}

func TestDeleteBatchIsAllOrNothing(t *testing.T) {
	original := []Task{
		{ID: 1, Description: "one", Status: StatusTodo},
		{ID: 2, Description: "two", Status: StatusTodo},
	}
	s, saver := newTestStore(t, original)

	err := s.Delete([]ID{1, 9})
	var invalid *InvalidIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("Delete: got %v, want InvalidIDError", err)
	}
	if !reflect.DeepEqual(invalid.IDs, []string{"9"}) {
		t.Errorf("invalid IDs: got %v, want [9]", invalid.IDs)
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
	if len(saver.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(saver.saves))
	}
}

func TestDeleteReportsAllInvalidIDs(t *testing.T) {
	s, _ := newTestStore(t, []Task{{ID: 1, Description: "one", Status: StatusTodo}})

	err := s.Delete([]ID{4, 1, 6, 4})
	var invalid *InvalidIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("Delete: got %v, want InvalidIDError", err)
	}
	if got := invalid.Error(); got != "Invalid IDs: 4, 6" {
		t.Errorf("Error(): got %q", got)
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	s, saver := newTestStore(t, []Task{
		{ID: 1, Description: "one", Status: StatusTodo},
		{ID: 2, Description: "two", Status: StatusTodo},
		{ID: 3, Description: "three", Status: StatusTodo},
		{ID: 4, Description: "four", Status: StatusTodo},
	})

	if err := s.Delete([]ID{3, 1, 3}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var ids []ID
	for _, task := range s.Tasks() {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []ID{2, 4}) {
		t.Errorf("remaining IDs: got %v, want [2 4]", ids)
	}
	if len(saver.saves) != 1 {
		t.Errorf("saves: got %d, want 1", len(saver.saves))
	}
}

func TestDeleteAll(t *testing.T) {
	s, saver := newTestStore(t, []Task{
		{ID: 1, Description: "one", Status: StatusTodo},
		{ID: 2, Description: "two", Status: StatusTodo},
	})

	if err := s.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	if got := saver.last(); got == nil || len(got) != 0 {
		t.Errorf("saved collection: got %#v, want empty non-nil slice", got)
	}
}

func TestSetStatusTouchesOnlyTargets(t *testing.T) {
	old := Date{2026, time.March, 1}
	s, _ := newTestStore(t, []Task{
		{ID: 1, Description: "one", Status: StatusTodo, Created: old, Updated: old},
		{ID: 2, Description: "two", Status: StatusTodo, Created: old, Updated: old},
		{ID: 3, Description: "three", Status: StatusTodo, Created: old, Updated: old},
	})

	if err := s.SetStatus([]ID{1, 3}, StatusCompleted); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	today := Date{2026, time.October, 18}
	for _, task := range s.Tasks() {
		targeted := task.ID == 1 || task.ID == 3
		switch {
		case targeted && (task.Status != StatusCompleted || task.Updated != today):
			t.Errorf("task %d: got status %s updated %s", task.ID, task.Status, task.Updated)
		case !targeted && (task.Status != StatusTodo || task.Updated != old):
			t.Errorf("untargeted task %d changed: %+v", task.ID, task)
		}
		if task.Created != old {
			t.Errorf("task %d created changed to %s", task.ID, task.Created)
		}
	}
}

func TestSetStatusInvalidBatch(t *testing.T) {
	s, saver := newTestStore(t, []Task{{ID: 1, Description: "one", Status: StatusTodo}})

	if err := s.SetStatus([]ID{1, 2}, StatusInProgress); !IsInvalidID(err) {
		t.Fatalf("SetStatus: got %v, want InvalidIDError", err)
	}
	if got, _ := s.Find(1); got.Status != StatusTodo {
		t.Errorf("status changed to %s", got.Status)
	}
	if len(saver.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(saver.saves))
	}
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	s, _ := newTestStore(t, []Task{{ID: 1, Description: "one", Status: StatusTodo}})

	if err := s.SetStatus([]ID{1}, Status("blocked")); err == nil {
		t.Error("SetStatus with unknown status should return error")
	}
}

func TestResolve(t *testing.T) {
	s, _ := newTestStore(t, []Task{
		{ID: 1, Description: "one", Status: StatusTodo},
		{ID: 2, Description: "two", Status: StatusTodo},
	})

	tests := []struct {
		name        string
		raw         []string
		want        []ID
		wantInvalid []string
		wantErr     error
	}{
		{name: "single", raw: []string{"2"}, want: []ID{2}},
		{name: "duplicates collapse", raw: []string{"1", "2", "1", "01"}, want: []ID{1, 2}},
		{name: "unknown id", raw: []string{"1", "5"}, wantInvalid: []string{"5"}},
		{name: "not a number", raw: []string{"abc", "2", "-1", "abc"}, wantInvalid: []string{"abc", "-1"}},
		{name: "empty", raw: nil, wantErr: ErrMissingArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.raw)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got %v, want %v", err, tt.wantErr)
				}
			case tt.wantInvalid != nil:
				var invalid *InvalidIDError
				if !errors.As(err, &invalid) {
					t.Fatalf("got %v, want InvalidIDError", err)
				}
				if !reflect.DeepEqual(invalid.IDs, tt.wantInvalid) {
					t.Errorf("invalid: got %v, want %v", invalid.IDs, tt.wantInvalid)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFailedSaveLeavesStoreUnchanged(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	s := NewStore([]Task{{ID: 1, Description: "one", Status: StatusTodo}}, saver)

	if _, err := s.Add("two"); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Add: got %v, want save error", err)
	}
	if err := s.SetStatus([]ID{1}, StatusCompleted); err == nil {
		t.Error("SetStatus should surface save error")
	}
	if err := s.DeleteAll(); err == nil {
		t.Error("DeleteAll should surface save error")
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
	if got, _ := s.Find(1); got.Status != StatusTodo {
		t.Errorf("Status: got %s, want todo", got.Status)
	}
}

func TestWorkedExample(t *testing.T) {
	s, _ := newTestStore(t, nil)

	if _, err := s.Add("buy milk"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add("walk dog"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetStatus([]ID{1}, StatusCompleted); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Find(2); got.Status != StatusTodo {
		t.Errorf("task 2 status: got %s, want todo", got.Status)
	}

	ids, err := s.Resolve([]string{"2"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ids); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}

	_, err = s.Resolve([]string{"5"})
	if err == nil || err.Error() != "Invalid ID: 5" {
		t.Errorf("Resolve(5): got %v, want Invalid ID: 5", err)
	}
	if got := s.Tasks(); len(got) != 1 || got[0].ID != 1 || got[0].Status != StatusCompleted {
		t.Errorf("collection: got %+v", got)
	}
}
