package store

import (
	"fmt"
	"strings"
)

// Store is the ordered, in-memory task list of one session. Insertion order
// is display order; indices are 0-based.
type Store struct {
	tasks []Task
}

// New returns a store holding copies of tasks, in order.
func New(tasks ...Task) *Store {
	s := &Store{tasks: make([]Task, 0, len(tasks))}
	for _, t := range tasks {
		s.tasks = append(s.tasks, t.clone())
	}
	return s
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the task list.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.clone()
	}
	return out
}

func (s *Store) Task(i int) (Task, error) {
	if err := s.checkIndex(i); err != nil {
		return Task{}, err
	}
	return s.tasks[i].clone(), nil
}

// Add appends t. A task without body lines is rejected with ErrBlank, and a
// task whose priority, date or time could not be saved is rejected with the
// matching parse error. Either way the store is left unchanged.
func (s *Store) Add(t Task) error {
	t.Lines = cleanLines(t.Lines)
	if len(t.Lines) == 0 {
		return ErrBlank
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, string(t.Priority))
	}
	if !t.Date.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.Date.String())
	}
	if !t.Time.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTime, t.Time.String())
	}
	s.tasks = append(s.tasks, t.clone())
	return nil
}

// Edit replaces one field of a task.
type Edit struct {
	Field    Field
	Priority Priority
	Date     Date
	Time     Clock
	Lines    []string
}

// Edit applies e to the task at i. When the edit leaves the task without
// body lines the task is removed and removed is true.
func (s *Store) Edit(i int, e Edit) (removed bool, err error) {
	if err := s.checkIndex(i); err != nil {
		return false, err
	}
	t := &s.tasks[i]
	switch e.Field {
	case FieldPriority:
		if !e.Priority.Valid() {
			return false, fmt.Errorf("%w: %q", ErrInvalidPriority, string(e.Priority))
		}
		t.Priority = e.Priority
	case FieldDate:
		if !e.Date.Valid() {
			return false, fmt.Errorf("%w: %q", ErrInvalidDate, e.Date.String())
		}
		t.Date = e.Date
	case FieldTime:
		if !e.Time.Valid() {
			return false, fmt.Errorf("%w: %q", ErrInvalidTime, e.Time.String())
		}
		t.Time = e.Time
	case FieldTask:
		t.Lines = cleanLines(e.Lines)
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidField, string(e.Field))
	}
	if len(t.Lines) == 0 {
		s.remove(i)
		return true, nil
	}
	return false, nil
}

// Delete removes the task at i.
func (s *Store) Delete(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.remove(i)
	return nil
}

func (s *Store) remove(i int) {
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
}

func (s *Store) checkIndex(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i+1)
	}
	return nil
}

func cleanLines(in []string) []string {
	var out []string
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
