package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/amirbrooks/tasklist/internal/prompt"
	"github.com/amirbrooks/tasklist/internal/render"
	"github.com/amirbrooks/tasklist/internal/store"
)

const (
	msgAction        = "Input an action (add, print, edit, delete, end):"
	msgInvalidAction = "The input action is invalid"
	msgExit          = "Tasklist exiting!"
	msgPriority      = "Input the task priority (C, H, N, L):"
	msgDate          = "Input the date (yyyy-mm-dd):"
	msgInvalidDate   = "The input date is invalid"
	msgTime          = "Input the time (hh:mm):"
	msgInvalidTime   = "The input time is invalid"
	msgLines         = "Input a new task (enter a blank line to end):"
	msgBlank         = "The task is blank"
	msgNoTasks       = "No tasks have been input"
	msgField         = "Input a field to edit (priority, date, time, task):"
	msgInvalidField  = "Invalid field"
	msgInvalidIndex  = "Invalid task number"
	msgChanged       = "The task is changed"
	msgDeleted       = "The task is deleted"
)

// Session is one interactive run of the command loop over a store.
type Session struct {
	store  *store.Store
	table  *render.Table
	prompt *prompt.Prompter
	out    io.Writer
	log    *log.Logger
}

func NewSession(st *store.Store, table *render.Table, in io.Reader, out io.Writer, logger *log.Logger) *Session {
	return &Session{
		store:  st,
		table:  table,
		prompt: prompt.New(in, out),
		out:    out,
		log:    logger,
	}
}

// Run reads actions until "end" or the end of input. Invalid input never
// ends the loop; only a failing reader or writer does.
func (s *Session) Run() error {
	for {
		action, err := s.prompt.Line(msgAction)
		if err != nil {
			return s.finish(err)
		}
		switch strings.ToLower(strings.TrimSpace(action)) {
		case "add":
			err = s.add()
		case "print":
			_, err = s.print()
		case "edit":
			err = s.edit()
		case "delete":
			err = s.delete()
		case "end":
			s.prompt.Say(msgExit)
			return nil
		default:
			s.prompt.Say(msgInvalidAction)
		}
		if err != nil {
			return s.finish(err)
		}
	}
}

func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Debug("input closed, ending session")
		s.prompt.Say(msgExit)
		return nil
	}
	return err
}

func (s *Session) add() error {
	var (
		t   store.Task
		err error
	)
	if t.Priority, err = s.askPriority(); err != nil {
		return err
	}
	if t.Date, err = s.askDate(); err != nil {
		return err
	}
	if t.Time, err = s.askTime(); err != nil {
		return err
	}
	if t.Lines, err = s.prompt.Lines(msgLines); err != nil {
		return err
	}
	if err := s.store.Add(t); err != nil {
		if errors.Is(err, store.ErrBlank) {
			s.prompt.Say(msgBlank)
			return nil
		}
		return err
	}
	s.log.Debug("task added", "priority", t.Priority.Name(), "date", t.Date.String(), "count", s.store.Len())
	return nil
}

// print renders the table and reports whether there was anything to show.
func (s *Session) print() (bool, error) {
	if s.store.Len() == 0 {
		s.prompt.Say(msgNoTasks)
		return false, nil
	}
	return true, s.table.Render(s.out, s.store.Tasks())
}

func (s *Session) edit() error {
	ok, err := s.print()
	if err != nil || !ok {
		return err
	}
	i, err := s.askIndex()
	if err != nil {
		return err
	}
	field, err := prompt.Ask(s.prompt, msgField, msgInvalidField, store.ParseField)
	if err != nil {
		return err
	}
	e := store.Edit{Field: field}
	switch field {
	case store.FieldPriority:
		e.Priority, err = s.askPriority()
	case store.FieldDate:
		e.Date, err = s.askDate()
	case store.FieldTime:
		e.Time, err = s.askTime()
	case store.FieldTask:
		e.Lines, err = s.prompt.Lines(msgLines)
	}
	if err != nil {
		return err
	}
	removed, err := s.store.Edit(i, e)
	if err != nil {
		return err
	}
	if removed {
		s.log.Debug("task removed by edit", "number", i+1, "count", s.store.Len())
		s.prompt.Say(msgDeleted)
		return nil
	}
	s.log.Debug("task edited", "number", i+1, "field", string(field))
	s.prompt.Say(msgChanged)
	return nil
}

func (s *Session) delete() error {
	ok, err := s.print()
	if err != nil || !ok {
		return err
	}
	i, err := s.askIndex()
	if err != nil {
		return err
	}
	if err := s.store.Delete(i); err != nil {
		return err
	}
	s.log.Debug("task deleted", "number", i+1, "count", s.store.Len())
	s.prompt.Say(msgDeleted)
	return nil
}

func (s *Session) askPriority() (store.Priority, error) {
	return prompt.Ask(s.prompt, msgPriority, "", store.ParsePriority)
}

func (s *Session) askDate() (store.Date, error) {
	return prompt.Ask(s.prompt, msgDate, msgInvalidDate, store.ParseDate)
}

func (s *Session) askTime() (store.Clock, error) {
	return prompt.Ask(s.prompt, msgTime, msgInvalidTime, store.ParseClock)
}

func (s *Session) askIndex() (int, error) {
	n := s.store.Len()
	question := fmt.Sprintf("Input the task number (1-%d):", n)
	return prompt.Ask(s.prompt, question, msgInvalidIndex, func(in string) (int, error) {
		return store.ParseIndex(in, n)
	})
}
