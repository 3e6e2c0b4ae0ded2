package form

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dshills/crudbook/internal/book"
	"github.com/dshills/crudbook/internal/changes"
	"github.com/dshills/crudbook/internal/record"
	"github.com/dshills/crudbook/internal/render"
)

// Action is one entry of the session menu.
type Action int

const (
	ActionAdd Action = iota
	ActionEdit
	ActionDelete
	ActionDeleteAll
	ActionSearch
	ActionQuit
)

var actionLabels = []string{
	ActionAdd:       "Add",
	ActionEdit:      "Edit",
	ActionDelete:    "Delete",
	ActionDeleteAll: "Delete All Data",
	ActionSearch:    "Search",
	ActionQuit:      "Quit",
}

// Session is the interactive equivalent of the form-and-table screen: it
// shows the table, then runs the chosen action, until the user quits.
type Session struct {
	Book   *book.Book
	Driver Driver
	Out    io.Writer
	Logger *zap.Logger
}

// Run loops until Quit or until the driver is aborted. An abort ends the
// session without error.
func (s *Session) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	table, err := render.NewRenderer("table")
	if err != nil {
		return err
	}

	for {
		if err := s.show(table); err != nil {
			return err
		}
		idx, err := s.Driver.Select(ctx, SelectConfig{Message: "Action:", Options: actionLabels})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := s.dispatch(ctx, Action(idx))
		switch {
		case errors.Is(err, ErrAborted):
			return nil
		case errors.Is(err, book.ErrDeclined):
			fmt.Fprintln(s.Out, "Cancelled.")
		case errors.Is(err, book.ErrInvalid):
			fmt.Fprintln(s.Out, "Not saved.")
		case errors.Is(err, book.ErrNoRecord):
			fmt.Fprintln(s.Out, render.ErrorStyle.Render(err.Error()))
		case err != nil:
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *Session) show(table render.Renderer) error {
	if msg, ok := s.Book.Banner(); ok {
		fmt.Fprintln(s.Out, render.BannerStyle.Render(msg))
	}
	if term := s.Book.SearchTerm(); term != "" {
		fmt.Fprintf(s.Out, "Search: %s\n", term)
	}
	out, err := table.Render(render.FromBook(s.Book))
	if err != nil {
		return err
	}
	_, err = s.Out.Write(out)
	return err
}

func (s *Session) dispatch(ctx context.Context, a Action) (bool, error) {
	s.Logger.Debug("session action", zap.Int("action", int(a)))
	switch a {
	case ActionAdd:
		s.Book.CancelEdit()
		_, err := Fill(ctx, s.Book, s.Driver, s.Out)
		return false, err

	case ActionEdit:
		r, err := s.pick(ctx, "Edit which row (Index No or ID)?")
		if err != nil {
			return false, err
		}
		if err := s.Book.Edit(r.ID); err != nil {
			return false, err
		}
		saved, err := Fill(ctx, s.Book, s.Driver, s.Out)
		if err != nil {
			s.Book.CancelEdit()
			return false, err
		}
		return false, changes.Write(s.Out, changes.Describe(saved.Previous, saved.Record))

	case ActionDelete:
		r, err := s.pick(ctx, "Delete which row (Index No or ID)?")
		if err != nil {
			return false, err
		}
		if _, err := s.Book.Delete(ctx, r.ID); err != nil {
			return false, err
		}
		fmt.Fprintf(s.Out, "Deleted %s\n", describe(r))
		return false, nil

	case ActionDeleteAll:
		return false, s.Book.DeleteAll(ctx)

	case ActionSearch:
		term, err := s.Driver.Input(ctx, InputConfig{
			Message: "Search here...",
			Default: s.Book.SearchTerm(),
			Help:    "leave blank to show every record",
		})
		if err != nil {
			return false, err
		}
		s.Book.Search(term)
		return false, nil

	case ActionQuit:
		return true, nil
	}
	return false, fmt.Errorf("unknown action %d", a)
}

func (s *Session) pick(ctx context.Context, message string) (record.Record, error) {
	ref, err := s.Driver.Input(ctx, InputConfig{Message: message})
	if err != nil {
		return record.Record{}, err
	}
	return s.Book.FindInView(ref)
}
