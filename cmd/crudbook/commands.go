package main

import (
	"errors"
	"fmt"

	"github.com/dshills/crudbook/internal/book"
	"github.com/dshills/crudbook/internal/changes"
	"github.com/dshills/crudbook/internal/form"
	"github.com/dshills/crudbook/internal/record"
	"github.com/dshills/crudbook/internal/render"
)

func runAdd(a *app, rf *recordFlags) error {
	a.book.CancelEdit()
	for _, f := range record.Fields {
		v := *rf.values[f]
		if f == record.FieldName {
			v = form.Sanitize(v)
		}
		a.book.SetField(f, v)
	}
	if !rf.set[record.FieldPassword] {
		pw, err := a.driver.Password(a.ctx, form.InputConfig{Message: record.FieldPassword.Label() + ":"})
		if err != nil {
			return commandError(err)
		}
		a.book.SetField(record.FieldPassword, pw)
	}
	return submit(a)
}

func runEdit(a *app, ref string, rf *recordFlags) error {
	r, err := a.book.Find(ref)
	if err != nil {
		return commandError(err)
	}
	if err := a.book.Edit(r.ID); err != nil {
		return commandError(err)
	}
	changed := false
	for _, f := range record.Fields {
		if !rf.set[f] {
			continue
		}
		v := *rf.values[f]
		if f == record.FieldName {
			v = form.Sanitize(v)
		}
		a.book.SetField(f, v)
		changed = true
	}
	if !changed {
		return codeError(exitInvalid, "nothing to change: pass at least one of --name, --contact, --email, --age, --password")
	}
	return submit(a)
}

// submit saves the draft and reports the outcome the way the form does.
func submit(a *app) error {
	saved, err := a.book.Submit(a.ctx)
	var ve *book.ValidationError
	if errors.As(err, &ve) {
		for _, f := range ve.Errors.Fields() {
			fmt.Fprintf(a.errOut, "%s: %s\n", f.Label(), ve.Errors[f])
		}
		return codeError(exitInvalid, "record not saved")
	}
	if err != nil {
		return commandError(err)
	}

	if msg, ok := a.book.Banner(); ok {
		fmt.Fprintln(a.out, render.BannerStyle.Render(msg))
	}
	if saved.Updated {
		if err := changes.Write(a.out, changes.Describe(saved.Previous, saved.Record)); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(a.out, "Index No %d, ID %s\n", a.book.Len(), saved.Record.ID)
	}
	return nil
}

func runList(a *app, search, format string) error {
	renderer, err := render.NewRenderer(format)
	if err != nil {
		return codeError(exitInvalid, "invalid format: %s", err)
	}
	a.book.Search(search)
	out, err := renderer.Render(render.FromBook(a.book))
	if err != nil {
		return codeError(exitGeneric, "rendering output: %s", err)
	}
	if _, err := a.out.Write(out); err != nil {
		return codeError(exitGeneric, "writing output: %s", err)
	}
	// Ensure output ends with a newline for terminal friendliness.
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(a.out)
	}
	return nil
}

func runDelete(a *app, ref string) error {
	r, err := a.book.Find(ref)
	if err != nil {
		return commandError(err)
	}
	if _, err := a.book.Delete(a.ctx, r.ID); err != nil {
		return commandError(err)
	}
	fmt.Fprintf(a.out, "Deleted %s (%s)\n", r.Name, r.Email)
	return nil
}

func runDeleteAll(a *app) error {
	n := a.book.Len()
	if err := a.book.DeleteAll(a.ctx); err != nil {
		return commandError(err)
	}
	fmt.Fprintf(a.out, "Deleted %d record(s)\n", n)
	return nil
}

func runForm(a *app, editRef string) error {
	if editRef != "" {
		r, err := a.book.Find(editRef)
		if err != nil {
			return commandError(err)
		}
		if err := a.book.Edit(r.ID); err != nil {
			return commandError(err)
		}
	}
	saved, err := form.Fill(a.ctx, a.book, a.driver, a.errOut)
	if err != nil {
		return commandError(err)
	}
	if msg, ok := a.book.Banner(); ok {
		fmt.Fprintln(a.out, render.BannerStyle.Render(msg))
	}
	if saved.Updated {
		return changes.Write(a.out, changes.Describe(saved.Previous, saved.Record))
	}
	return nil
}

func runInteractive(a *app) error {
	s := &form.Session{Book: a.book, Driver: a.driver, Out: a.out, Logger: a.logger}
	return commandError(s.Run(a.ctx))
}
