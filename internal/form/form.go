// Package form drives the record form and the interactive session on a
// terminal.
package form

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dshills/crudbook/internal/book"
	"github.com/dshills/crudbook/internal/record"
	"github.com/dshills/crudbook/internal/render"
)

// MsgRetry is asked after a rejected submit.
const MsgRetry = "Fix the errors and try again?"

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitize strips any markup from free-text input. Entities are decoded
// again so plain characters such as '&' survive unchanged.
func Sanitize(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(textPolicy.Sanitize(raw))
}

// Fill prompts for every field, using the current draft as defaults, and
// submits. Field errors are printed to out and, if the user agrees, the
// fields are asked again until the submit succeeds. In edit mode a blank
// password keeps the stored one.
func Fill(ctx context.Context, b *book.Book, d Driver, out io.Writer) (book.Saved, error) {
	for {
		if err := ask(ctx, b, d); err != nil {
			return book.Saved{}, err
		}

		saved, err := b.Submit(ctx)
		if err == nil {
			return saved, nil
		}
		var ve *book.ValidationError
		if !errors.As(err, &ve) {
			return book.Saved{}, err
		}
		writeErrors(out, ve.Errors)

		again, err := d.Confirm(ctx, MsgRetry, true)
		if err != nil {
			return book.Saved{}, err
		}
		if !again {
			return book.Saved{}, ve
		}
	}
}

func ask(ctx context.Context, b *book.Book, d Driver) error {
	editing := b.Editing() != ""
	errs := b.Errors()
	draft := b.Draft()

	for _, f := range record.Fields {
		cfg := InputConfig{
			Message: f.Label() + ":",
			Default: draft.Get(f),
			Help:    errs[f],
		}
		if f == record.FieldPassword {
			cfg.Default = ""
			if editing {
				cfg.Help = "leave blank to keep the current password"
			}
			v, err := d.Password(ctx, cfg)
			if err != nil {
				return err
			}
			if v == "" && editing {
				continue
			}
			b.SetField(f, v)
			continue
		}

		v, err := d.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if f == record.FieldName {
			v = Sanitize(v)
		}
		b.SetField(f, v)
	}
	return nil
}

func writeErrors(out io.Writer, errs record.Errors) {
	for _, f := range errs.Fields() {
		fmt.Fprintln(out, render.ErrorStyle.Render(fmt.Sprintf("%s: %s", f.Label(), errs[f])))
	}
}

// describe formats a record for one-line status output.
func describe(r record.Record) string {
	return strings.Join([]string{r.Name, r.Contact, r.Email, r.Age}, ", ")
}
