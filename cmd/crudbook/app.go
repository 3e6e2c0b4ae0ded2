package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/crudbook/internal/book"
	"github.com/dshills/crudbook/internal/config"
	"github.com/dshills/crudbook/internal/confirm"
	"github.com/dshills/crudbook/internal/form"
	"github.com/dshills/crudbook/internal/logging"
	"github.com/dshills/crudbook/internal/redact"
	"github.com/dshills/crudbook/internal/storage"
)

// app is everything a command needs once configuration is resolved.
type app struct {
	ctx    context.Context
	book   *book.Book
	store  storage.Store
	logger *zap.Logger
	driver form.Driver
	out    io.Writer
	errOut io.Writer
}

// close releases the book and the store. It is safe to call twice.
func (a *app) close() {
	if a.book != nil {
		a.book.Close()
		a.book = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing store", zap.Error(err))
		}
		a.store = nil
	}
	_ = a.logger.Sync()
}

// withApp opens the app for cmd, runs fn and closes the app.
func withApp(cmd *cobra.Command, g globalFlags, fn func(a *app) error) error {
	a, err := openApp(cmd.Context(), g, form.NewSurveyDriver(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// openApp resolves configuration and opens the store and the book.
func openApp(ctx context.Context, g globalFlags, driver form.Driver, out, errOut io.Writer) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// --- Step 1: Load config, then apply flag overrides ---
	path := g.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, codeError(exitInvalid, "loading config: %s", err)
	}
	if g.store != "" {
		cfg.Storage.Backend = g.store
	}
	if g.path != "" {
		cfg.Storage.Path = g.path
	}
	if g.key != "" {
		cfg.Storage.Key = g.key
	}
	if g.yes {
		cfg.UI.AssumeYes = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, codeError(exitInvalid, "invalid config: %s", err)
	}
	bannerFor, err := cfg.BannerDuration()
	if err != nil {
		return nil, codeError(exitInvalid, "%s", err)
	}

	// --- Step 2: Logger ---
	logger, err := logging.New(cfg.Logging, g.verbose)
	if err != nil {
		return nil, codeError(exitInvalid, "%s", err)
	}

	// --- Step 3: Store ---
	logger.Debug("opening store",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("path", cfg.Storage.Path),
		zap.String("key", cfg.Storage.Key))
	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, codeError(exitStorage, "opening store: %s", err)
	}

	// --- Step 4: Book ---
	var confirmer confirm.Confirmer = form.Confirmer{Driver: driver}
	if cfg.UI.AssumeYes {
		confirmer = confirm.Static(true)
	}
	b, err := book.Open(ctx, store,
		book.WithKey(cfg.Storage.Key),
		book.WithConfirmer(confirmer),
		book.WithLogger(logger),
		book.WithBannerDuration(bannerFor),
	)
	if err != nil {
		store.Close()
		return nil, codeError(exitStorage, "%s", err)
	}
	if w := b.LoadWarning(); w != nil {
		fmt.Fprintf(errOut, "WARN: stored records could not be read and were ignored: %s\n", redact.Redact(w.Error()))
	}

	return &app{
		ctx:    ctx,
		book:   b,
		store:  store,
		logger: logger,
		driver: driver,
		out:    out,
		errOut: errOut,
	}, nil
}

// commandError maps book and prompt errors to exit codes.
func commandError(err error) error {
	var ee *exitErr
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ee):
		return err
	case errors.Is(err, book.ErrDeclined), errors.Is(err, form.ErrAborted):
		return codeError(exitDeclined, "cancelled")
	case errors.Is(err, book.ErrInvalid), errors.Is(err, book.ErrNoRecord):
		return codeError(exitInvalid, "%s", err)
	default:
		return codeError(exitStorage, "%s", err)
	}
}
