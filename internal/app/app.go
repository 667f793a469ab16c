// Package app wires configuration, the engine, the view and a terminal
// backend into the gapedit editor and runs its event loop.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dshills/gapedit/internal/config"
	"github.com/dshills/gapedit/internal/renderer"
	"github.com/dshills/gapedit/internal/renderer/backend"
)

// Application is the editor: one document, one view, one backend.
type Application struct {
	mu sync.Mutex

	config   *config.Config
	settings config.Settings
	logger   *slog.Logger

	doc     *Document
	backend backend.Backend
	view    *renderer.View

	// quitArmed is set after Ctrl-Q on a modified document; a second
	// Ctrl-Q quits without saving.
	quitArmed bool

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigFiles are applied in order over the defaults.
	ConfigFiles []string

	// ConfigOptions are passed to config.New after the files.
	ConfigOptions []config.Option

	// Overrides are "path=value" settings applied last.
	Overrides []string

	// File is the file to edit. Empty opens a scratch buffer.
	File string

	// ReadOnly opens the file in read-only mode.
	ReadOnly bool

	// Watch reports changes made to the file by other programs.
	Watch bool

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// New loads the configuration and opens the document.
func New(ctx context.Context, opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		done:   make(chan struct{}),
		logger: opts.Logger,
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := app.bootstrap(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Config
	var cfgOpts []config.Option
	for _, f := range app.opts.ConfigFiles {
		cfgOpts = append(cfgOpts, config.WithFile(f))
	}
	cfgOpts = append(cfgOpts, app.opts.ConfigOptions...)
	app.config = config.New(cfgOpts...)
	if err := app.config.Load(ctx); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	for _, o := range app.opts.Overrides {
		if err := app.config.SetString(o); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	s, err := app.config.Settings()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.settings = s
	app.logger.Debug("config loaded", "sources", app.config.Sources())

	// 2. Document
	if app.opts.File == "" {
		app.doc = NewScratchDocument(s)
	} else {
		doc, err := OpenDocument(app.opts.File, s, app.opts.ReadOnly)
		if err != nil {
			return &InitError{Component: "document", Err: err}
		}
		app.doc = doc
	}
	app.logger.Info("document opened",
		"name", app.doc.Name,
		"runes", app.doc.Engine.Len(),
		"lines", app.doc.Engine.LineCount(),
		"readOnly", app.doc.Engine.IsReadOnly())
	return nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and processes events until the user quits,
// ctx is canceled or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.view = renderer.NewView(b, app.doc.Engine, renderer.DefaultOptions())
	app.view.SetName(app.doc.Name)

	if app.opts.Watch && !app.doc.IsScratch() {
		if w, err := app.watch(b); err != nil {
			app.logger.Warn("file watch failed", "path", app.doc.Path, "error", err)
		} else {
			defer w.Close()
		}
	}

	// Wake the blocking PollEvent when asked to stop.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-app.done:
		case <-stop:
			return
		}
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}()

	return app.eventLoop(ctx, b)
}

// eventLoop is the main application loop.
func (app *Application) eventLoop(ctx context.Context, b backend.Backend) error {
	for {
		app.render()

		ev := b.PollEvent()
		if ev.Type == backend.EventInterrupt {
			if err := ctx.Err(); err != nil {
				return err
			}
			if app.stopped() {
				return nil
			}
			continue
		}

		err := app.handleEvent(ev)
		switch {
		case errors.Is(err, ErrQuit):
			app.logger.Info("quit", "modified", app.doc.IsModified())
			return nil
		case err != nil:
			app.logger.Warn("event failed", "error", err)
			app.view.SetMessage(err.Error())
			b.Beep()
		}
	}
}

func (app *Application) render() {
	app.view.SetModified(app.doc.IsModified())
	app.view.Render()
}

func (app *Application) stopped() bool {
	select {
	case <-app.done:
		return true
	default:
		return false
	}
}

// Shutdown stops a running event loop. Safe to call more than once.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Settings returns the validated settings the document was opened with.
func (app *Application) Settings() config.Settings {
	return app.settings
}

// Document returns the document being edited.
func (app *Application) Document() *Document {
	return app.doc
}
