package app

import (
	"errors"
	"fmt"

	"github.com/dshills/gapedit/internal/engine"
	"github.com/dshills/gapedit/internal/renderer/backend"
)

// wheelLines is how far one mouse wheel step scrolls.
const wheelLines = 3

// handleEvent processes a backend event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventMouse:
		app.handleMouse(ev)
	}
	// Resize needs no work: the view reads the size on every render.
	return nil
}

// handleKey processes keyboard input events.
func (app *Application) handleKey(ev backend.Event) error {
	if ev.Key != backend.KeyCtrlQ {
		app.quitArmed = false
	}

	e := app.doc.Engine
	switch ev.Key {
	case backend.KeyCtrlQ:
		return app.quit()
	case backend.KeyCtrlS:
		return app.save()
	case backend.KeyCtrlZ:
		return app.history(e.Undo, "undo")
	case backend.KeyCtrlY:
		return app.history(e.Redo, "redo")

	case backend.KeyLeft:
		e.MoveLeft()
	case backend.KeyRight:
		e.MoveRight()
	case backend.KeyUp:
		e.MoveUp()
	case backend.KeyDown:
		e.MoveDown()
	case backend.KeyHome:
		if ev.Mod.Has(backend.ModCtrl) {
			e.MoveToStart()
		} else {
			e.MoveHome()
		}
	case backend.KeyEnd:
		if ev.Mod.Has(backend.ModCtrl) {
			e.MoveToEnd()
		} else {
			e.MoveEnd()
		}
	case backend.KeyPageUp:
		app.page(-1)
	case backend.KeyPageDown:
		app.page(1)
	case backend.KeyEscape:
		app.view.SetMessage("")

	case backend.KeyBackspace:
		return app.edit(e.Backspace)
	case backend.KeyDelete:
		return app.edit(e.DeleteForward)
	case backend.KeyEnter:
		return app.edit(func() error { return e.InsertAtCursor("\n") })
	case backend.KeyTab:
		return app.edit(func() error { return e.InsertAtCursor("\t") })
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return nil
		}
		return app.edit(func() error { return e.InsertAtCursor(string(ev.Rune)) })
	}
	return nil
}

// handleMouse scrolls on the wheel, taking the cursor along so the view
// does not snap back on the next render.
func (app *Application) handleMouse(ev backend.Event) {
	e := app.doc.Engine
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		app.view.ScrollBy(-wheelLines)
		for range wheelLines {
			e.MoveUp()
		}
	case backend.MouseWheelDown:
		app.view.ScrollBy(wheelLines)
		for range wheelLines {
			e.MoveDown()
		}
	}
}

func (app *Application) page(dir int) {
	n := app.view.PageSize()
	app.view.ScrollBy(dir * n)
	e := app.doc.Engine
	for range n {
		if dir < 0 {
			e.MoveUp()
		} else {
			e.MoveDown()
		}
	}
}

// edit runs an editing operation and reports a read-only document on the
// status line instead of failing the loop.
func (app *Application) edit(fn func() error) error {
	err := fn()
	if errors.Is(err, engine.ErrReadOnly) {
		app.view.SetMessage("read-only")
		app.backend.Beep()
		return nil
	}
	return err
}

func (app *Application) history(fn func() error, name string) error {
	err := fn()
	if errors.Is(err, engine.ErrNothingToUndo) || errors.Is(err, engine.ErrNothingToRedo) {
		app.view.SetMessage("nothing to " + name)
		app.backend.Beep()
		return nil
	}
	return err
}

// save writes the document and reports the result on the status line.
func (app *Application) save() error {
	n, err := app.doc.Save()
	if errors.Is(err, ErrNoFilePath) {
		app.view.SetMessage("no file name")
		app.backend.Beep()
		return nil
	}
	if err != nil {
		return err
	}
	app.logger.Info("saved", "path", app.doc.Path, "bytes", n)
	app.view.SetMessage(fmt.Sprintf("wrote %d bytes", n))
	return nil
}

// quit returns ErrQuit, asking once for confirmation when there are
// unsaved changes.
func (app *Application) quit() error {
	if app.doc.IsModified() && !app.quitArmed {
		app.quitArmed = true
		app.view.SetMessage("unsaved changes, Ctrl-Q again to quit")
		return nil
	}
	return ErrQuit
}
