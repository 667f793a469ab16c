package app

import (
	"github.com/dshills/gapedit/internal/renderer/backend"
	"github.com/dshills/gapedit/internal/watcher"
)

// watch starts watching the document's file. Changes made by other
// programs show on the status line; the buffer is left as it is.
func (app *Application) watch(b backend.Backend) (*watcher.FileWatcher, error) {
	w, err := watcher.WatchFile(app.doc.Path)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				if !app.doc.ChangedOnDisk() {
					continue
				}
				app.logger.Info("file changed on disk", "path", ev.Path, "op", ev.Op.String())
				app.view.SetMessage("file changed on disk")
				b.PostEvent(backend.Event{Type: backend.EventInterrupt})
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				app.logger.Warn("file watch error", "error", err)
			}
		}
	}()
	return w, nil
}
