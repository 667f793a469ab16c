package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/gapedit/internal/config"
	"github.com/dshills/gapedit/internal/engine"
	"github.com/dshills/gapedit/internal/engine/gap"
	"github.com/dshills/gapedit/internal/engine/text"
)

// Document is a file with the engine editing it.
type Document struct {
	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Engine is the text buffer and editing engine.
	Engine *engine.Engine

	// saved is the engine revision last written to or read from Path.
	saved atomic.Uint64

	mu   sync.Mutex
	disk diskState
}

// diskState is what the file on disk looked like when last read or written.
type diskState struct {
	exists  bool
	modTime time.Time
	size    int64
}

func (s diskState) equal(o diskState) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

func statFile(path string) (diskState, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return diskState{}, nil
	}
	if err != nil {
		return diskState{}, err
	}
	return diskState{exists: true, modTime: info.ModTime(), size: info.Size()}, nil
}

// OpenDocument reads path into a new document configured by s. A path
// that does not exist yet opens as an empty document saved to path later.
func OpenDocument(path string, s config.Settings, readOnly bool) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}

	opts := EngineOptions(s, string(content))
	if readOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	doc := &Document{
		Path:   path,
		Name:   filepath.Base(path),
		Engine: engine.New(opts...),
	}
	doc.markSaved()
	doc.disk, _ = statFile(path)
	return doc, nil
}

// NewScratchDocument creates a new scratch (unsaved) document.
func NewScratchDocument(s config.Settings) *Document {
	doc := &Document{
		Name:   "Untitled",
		Engine: engine.New(EngineOptions(s, "")...),
	}
	doc.markSaved()
	return doc
}

// EngineOptions translates settings into engine options for a document
// whose initial content is content.
func EngineOptions(s config.Settings, content string) []engine.Option {
	textOpts := []text.Option{text.WithGrowIncrement(s.Buffer.GrowIncrement)}
	if s.Buffer.Pooled {
		textOpts = append(textOpts, text.WithAllocator(gap.NewPoolAllocator[rune]()))
	}
	if s.Editor.Normalize {
		textOpts = append(textOpts, text.WithNormalization(s.Editor.Form))
	}

	ending := s.Editor.LineEnding
	if s.Editor.DetectLineEnding && strings.ContainsAny(content, "\r\n") {
		ending = text.DetectLineEnding(content)
	}

	return []engine.Option{
		engine.WithContent(content),
		engine.WithTabWidth(s.Editor.TabWidth),
		engine.WithLineEnding(ending),
		engine.WithTextOptions(textOpts...),
		engine.WithMaxUndoEntries(s.Editor.MaxUndo),
		engine.WithCoalesceWindow(s.Editor.CoalesceWindow),
	}
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return uint64(d.Engine.Revision()) != d.saved.Load()
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

func (d *Document) markSaved() {
	d.saved.Store(uint64(d.Engine.Revision()))
}

// Save writes the document to its path through a temporary file in the
// same directory, so a failed write leaves the old file intact.
func (d *Document) Save() (int64, error) {
	if d.IsScratch() {
		return 0, ErrNoFilePath
	}

	rev := d.Engine.Revision()
	tmp, err := os.CreateTemp(filepath.Dir(d.Path), "."+filepath.Base(d.Path)+".*")
	if err != nil {
		return 0, &FileError{Op: "save", Path: d.Path, Err: err}
	}
	n, err := d.Engine.WriteTo(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = keepMode(d.Path, tmp.Name())
	}
	if err == nil {
		err = os.Rename(tmp.Name(), d.Path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return 0, &FileError{Op: "save", Path: d.Path, Err: err}
	}

	d.saved.Store(uint64(rev))
	st, _ := statFile(d.Path)
	d.mu.Lock()
	d.disk = st
	d.mu.Unlock()
	return n, nil
}

// ChangedOnDisk reports whether the file at Path was modified, created or
// removed by someone else since the document last read or wrote it.
func (d *Document) ChangedOnDisk() bool {
	if d.IsScratch() {
		return false
	}
	st, err := statFile(d.Path)
	if err != nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return !st.equal(d.disk)
}

// keepMode gives tmp the permissions of an existing file at path.
func keepMode(path, tmp string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return os.Chmod(tmp, 0o644)
	}
	if err != nil {
		return err
	}
	return os.Chmod(tmp, info.Mode().Perm())
}
