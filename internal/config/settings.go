package config

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/gapedit/internal/engine/text"
)

// Settings is the validated, typed form of the configuration.
type Settings struct {
	Buffer BufferSettings
	Editor EditorSettings
	Script ScriptSettings
	Bench  BenchSettings
}

// BufferSettings configures the gap buffer behind every text.
type BufferSettings struct {
	GrowIncrement int
	Pooled        bool
}

// EditorSettings configures editing behavior.
type EditorSettings struct {
	TabWidth int
	// DetectLineEnding is set when lineEnding is "auto"; LineEnding is
	// then only the fallback for empty files.
	DetectLineEnding bool
	LineEnding       text.LineEnding
	// Normalize is false when normalize is "none".
	Normalize      bool
	Form           norm.Form
	MaxUndo        int
	CoalesceWindow time.Duration
}

// ScriptSettings limits Lua scripts.
type ScriptSettings struct {
	InstructionLimit int
	Timeout          time.Duration
}

// BenchSettings configures gapbench workloads.
type BenchSettings struct {
	Operations int
	Seed       int64
	Locality   float64
}

// Settings validates the configuration and returns it typed. All
// validation failures are reported together.
func (c *Config) Settings() (Settings, error) {
	c.mu.RLock()
	doc := c.doc
	c.mu.RUnlock()

	v := validator{doc: doc}
	var s Settings

	s.Buffer.GrowIncrement = int(v.intRange("buffer.growIncrement", 1, 1<<24))
	s.Buffer.Pooled = v.bool("buffer.pooled")

	s.Editor.TabWidth = int(v.intRange("editor.tabWidth", 1, 32))
	switch le := v.string("editor.lineEnding"); le {
	case "auto":
		s.Editor.DetectLineEnding = true
	default:
		parsed, ok := text.ParseLineEnding(le)
		if !ok {
			v.fail("editor.lineEnding", "want auto, lf, crlf or cr")
		}
		s.Editor.LineEnding = parsed
	}
	switch form := strings.ToLower(v.string("editor.normalize")); form {
	case "none", "":
	case "nfc":
		s.Editor.Normalize, s.Editor.Form = true, norm.NFC
	case "nfd":
		s.Editor.Normalize, s.Editor.Form = true, norm.NFD
	case "nfkc":
		s.Editor.Normalize, s.Editor.Form = true, norm.NFKC
	case "nfkd":
		s.Editor.Normalize, s.Editor.Form = true, norm.NFKD
	default:
		v.fail("editor.normalize", "want none, nfc, nfd, nfkc or nfkd")
	}
	s.Editor.MaxUndo = int(v.intRange("editor.maxUndo", 1, 1<<20))
	s.Editor.CoalesceWindow = v.duration("editor.coalesceWindow")

	s.Script.InstructionLimit = int(v.intRange("script.instructionLimit", 0, math.MaxInt32))
	s.Script.Timeout = v.duration("script.timeout")

	s.Bench.Operations = int(v.intRange("bench.operations", 1, 1<<30))
	s.Bench.Seed = v.intRange("bench.seed", math.MinInt64, math.MaxInt64)
	s.Bench.Locality = v.float("bench.locality", 0, 1)

	return s, errors.Join(v.errs...)
}

// validator reads typed values out of a JSON document and collects
// errors instead of stopping at the first.
type validator struct {
	doc  []byte
	errs []error
}

func (v *validator) get(path string) gjson.Result {
	return gjson.GetBytes(v.doc, path)
}

func (v *validator) fail(path, msg string) {
	v.errs = append(v.errs, &ValidationError{Path: path, Value: v.get(path).Raw, Message: msg})
}

func (v *validator) intRange(path string, lo, hi int64) int64 {
	r := v.get(path)
	if r.Type != gjson.Number || r.Float() != float64(r.Int()) {
		v.fail(path, "want an integer")
		return 0
	}
	n := r.Int()
	if n < lo || n > hi {
		v.fail(path, "out of range")
	}
	return n
}

func (v *validator) float(path string, lo, hi float64) float64 {
	r := v.get(path)
	if r.Type != gjson.Number {
		v.fail(path, "want a number")
		return 0
	}
	f := r.Float()
	if f < lo || f > hi {
		v.fail(path, "out of range")
	}
	return f
}

func (v *validator) bool(path string) bool {
	r := v.get(path)
	if !r.IsBool() {
		v.fail(path, "want true or false")
		return false
	}
	return r.Bool()
}

func (v *validator) string(path string) string {
	r := v.get(path)
	if r.Type != gjson.String {
		v.fail(path, "want a string")
		return ""
	}
	return r.Str
}

func (v *validator) duration(path string) time.Duration {
	d, err := duration(path, v.get(path))
	if err != nil {
		v.errs = append(v.errs, err)
		return 0
	}
	if d < 0 {
		v.fail(path, "must not be negative")
	}
	return d
}
