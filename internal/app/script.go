package app

import (
	"context"
	"io"
	"time"

	"github.com/dshills/gapedit/internal/config"
	"github.com/dshills/gapedit/internal/engine"
	"github.com/dshills/gapedit/internal/plugin/lua"
)

// NewScriptState creates a Lua state limited by s and bound to e.
// print output goes to out.
func NewScriptState(s config.ScriptSettings, e *engine.Engine, out io.Writer) (*lua.State, error) {
	st, err := lua.NewState(
		lua.WithInstructionLimit(int64(s.InstructionLimit)),
		lua.WithExecutionTimeout(s.Timeout),
		lua.WithOutput(out),
	)
	if err != nil {
		return nil, err
	}
	lua.BindEngine(st, e)
	return st, nil
}

// RunScript runs the Lua file at path against the document.
func (app *Application) RunScript(ctx context.Context, path string, out io.Writer) error {
	st, err := NewScriptState(app.settings.Script, app.doc.Engine, out)
	if err != nil {
		return err
	}
	defer st.Close()

	start := time.Now()
	err = st.DoFile(ctx, path)
	app.logger.Info("script finished",
		"path", path,
		"elapsed", time.Since(start),
		"runes", app.doc.Engine.Len(),
		"error", err)
	return err
}
