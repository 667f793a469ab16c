// Package plugin holds the scripting runtime of gapedit.
//
// Scripts are plain Lua 5.1 run by the lua subpackage against a single
// engine. They drive the same operations the editor keys do, which makes
// them useful for reproducible editing sessions and benchmark workloads:
//
//	st, err := lua.NewState(lua.WithInstructionLimit(1_000_000))
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	lua.BindEngine(st, eng)
//	if err := st.DoFile(ctx, "workload.lua"); err != nil {
//	    return err
//	}
package plugin
