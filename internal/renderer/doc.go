// Package renderer draws an engine's text onto a backend.
//
// A View lays out the visible lines with tab expansion and wide runes,
// keeps the cursor on screen by scrolling a viewport, and draws a status
// line below the text:
//
//	term, _ := backend.NewTerminal()
//	term.Init()
//	v := renderer.NewView(term, eng, renderer.DefaultOptions())
//	v.Render()
package renderer
