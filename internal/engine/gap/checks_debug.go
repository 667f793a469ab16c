//go:build gapdebug

package gap

import "fmt"

// debugChecks enables precondition and iterator validity checks.
const debugChecks = true

// generation counts operations that may move elements. Iterators capture it
// on creation and compare it against the buffer's on every use.
type generation struct {
	n uint64
}

func (g *generation) bump() { g.n++ }

func failf(format string, args ...any) {
	panic(fmt.Sprintf("gap: "+format, args...))
}
