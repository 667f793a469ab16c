//go:build !gapdebug

package gap

// debugChecks is false in regular builds; preconditions are assumed to hold.
const debugChecks = false

// generation is empty unless built with the gapdebug tag.
type generation struct{}

func (g *generation) bump() {}

func failf(string, ...any) {}
