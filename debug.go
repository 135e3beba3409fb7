package openrealm

import "fmt"

// globalDebug gates the extra assertion checks below. Production builds
// should leave this false; it's a developer switch, not a config option
// surfaced to end users.
var globalDebug = false

// SetDebug toggles the package-wide debug assertion mode.
func SetDebug(on bool) { globalDebug = on }

const (
	maxEntityTreeDepth = 64
	maxEntityChildren  = 4096
)

// debugCheckDisposed panics if n has already been disposed. No-op unless
// globalDebug is set.
func debugCheckDisposed(n *Entity, op string) {
	if !globalDebug {
		return
	}
	if n.disposed {
		panic(fmt.Sprintf("openrealm: %s called on disposed entity %d", op, n.ID))
	}
}

// debugCheckTreeDepth warns (via panic, debug-mode only) if n's depth
// from its furthest root exceeds a sane bound, catching accidental
// self-parenting loops in tests before they hang a traversal.
func debugCheckTreeDepth(n *Entity) {
	if !globalDebug {
		return
	}
	depth := 0
	for a := n; a != nil; a = a.parent {
		depth++
		if depth > maxEntityTreeDepth {
			panic(fmt.Sprintf("openrealm: entity tree depth exceeds %d at entity %d", maxEntityTreeDepth, n.ID))
		}
	}
}

// debugCheckChildCount warns if n has an implausible number of direct
// children, usually a sign that content is appending in a loop it
// shouldn't.
func debugCheckChildCount(n *Entity) {
	if !globalDebug {
		return
	}
	if len(n.children) > maxEntityChildren {
		panic(fmt.Sprintf("openrealm: entity %d has more than %d children", n.ID, maxEntityChildren))
	}
}
