package normalize

import (
	"fmt"
	"sync/atomic"
)

// NameKind tags the four families of compiler-generated identifiers
// spec.md §4.4 names: "glocal" (a lifted non-atomic subexpression),
// "oracle" (a fresh unconstrained constant guarding an unguarded pre),
// "call" (a call-output binding), and "poracle" (a propagated oracle
// threaded through a call site).
type NameKind string

const (
	KindLocal  NameKind = "glocal"
	KindOracle NameKind = "oracle"
	KindCall   NameKind = "call"
	KindPOracle NameKind = "poracle"
)

// counter is the process-global monotone counter spec.md §4.4/§9
// requires: identifiers carry the prefix "<n>_<kind>" and are
// guaranteed never to collide with a source identifier, which cannot
// begin with a digit.
var counter uint64

// Fresh returns the next "<n>_<kind>" identifier and advances the
// counter.
func Fresh(kind NameKind) string {
	n := atomic.AddUint64(&counter, 1)
	return fmt.Sprintf("%d_%s", n, kind)
}

// ResetCounter rewinds the counter to zero. Call only at a well-defined
// run-start entry point (spec.md §4.4): never mid-compilation, since two
// nodes compiled in the same run must never mint the same fresh name.
func ResetCounter() {
	atomic.StoreUint64(&counter, 0)
}
