// Package diagnostic defines the typed failures the compilation core
// raises against a source position, grounded on internal/issuse/issue.go
// (a title/description/file/line record attached to a detected
// finding), generalized here from a fixed vulnerability-report shape
// into a small closed family of compiler diagnostics, each carrying
// enough structure for a caller to decide whether it is fatal
// (spec.md §4.8).
package diagnostic

import (
	"fmt"

	"lustrecore/internal/ast"
)

// Diagnostic is any of this package's typed findings.
type Diagnostic interface {
	error
	Position() ast.Position
	Fatal() bool
}

// TypeMismatch reports a constructor whose operands disagreed in type
// (spec.md §4.8 "Constructor type mismatches: fatal").
type TypeMismatch struct {
	Pos      ast.Position
	Operator string
	Detail   string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("%s: type mismatch in %s: %s", e.Pos, e.Operator, e.Detail)
}
func (e *TypeMismatch) Position() ast.Position { return e.Pos }
func (e *TypeMismatch) Fatal() bool            { return true }

// ShapeMismatch reports an index-trie shape disagreement surfaced
// during equation expansion (spec.md §4.8 "Shape mismatch during
// expand_tuple: fatal").
type ShapeMismatch struct {
	Pos    ast.Position
	Reason string
}

func (e *ShapeMismatch) Error() string {
	return fmt.Sprintf("%s: shape mismatch: %s", e.Pos, e.Reason)
}
func (e *ShapeMismatch) Position() ast.Position { return e.Pos }
func (e *ShapeMismatch) Fatal() bool            { return true }

// UnboundIdentifier reports a normalized identifier with no binding in
// the current node's identifier map.
type UnboundIdentifier struct {
	Pos  ast.Position
	Name string
}

func (e *UnboundIdentifier) Error() string {
	return fmt.Sprintf("%s: unbound identifier %q", e.Pos, e.Name)
}
func (e *UnboundIdentifier) Position() ast.Position { return e.Pos }
func (e *UnboundIdentifier) Fatal() bool            { return true }

// InvariantViolation reports a violated internal invariant (hash-cons
// identity, state-variable uniqueness, arrow-guarded pre) detected at
// runtime rather than by construction.
type InvariantViolation struct {
	Pos     ast.Position
	Summary string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: invariant violated: %s", e.Pos, e.Summary)
}
func (e *InvariantViolation) Position() ast.Position { return e.Pos }
func (e *InvariantViolation) Fatal() bool            { return true }

// UnsupportedConstruct reports a source construct this core does not
// (yet) lower, distinguished from the fatal classes above since a
// caller compiling a partial fixture may choose to skip the offending
// node rather than abort the whole run.
type UnsupportedConstruct struct {
	Pos  ast.Position
	What string
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("%s: unsupported construct: %s", e.Pos, e.What)
}
func (e *UnsupportedConstruct) Position() ast.Position { return e.Pos }
func (e *UnsupportedConstruct) Fatal() bool            { return false }
