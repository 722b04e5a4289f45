// Package ast defines the shape of the type-checked source AST this
// core consumes. The parser and surface type checker that produce it
// are external collaborators; this package only fixes the tagged
// sum-type shape internal/normalize rewrites and internal/nodegen
// walks. Grounded on internal/ethereum/state/instruction.go +
// instruction_data.go's tagged opcode-plus-operands shape, generalized
// from a flat bytecode stream to a tree.
package ast

import "fmt"

// Position identifies a source location for diagnostics and error
// messages.
type Position struct {
	File string
	Line int
	Col  int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Dummy is a position for compiler-generated nodes that have no source
// counterpart. Nothing in this module assigns it: fresh oracles reuse
// the position of the pre they guard.
var Dummy = Position{File: "<generated>"}
