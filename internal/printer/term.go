// Package printer renders the node generator's internal representation
// back into human-readable text: terms, expressions, node records,
// contracts, and call parameters. Grounded on
// internal/disassembler/disassembly.go and asm.go: the teacher converts
// a decoded instruction list into an EASM mnemonic listing via repeated
// strings.Builder accumulation over a flat instruction slice; here the
// same accumulation-over-a-tree shape renders a hash-consed term
// instead of a flat bytecode listing.
package printer

import (
	"fmt"
	"strings"

	"lustrecore/internal/term"
)

// Term renders n as a fully-parenthesized prefix expression, e.g.
// "(+ N::x 2)". Variable leaves print via variableString; literal
// leaves print their payload; applied nodes print "(op child child...)".
func Term(n *term.Node) string {
	var b strings.Builder
	writeTerm(&b, n)
	return b.String()
}

func writeTerm(b *strings.Builder, n *term.Node) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	if n.IsVariable() {
		b.WriteString(variableString(n.Variable()))
		return
	}
	sym := n.Symbol()
	if sym == nil {
		b.WriteString("<leaf>")
		return
	}
	if n.IsLeaf() {
		b.WriteString(literalString(sym))
		return
	}
	b.WriteByte('(')
	b.WriteString(sym.Kind().String())
	for _, c := range n.Children() {
		b.WriteByte(' ')
		writeTerm(b, c)
	}
	b.WriteByte(')')
}

func literalString(sym *term.Symbol) string {
	switch sym.Kind() {
	case term.SymBoolConst:
		if v, ok := sym.IntValue(); ok && v.Sign() != 0 {
			return "true"
		}
		return "false"
	case term.SymIntConst, term.SymBVConst:
		if v, ok := sym.IntValue(); ok {
			return v.String()
		}
		return "?"
	case term.SymRealConst:
		return sym.Name()
	default:
		return sym.Kind().String()
	}
}

func variableString(v *term.Variable) string {
	switch v.Kind() {
	case term.VarFree:
		return v.Name()
	case term.VarBound:
		return fmt.Sprintf("#%d", v.DeBruijnIndex())
	case term.VarStateInstance:
		ref := v.StateVar()
		if off := v.Offset(); off != 0 {
			return fmt.Sprintf("%s::%s@%d", ref.Scope, ref.Name, off)
		}
		return fmt.Sprintf("%s::%s", ref.Scope, ref.Name)
	case term.VarConstState:
		ref := v.StateVar()
		return fmt.Sprintf("%s::%s", ref.Scope, ref.Name)
	default:
		return "?var"
	}
}

// Type renders t's declared name the way a diagnostic message should
// quote it.
func Type(t *term.Type) string {
	if t == nil {
		return "<untyped>"
	}
	return t.String()
}
