package printer

import (
	"fmt"
	"strings"

	"lustrecore/internal/nodegen"
	"lustrecore/internal/trie"
)

// StateVar renders a state variable as "scope.scope.name : type".
func StateVar(sv *nodegen.StateVariable) string {
	if sv == nil {
		return "<nil>"
	}
	name := sv.Name
	if len(sv.Scope) > 0 {
		name = strings.Join(sv.Scope, ".") + "." + name
	}
	return fmt.Sprintf("%s : %s", name, Type(sv.Type))
}

// Equation renders one compiled equation as "lhs = rhs".
func Equation(eq nodegen.EquationRecord) string {
	lhs := StateVar(eq.LHS.StateVar)
	if eq.LHS.Bounds != nil {
		lhs = fmt.Sprintf("%s[%s]", lhs, Term(eq.LHS.Bounds))
	}
	return fmt.Sprintf("%s = %s", lhs, Term(eq.RHS))
}

// NodeRecord renders a compiled node as a multi-line listing: its
// signature, equations, calls, and contract, mirroring the shape of
// asm.go's instructionListToEASM but over node-generator records
// instead of a flat instruction list.
func NodeRecord(n *nodegen.NodeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "node %s", n.Name)
	if n.IsMain {
		b.WriteString(" (main)")
	}
	b.WriteByte('\n')

	for _, sv := range portValues(n.Inputs) {
		fmt.Fprintf(&b, "  input  %s\n", StateVar(sv))
	}
	for _, sv := range portValues(n.Outputs) {
		fmt.Fprintf(&b, "  output %s\n", StateVar(sv))
	}
	for _, sv := range portValues(n.Locals) {
		fmt.Fprintf(&b, "  local  %s\n", StateVar(sv))
	}
	for _, sv := range n.Oracles {
		fmt.Fprintf(&b, "  oracle %s\n", StateVar(sv))
	}

	if n.Contract != nil {
		b.WriteString(Contract(n.Contract))
	}

	for _, eq := range n.Equations {
		fmt.Fprintf(&b, "  %s\n", Equation(eq))
	}
	for _, a := range n.Asserts {
		fmt.Fprintf(&b, "  assert %s\n", StateVar(a.StateVar))
	}
	for _, p := range n.Properties {
		fmt.Fprintf(&b, "  property %s (%s)\n", p.Name, StateVar(p.StateVar))
	}
	for _, c := range n.Calls {
		fmt.Fprintf(&b, "  call #%d %s\n", c.CallID, c.Callee)
	}
	return b.String()
}

func portValues(t *trie.Trie[*nodegen.StateVariable]) []*nodegen.StateVariable {
	if t == nil {
		return nil
	}
	return t.Values()
}
