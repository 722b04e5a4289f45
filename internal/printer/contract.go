package printer

import (
	"fmt"
	"strings"

	"lustrecore/internal/nodegen"
)

// Contract renders a compiled contract's assumes, guarantees, and
// modes.
func Contract(c *nodegen.Contract) string {
	var b strings.Builder
	b.WriteString("  contract\n")
	for _, a := range c.Assumes {
		fmt.Fprintf(&b, "    assume %s\n", contractItemName(a))
	}
	for _, g := range c.Guarantees {
		soft := ""
		if g.Soft {
			soft = " (soft)"
		}
		fmt.Fprintf(&b, "    guarantee%s %s\n", soft, contractItemName(g))
	}
	if c.Sofar != nil {
		fmt.Fprintf(&b, "    sofar %s\n", StateVar(c.Sofar))
	}
	for _, m := range c.Modes {
		fmt.Fprintf(&b, "    mode %s\n", strings.Join(m.Path, "."))
		for _, r := range m.Requires {
			fmt.Fprintf(&b, "      require %s\n", contractItemName(r))
		}
		for _, e := range m.Ensures {
			fmt.Fprintf(&b, "      ensure %s\n", contractItemName(e))
		}
	}
	return b.String()
}

func contractItemName(sv nodegen.ContractSVar) string {
	if sv.Name != nil {
		return *sv.Name
	}
	return StateVar(sv.StateVar)
}
