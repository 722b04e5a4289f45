package printer

import (
	"fmt"

	"lustrecore/internal/expr"
)

// Expr renders both temporal components of e, or a single term when
// they coincide (the common case for a non-flow-sensitive value).
func Expr(e expr.Expr) string {
	init, step := Term(e.Init), Term(e.Step)
	if init == step {
		return init
	}
	return fmt.Sprintf("init=%s step=%s", init, step)
}
