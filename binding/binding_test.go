package binding_test

import (
	"github.com/delaneyj/rewire/binding"
	"github.com/delaneyj/rewire/cell"
)

// A's B, B's C, C's D.
type (
	D struct{ value *cell.Cell[int] }
	C struct{ d *cell.Cell[*D] }
	B struct{ c *cell.Cell[*C] }
	A struct{ b *cell.Cell[*B] }
)

func aToB(a *A) cell.Observable[*B] { return a.b }
func bToC(b *B) cell.Observable[*C] { return b.c }
func cToD(c *C) cell.Observable[*D] { return c.d }
func dToValue(d *D) cell.Observable[int] { return d.value }

// ident resolves a cell holding a cell to the inner one.
func ident[T any](c *cell.Cell[T]) cell.Observable[T] {
	return c
}

func value[T any](n *binding.Node[T]) any {
	if v, ok := n.Value(); ok {
		return v
	}
	return nil
}
