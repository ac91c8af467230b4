package functions

import (
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func init() {
	rill.AddBuiltin(`keys`, 1, 1,
		func(c rill.Context, args []rill.Value) rill.Value {
			d := dictArg(`keys`, `dict`, args[0])
			elements := make([]rill.Value, 0, d.Len())
			d.EachKey(func(k string) {
				elements = append(elements, types.WrapString(k))
			})
			return types.WrapValues(elements)
		})
}
