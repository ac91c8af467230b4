package functions

import (
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func init() {
	rill.AddBuiltin(`vals`, 1, 1,
		func(c rill.Context, args []rill.Value) rill.Value {
			d := dictArg(`vals`, `dict`, args[0])
			elements := make([]rill.Value, 0, d.Len())
			d.EachValue(func(v rill.Value) {
				elements = append(elements, v)
			})
			return types.WrapValues(elements)
		})
}
