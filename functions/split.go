package functions

import (
	"strings"

	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func init() {
	rill.AddBuiltin(`split`, 2, 2,
		func(c rill.Context, args []rill.Value) rill.Value {
			parts := strings.Split(stringArg(`split`, `value`, args[0]), stringArg(`split`, `separator`, args[1]))
			elements := make([]rill.Value, len(parts))
			for i, p := range parts {
				elements[i] = types.WrapString(p)
			}
			return types.WrapValues(elements)
		})
}
