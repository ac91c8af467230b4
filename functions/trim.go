package functions

import (
	"strings"

	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func init() {
	rill.AddBuiltin(`trim`, 1, 1,
		func(c rill.Context, args []rill.Value) rill.Value {
			return types.WrapString(strings.TrimSpace(stringArg(`trim`, `value`, args[0])))
		})
}
