package functions

import (
	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func init() {
	rill.AddBuiltin(`str`, 1, 1,
		func(c rill.Context, args []rill.Value) rill.Value {
			s, ok := types.Stringify(args[0])
			if !ok {
				vec := args[0].(*types.VectorValue)
				panic(rill.ErrorAt(c, rill.VectorCoercion, issue.H{
					`model`: vec.Model(), `usage`: `str`}))
			}
			return types.WrapString(s)
		})
}
