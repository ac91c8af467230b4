package functions

import (
	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/rill"
)

func init() {
	rill.AddBuiltin(`fail`, 1, 1,
		func(c rill.Context, args []rill.Value) rill.Value {
			panic(rill.ErrorAt(c, rill.Failure, issue.H{
				`message`: stringArg(`fail`, `message`, args[0])}))
		})
}
