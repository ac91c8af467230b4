package functions

import (
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

// range(end) iterates 0..end-1, range(start, end) iterates start..end-1. The
// result is a lazy iterator, so a large range costs nothing until consumed.
func init() {
	rill.AddBuiltin(`range`, 1, 2,
		func(c rill.Context, args []rill.Value) rill.Value {
			start := 0.0
			end := rangeBound(args, len(args)-1, `end`)
			if len(args) == 2 {
				start = rangeBound(args, 0, `start`)
			}
			i := start
			return types.WrapIterator(func() (rill.Value, bool) {
				if i >= end {
					return nil, false
				}
				v := types.WrapNumber(i)
				i++
				return v, true
			})
		})
}

func rangeBound(args []rill.Value, index int, param string) float64 {
	b := numberArg(`range`, param, args[index])
	if b != float64(int64(b)) {
		panic(errors.NewIllegalArgument(`range`, index, param+` must be an integer`))
	}
	return b
}
