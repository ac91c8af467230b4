package functions

import (
	"unicode/utf8"

	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func init() {
	rill.AddBuiltin(`len`, 1, 1,
		func(c rill.Context, args []rill.Value) rill.Value {
			switch v := args[0].(type) {
			case *types.StringValue:
				return types.WrapNumber(float64(utf8.RuneCountInString(v.String())))
			case *types.ListValue:
				return types.WrapNumber(float64(v.Len()))
			case *types.DictValue:
				return types.WrapNumber(float64(v.Len()))
			case *types.VectorValue:
				return types.WrapNumber(float64(v.Len()))
			default:
				panic(errors.NewIllegalArgumentType(`len`, `value`, `string, list, dict, or vector`, types.TypeNameOf(args[0])))
			}
		})
}
