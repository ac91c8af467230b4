package functions

import (
	"fmt"
	"strings"

	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func init() {
	rill.AddBuiltin(`sprintf`, 1, -1,
		func(c rill.Context, args []rill.Value) rill.Value {
			format := stringArg(`sprintf`, `format`, args[0])
			fargs := make([]interface{}, len(args)-1)
			for i, a := range args[1:] {
				fargs[i] = native(a)
			}
			s := fmt.Sprintf(format, fargs...)
			// fmt reports verb/argument mismatches inside the output.
			if strings.Contains(s, `%!`) {
				panic(errors.NewArgumentsError(`sprintf`, `format '`+format+`' does not match its arguments`))
			}
			return types.WrapString(s)
		})
}

// native unwraps a value so that fmt verbs like %d and %f see the primitive
// they expect.
func native(v rill.Value) interface{} {
	switch v := v.(type) {
	case *types.NullValue:
		return nil
	case *types.BooleanValue:
		return v.Bool()
	case *types.NumberValue:
		f := v.Float()
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case *types.StringValue:
		return v.String()
	default:
		return v.String()
	}
}
