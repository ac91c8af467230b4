// Package functions contains the builtin callables shipped with the runtime,
// one file per function. Importing the package registers them; the evaluator
// context picks them up from the registry at construction.
package functions

import (
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func stringArg(name, param string, v rill.Value) string {
	s, ok := v.(*types.StringValue)
	if !ok {
		panic(errors.NewIllegalArgumentType(name, param, `string`, types.TypeNameOf(v)))
	}
	return s.String()
}

func numberArg(name, param string, v rill.Value) float64 {
	n, ok := v.(*types.NumberValue)
	if !ok {
		panic(errors.NewIllegalArgumentType(name, param, `number`, types.TypeNameOf(v)))
	}
	return n.Float()
}

func dictArg(name, param string, v rill.Value) *types.DictValue {
	d, ok := v.(*types.DictValue)
	if !ok {
		panic(errors.NewIllegalArgumentType(name, param, `dict`, types.TypeNameOf(v)))
	}
	return d
}

func vectorArg(name, param string, v rill.Value) *types.VectorValue {
	vec, ok := v.(*types.VectorValue)
	if !ok {
		panic(errors.NewIllegalArgumentType(name, param, `vector`, types.TypeNameOf(v)))
	}
	return vec
}
