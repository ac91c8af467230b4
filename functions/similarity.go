package functions

import (
	"math"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

// similarity computes the cosine similarity of two embedding vectors. The
// vectors must carry the same model tag and the same dimension.
func init() {
	rill.AddBuiltin(`similarity`, 2, 2,
		func(c rill.Context, args []rill.Value) rill.Value {
			a := vectorArg(`similarity`, `left`, args[0])
			b := vectorArg(`similarity`, `right`, args[1])
			if a.Model() != b.Model() {
				panic(errors.NewIllegalArgumentType(`similarity`, `right`,
					`vector[`+a.Model()+`]`, `vector[`+b.Model()+`]`))
			}
			if a.Len() != b.Len() {
				panic(rill.ErrorAt(c, rill.DimensionMismatch, issue.H{
					`left`: a.Len(), `right`: b.Len()}))
			}
			var dot, na, nb float64
			ae := a.Elements()
			be := b.Elements()
			for i := range ae {
				dot += ae[i] * be[i]
				na += ae[i] * ae[i]
				nb += be[i] * be[i]
			}
			if na == 0 || nb == 0 {
				return types.WrapNumber(0)
			}
			return types.WrapNumber(dot / (math.Sqrt(na) * math.Sqrt(nb)))
		})
}
