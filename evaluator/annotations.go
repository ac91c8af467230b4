package evaluator

import (
	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/ast"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/hash"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

// evalAnnotationEntries builds the annotation dict in entry order. A spread
// entry merges the entries of a dict valued expression at its position, so a
// later literal key overrides a spread one and vice versa.
func evalAnnotationEntries(c rill.Context, entries []*ast.AnnotationEntry) (rill.Value, *errors.Signal) {
	h := hash.NewStringHash(len(entries))
	for _, entry := range entries {
		v, sig := eval(c, entry.Value)
		if sig != nil {
			return nil, sig
		}
		if entry.Spread {
			d, ok := v.(*types.DictValue)
			if !ok {
				panic(rill.Error(entry, rill.AnnotationSpreadType, issue.H{`actual`: types.TypeNameOf(v)}))
			}
			d.EachPair(func(key string, value rill.Value) {
				h.Put(key, value)
			})
			continue
		}
		h.Put(entry.Key, v)
	}
	return types.WrapDict(h), nil
}

// evalAnnotated pushes the evaluated annotation dict for the duration of the
// annotated statement. The deferred pop keeps the stack balanced also when
// the statement panics.
func evalAnnotated(c rill.Context, n *ast.Annotated) (rill.Value, *errors.Signal) {
	a, sig := evalAnnotationEntries(c, n.Annotations)
	if sig != nil {
		return nil, sig
	}
	c.PushAnnotation(a)
	defer c.PopAnnotation()
	return eval(c, n.Statement)
}
