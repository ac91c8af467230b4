package evaluator

import (
	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/ast"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/hash"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
	"golang.org/x/sync/errgroup"
)

// opBody is the resolved body of a collection operator. Closure literals and
// variables bound to callables are resolved once and invoked per element;
// any other body is re-evaluated per element with the pipe value rebound.
type opBody struct {
	callable rill.Callable
	node     ast.Node
}

func evalCollectionOp(c rill.Context, n *ast.CollectionOp) (rill.Value, *errors.Signal) {
	// Break never makes sense where result order is the only guarantee, so
	// map and filter reject it before touching the first element.
	if n.Op == ast.OpMap || n.Op == ast.OpFilter {
		if ast.HasBreak(n.Body) {
			panic(rill.Error(n, rill.BreakInOperator, issue.H{`operator`: n.Op.String()}))
		}
	}

	source := c.PipeValue()
	if n.Source != nil {
		v, sig := eval(c, n.Source)
		if sig != nil {
			return nil, sig
		}
		source = v
	}
	next := iterationSource(n, source)

	body, sig := resolveOpBody(c, n)
	if sig != nil {
		return nil, sig
	}

	switch n.Op {
	case ast.OpEach:
		if n.Seed == nil {
			return runSequential(c, n, next, body)
		}
		seed, sig := eval(c, n.Seed)
		if sig != nil {
			return nil, sig
		}
		return runAccumulating(c, n, next, body, seed)
	case ast.OpFold:
		seed, sig := eval(c, n.Seed)
		if sig != nil {
			return nil, sig
		}
		return runAccumulating(c, n, next, body, seed)
	case ast.OpMap:
		results, sig := collect(c, n, next, body)
		if sig != nil {
			return nil, sig
		}
		return types.WrapValues(results), nil
	default: // filter
		elements := drain(c, n, next)
		results, sig := collectOver(c, n, elements, body)
		if sig != nil {
			return nil, sig
		}
		kept := make([]rill.Value, 0, len(elements))
		for i, v := range results {
			if rill.IsTruthy(v) {
				kept = append(kept, elements[i])
			}
		}
		return types.WrapValues(kept), nil
	}
}

// iterationSource returns a pull function over the iterable value. Dicts
// iterate as {key, value} dicts in insertion order, strings as one-rune
// strings.
func iterationSource(location issue.Location, v rill.Value) func() (rill.Value, bool) {
	switch v := v.(type) {
	case *types.ListValue:
		elements := v.Elements()
		i := 0
		return func() (rill.Value, bool) {
			if i >= len(elements) {
				return nil, false
			}
			e := elements[i]
			i++
			return e, true
		}
	case *types.StringValue:
		runes := []rune(v.String())
		i := 0
		return func() (rill.Value, bool) {
			if i >= len(runes) {
				return nil, false
			}
			e := types.WrapString(string(runes[i]))
			i++
			return e, true
		}
	case *types.DictValue:
		keys := v.Keys()
		i := 0
		return func() (rill.Value, bool) {
			if i >= len(keys) {
				return nil, false
			}
			h := hash.NewStringHash(2)
			h.Put(`key`, types.WrapString(keys[i]))
			h.Put(`value`, v.Get2(keys[i], types.Null))
			i++
			return types.WrapDict(h), true
		}
	case *types.IteratorValue:
		return v.Next
	case *types.VectorValue:
		panic(rill.Error(location, rill.VectorCoercion, issue.H{
			`model`: v.Model(), `usage`: `iteration`}))
	default:
		panic(rill.Error(location, rill.NotIterable, issue.H{`actual`: types.TypeNameOf(v)}))
	}
}

func resolveOpBody(c rill.Context, n *ast.CollectionOp) (*opBody, *errors.Signal) {
	switch b := n.Body.(type) {
	case *ast.ClosureLiteral:
		v, sig := newClosure(c, b)
		if sig != nil {
			return nil, sig
		}
		return &opBody{callable: v.(rill.Callable)}, nil
	case *ast.Variable:
		v, sig := evalVariable(c, b)
		if sig != nil {
			return nil, sig
		}
		if f, ok := v.(rill.Callable); ok {
			return &opBody{callable: f}, nil
		}
	}
	return &opBody{node: n.Body}, nil
}

// apply runs the body for one element. Callable bodies receive the element,
// and the accumulator as a second argument when their contract admits one.
// Expression bodies see the element as the pipe value and the accumulator as
// the captured name acc. Each run gets its own scope frame, so captures made
// by the body (acc included) never outlive the iteration and parallel
// branches never write a shared frame.
func (b *opBody) apply(c rill.Context, location issue.Location, e, acc rill.Value, withAcc bool) (rill.Value, *errors.Signal) {
	if b.callable != nil {
		args := []rill.Value{e}
		if withAcc {
			params := b.callable.Parameters()
			if params == nil || len(params) >= 2 {
				args = append(args, acc)
			}
		}
		return callCallable(c, location, b.callable, args)
	}
	outer := c.PipeValue()
	defer c.SetPipeValue(outer)
	c.SetPipeValue(e)
	scope := NewScope(c.Scope())
	if withAcc {
		scope.Capture(`acc`, acc)
	}
	var v rill.Value
	var sig *errors.Signal
	c.DoWithScope(scope, func() {
		v, sig = eval(c, b.node)
	})
	return v, sig
}

// runSequential drives each without an accumulator: one body run per element
// in source order, collecting the per-iteration results. Break short-circuits
// and becomes the overall result.
func runSequential(c rill.Context, n *ast.CollectionOp, next func() (rill.Value, bool), body *opBody) (rill.Value, *errors.Signal) {
	results := make([]rill.Value, 0, 8)
	for {
		checkCancelled(c, n)
		e, ok := next()
		if !ok {
			break
		}
		v, sig := body.apply(c, n, e, nil, false)
		if sig != nil {
			if sig.Kind() == errors.SignalBreak {
				return sig.Value(), nil
			}
			return nil, sig
		}
		results = append(results, v)
		checkCancelled(c, n)
	}
	return types.WrapValues(results), nil
}

// runAccumulating drives fold and the accumulator form of each: the body's
// result becomes the next accumulator, the final accumulator is the result.
func runAccumulating(c rill.Context, n *ast.CollectionOp, next func() (rill.Value, bool), body *opBody, acc rill.Value) (rill.Value, *errors.Signal) {
	for {
		checkCancelled(c, n)
		e, ok := next()
		if !ok {
			break
		}
		v, sig := body.apply(c, n, e, acc, true)
		if sig != nil {
			if sig.Kind() == errors.SignalBreak {
				return sig.Value(), nil
			}
			return nil, sig
		}
		acc = v
		checkCancelled(c, n)
	}
	return acc, nil
}

// collect runs the body over all elements and returns the results in source
// order. Used by map directly and by filter for its predicate pass.
func collect(c rill.Context, n *ast.CollectionOp, next func() (rill.Value, bool), body *opBody) ([]rill.Value, *errors.Signal) {
	return collectOver(c, n, drain(c, n, next), body)
}

func collectOver(c rill.Context, n *ast.CollectionOp, elements []rill.Value, body *opBody) ([]rill.Value, *errors.Signal) {
	if c.Parallel() && len(elements) > 1 {
		return collectParallel(c, n, elements, body)
	}
	results := make([]rill.Value, len(elements))
	for i, e := range elements {
		checkCancelled(c, n)
		v, sig := body.apply(c, n, e, nil, false)
		if sig != nil {
			// The eager scan catches literal breaks. A signal that still
			// arrives here escaped through a nested construct.
			if sig.Kind() == errors.SignalBreak {
				panic(rill.Error(sig.Location(), rill.BreakInOperator, issue.H{`operator`: n.Op.String()}))
			}
			return nil, sig
		}
		results[i] = v
		checkCancelled(c, n)
	}
	return results, nil
}

// signalError carries a control-flow signal across the errgroup boundary so
// that collectParallel can propagate it the way the sequential path does.
type signalError struct {
	sig *errors.Signal
}

func (e *signalError) Error() string {
	return `control-flow signal`
}

// collectParallel evaluates the body over all elements concurrently, one
// forked context per element. Results keep source order. The first error
// cancels nothing; remaining branches run to completion before it is raised.
func collectParallel(c rill.Context, n *ast.CollectionOp, elements []rill.Value, body *opBody) ([]rill.Value, *errors.Signal) {
	results := make([]rill.Value, len(elements))
	g := &errgroup.Group{}
	for i, e := range elements {
		i, e := i, e
		fc := c.Fork()
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					if re, ok := r.(issue.Reported); ok {
						err = re
						return
					}
					panic(r)
				}
			}()
			v, sig := body.apply(fc, n, e, nil, false)
			if sig != nil {
				if sig.Kind() == errors.SignalBreak {
					return rill.Error(sig.Location(), rill.BreakInOperator, issue.H{`operator`: n.Op.String()})
				}
				return &signalError{sig}
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if se, ok := err.(*signalError); ok {
			return nil, se.sig
		}
		panic(err.(issue.Reported))
	}
	return results, nil
}

func drain(c rill.Context, n *ast.CollectionOp, next func() (rill.Value, bool)) []rill.Value {
	elements := make([]rill.Value, 0, 8)
	for {
		checkCancelled(c, n)
		e, ok := next()
		if !ok {
			return elements
		}
		elements = append(elements, e)
	}
}

// evalWhile drives both loop forms. The body's value rebinds the pipe value
// after every iteration and the loop yields the final pipe value, so a loop
// like 0 -> ($ < 3) @ { $ + 1 } counts up to 3.
func evalWhile(c rill.Context, n *ast.While) (rill.Value, *errors.Signal) {
	for {
		if !n.PostCondition {
			b, sig := evalCondition(c, n.Condition)
			if sig != nil {
				return nil, sig
			}
			if !b {
				break
			}
		}
		checkCancelled(c, n)
		v, sig := eval(c, n.Body)
		if sig != nil {
			if sig.Kind() == errors.SignalBreak {
				return sig.Value(), nil
			}
			return nil, sig
		}
		c.SetPipeValue(v)
		if n.PostCondition {
			b, sig := evalCondition(c, n.Condition)
			if sig != nil {
				return nil, sig
			}
			if !b {
				break
			}
		}
	}
	return c.PipeValue(), nil
}

// evalForEach is the list @ body loop form. It behaves like each without an
// accumulator: one body run per element with the pipe value rebound, break
// short-circuits with the break value.
func evalForEach(c rill.Context, n *ast.ForEach) (rill.Value, *errors.Signal) {
	source, sig := eval(c, n.Source)
	if sig != nil {
		return nil, sig
	}
	next := iterationSource(n, source)
	results := make([]rill.Value, 0, 8)
	outer := c.PipeValue()
	defer c.SetPipeValue(outer)
	for {
		checkCancelled(c, n)
		e, ok := next()
		if !ok {
			break
		}
		c.SetPipeValue(e)
		v, sig := eval(c, n.Body)
		if sig != nil {
			if sig.Kind() == errors.SignalBreak {
				return sig.Value(), nil
			}
			return nil, sig
		}
		results = append(results, v)
		checkCancelled(c, n)
	}
	return types.WrapValues(results), nil
}
