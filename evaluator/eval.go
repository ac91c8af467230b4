package evaluator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/ast"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/hash"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

var nullValue = rill.Value(types.Null)

// Evaluate runs a whole program against the given context. It drives the same
// per-statement machinery as the Stepper, so eventing, cancellation, pipe
// threading, and error behavior are identical.
func Evaluate(c rill.Context, program *ast.Program) (rill.Value, issue.Reported) {
	s := NewStepper(c, program)
	result := nullValue
	for !s.Done() {
		v, err := s.Step()
		if err != nil {
			return nullValue, err
		}
		result = v
	}
	return result, nil
}

// eval interprets one node. It returns either a value or a control-flow
// signal, never both. Errors are raised as issue.Reported panics and are
// recovered once, at the statement boundary.
func eval(c rill.Context, n ast.Node) (rill.Value, *errors.Signal) {
	switch n := n.(type) {
	case *ast.LiteralNull:
		return nullValue, nil
	case *ast.LiteralBoolean:
		return types.WrapBoolean(n.Value), nil
	case *ast.LiteralNumber:
		return types.WrapNumber(n.Value), nil
	case *ast.LiteralString:
		return types.WrapString(n.Value), nil
	case *ast.Interpolation:
		return evalInterpolation(c, n)
	case *ast.ListLiteral:
		return evalListLiteral(c, n)
	case *ast.DictLiteral:
		return evalDictLiteral(c, n)
	case *ast.Variable:
		return evalVariable(c, n)
	case *ast.PipeValue:
		return c.PipeValue(), nil
	case *ast.Pipe:
		return evalPipe(c, n)
	case *ast.Capture:
		return evalCapture(c, n)
	case *ast.Destructure:
		return evalDestructure(c, n)
	case *ast.Conditional:
		return evalConditional(c, n)
	case *ast.Block:
		return evalBlock(c, n)
	case *ast.ClosureLiteral:
		return newClosure(c, n)
	case *ast.Call:
		return evalCall(c, n)
	case *ast.MethodCall:
		return evalMethodCall(c, n)
	case *ast.Invoke:
		return evalInvoke(c, n)
	case *ast.CollectionOp:
		return evalCollectionOp(c, n)
	case *ast.While:
		return evalWhile(c, n)
	case *ast.ForEach:
		return evalForEach(c, n)
	case *ast.Break:
		return evalBreak(c, n)
	case *ast.Return:
		return evalReturn(c, n)
	case *ast.Annotated:
		return evalAnnotated(c, n)
	case *ast.Member:
		return evalMember(c, n)
	case *ast.Index:
		return evalIndex(c, n)
	case *ast.Infix:
		return evalInfix(c, n)
	case *ast.Prefix:
		return evalPrefix(c, n)
	default:
		panic(rill.Error(n, rill.UnsupportedNode, issue.H{`node`: fmt.Sprintf(`%T`, n)}))
	}
}

func evalInterpolation(c rill.Context, n *ast.Interpolation) (rill.Value, *errors.Signal) {
	bld := bytes.NewBufferString(``)
	for _, segment := range n.Segments {
		v, sig := eval(c, segment)
		if sig != nil {
			return nil, sig
		}
		s, ok := types.Stringify(v)
		if !ok {
			vec := v.(*types.VectorValue)
			panic(rill.Error(segment, rill.VectorCoercion, issue.H{
				`model`: vec.Model(), `usage`: `string interpolation`}))
		}
		bld.WriteString(s)
	}
	return types.WrapString(bld.String()), nil
}

func evalListLiteral(c rill.Context, n *ast.ListLiteral) (rill.Value, *errors.Signal) {
	elements := make([]rill.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, sig := eval(c, e)
		if sig != nil {
			return nil, sig
		}
		elements[i] = v
	}
	return types.WrapValues(elements), nil
}

// evalDictLiteral resolves every entry key in evaluation order. A later entry
// whose key resolves to an already present key overwrites the earlier value,
// independent of which key kind produced either.
func evalDictLiteral(c rill.Context, n *ast.DictLiteral) (rill.Value, *errors.Signal) {
	h := hash.NewStringHash(len(n.Entries))
	for _, entry := range n.Entries {
		key, sig := resolveDictKey(c, entry)
		if sig != nil {
			return nil, sig
		}
		v, sig := eval(c, entry.Value)
		if sig != nil {
			return nil, sig
		}
		h.Put(key, v)
	}
	return types.WrapDict(h), nil
}

func resolveDictKey(c rill.Context, entry *ast.DictEntry) (string, *errors.Signal) {
	switch entry.Kind {
	case ast.StaticKey:
		return entry.Key, nil
	case ast.VariableKey:
		v, found := c.Scope().Lookup(entry.Key)
		if !found {
			panic(rill.Error(entry, rill.UnknownVariable, issue.H{`name`: entry.Key}))
		}
		s, ok := v.(*types.StringValue)
		if !ok {
			panic(rill.Error(entry, rill.DictKeyType, issue.H{`actual`: types.TypeNameOf(v)}))
		}
		return s.String(), nil
	default:
		v, sig := eval(c, entry.Expr)
		if sig != nil {
			return ``, sig
		}
		s, ok := v.(*types.StringValue)
		if !ok {
			panic(rill.Error(entry, rill.DictKeyExprType, issue.H{`actual`: types.TypeNameOf(v)}))
		}
		return s.String(), nil
	}
}

func evalVariable(c rill.Context, n *ast.Variable) (rill.Value, *errors.Signal) {
	if v, found := c.Scope().Lookup(n.Name); found {
		return v, nil
	}
	panic(rill.Error(n, rill.UnknownVariable, issue.H{`name`: n.Name}))
}

// evalPipe threads a value left to right, rebinding the pipe value before each
// stage. A stage that evaluates to a callable is invoked with the pipe value
// as its only argument; any other stage result becomes the new pipe value.
func evalPipe(c rill.Context, n *ast.Pipe) (rill.Value, *errors.Signal) {
	v, sig := eval(c, n.Head)
	if sig != nil {
		return nil, sig
	}
	for _, stage := range n.Stages {
		c.SetPipeValue(v)
		sv, sig := eval(c, stage)
		if sig != nil {
			return nil, sig
		}
		if f, ok := sv.(rill.Callable); ok {
			sv, sig = callCallable(c, stage, f, []rill.Value{v})
			if sig != nil {
				return nil, sig
			}
		}
		v = sv
	}
	return v, nil
}

func evalCapture(c rill.Context, n *ast.Capture) (rill.Value, *errors.Signal) {
	v, sig := eval(c, n.Value)
	if sig != nil {
		return nil, sig
	}
	c.Scope().Capture(n.Name, v)
	c.Tracer().Capture(rill.CaptureEvent{Name: n.Name, Value: v})
	return v, nil
}

func evalDestructure(c rill.Context, n *ast.Destructure) (rill.Value, *errors.Signal) {
	v, sig := eval(c, n.Value)
	if sig != nil {
		return nil, sig
	}
	switch v := v.(type) {
	case *types.ListValue:
		if v.Len() != len(n.Names) {
			panic(rill.Error(n, rill.DestructureMismatch, issue.H{
				`expected`: len(n.Names), `actual`: v.Len()}))
		}
		for i, name := range n.Names {
			capture(c, name, v.At(i))
		}
	case *types.DictValue:
		for _, name := range n.Names {
			e, found := v.Get(name)
			if !found {
				panic(rill.Error(n, rill.DestructureKey, issue.H{`key`: name}))
			}
			capture(c, name, e)
		}
	default:
		panic(rill.Error(n, rill.TypeMismatch, issue.H{
			`expected`: `list or dict`, `actual`: types.TypeNameOf(v)}))
	}
	return v, nil
}

func capture(c rill.Context, name string, v rill.Value) {
	c.Scope().Capture(name, v)
	c.Tracer().Capture(rill.CaptureEvent{Name: name, Value: v})
}

func evalConditional(c rill.Context, n *ast.Conditional) (rill.Value, *errors.Signal) {
	b, sig := evalCondition(c, n.Condition)
	if sig != nil {
		return nil, sig
	}
	if b {
		return eval(c, n.Then)
	}
	if n.Else == nil {
		return nullValue, nil
	}
	return eval(c, n.Else)
}

// evalCondition requires a strict boolean. Truthiness is reserved for filter
// predicates.
func evalCondition(c rill.Context, n ast.Node) (bool, *errors.Signal) {
	v, sig := eval(c, n)
	if sig != nil {
		return false, sig
	}
	b, ok := v.(*types.BooleanValue)
	if !ok {
		panic(rill.Error(n, rill.ConditionNotBoolean, issue.H{`actual`: types.TypeNameOf(v)}))
	}
	return b.Bool(), nil
}

// evalBlock runs statements in order, threading the pipe value. A return
// signal is consumed here: the block's value becomes the return value. Break
// passes through to the nearest enclosing loop.
func evalBlock(c rill.Context, n *ast.Block) (rill.Value, *errors.Signal) {
	result := nullValue
	for _, statement := range n.Statements {
		v, sig := eval(c, statement)
		if sig != nil {
			if sig.Kind() == errors.SignalReturn {
				return sig.Value(), nil
			}
			return nil, sig
		}
		result = v
		c.SetPipeValue(v)
	}
	return result, nil
}

func evalBreak(c rill.Context, n *ast.Break) (rill.Value, *errors.Signal) {
	v := c.PipeValue()
	if n.Value != nil {
		ev, sig := eval(c, n.Value)
		if sig != nil {
			return nil, sig
		}
		v = ev
	}
	return nil, errors.NewBreak(n, v)
}

func evalReturn(c rill.Context, n *ast.Return) (rill.Value, *errors.Signal) {
	v := c.PipeValue()
	if n.Value != nil {
		ev, sig := eval(c, n.Value)
		if sig != nil {
			return nil, sig
		}
		v = ev
	}
	return nil, errors.NewReturn(n, v)
}

func evalMember(c rill.Context, n *ast.Member) (rill.Value, *errors.Signal) {
	v, sig := eval(c, n.Target)
	if sig != nil {
		return nil, sig
	}
	d, ok := v.(*types.DictValue)
	if !ok {
		panic(rill.Error(n, rill.TypeMismatch, issue.H{
			`expected`: `dict`, `actual`: types.TypeNameOf(v)}))
	}
	return d.Get2(n.Name, nullValue), nil
}

func evalIndex(c rill.Context, n *ast.Index) (rill.Value, *errors.Signal) {
	v, sig := eval(c, n.Target)
	if sig != nil {
		return nil, sig
	}
	k, sig := eval(c, n.Key)
	if sig != nil {
		return nil, sig
	}
	switch v := v.(type) {
	case *types.ListValue:
		i, ok := k.(*types.NumberValue)
		if !ok {
			panic(rill.Error(n.Key, rill.TypeMismatch, issue.H{
				`expected`: `number`, `actual`: types.TypeNameOf(k)}))
		}
		return v.At(i.Int()), nil
	case *types.DictValue:
		s, ok := k.(*types.StringValue)
		if !ok {
			panic(rill.Error(n.Key, rill.TypeMismatch, issue.H{
				`expected`: `string`, `actual`: types.TypeNameOf(k)}))
		}
		return v.Get2(s.String(), nullValue), nil
	default:
		panic(rill.Error(n, rill.TypeMismatch, issue.H{
			`expected`: `list or dict`, `actual`: types.TypeNameOf(v)}))
	}
}

// checkCancelled polls the cancellation signal. It never blocks.
func checkCancelled(c rill.Context, location issue.Location) {
	select {
	case <-c.Done():
		panic(rill.Error(location, rill.Cancelled, issue.NoArgs))
	default:
	}
}

// checkAutoException raises when a produced string carries one of the
// configured sentinel prefixes. Checked on host-call results and on top-level
// statement results.
func checkAutoException(c rill.Context, location issue.Location, v rill.Value) {
	s, ok := v.(*types.StringValue)
	if !ok {
		return
	}
	for _, prefix := range c.AutoExceptions() {
		if strings.HasPrefix(s.String(), prefix) {
			panic(rill.Error(location, rill.AutoException, issue.H{`message`: s.String()}))
		}
	}
}
