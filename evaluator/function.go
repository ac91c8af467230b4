package evaluator

import (
	"fmt"
	"strings"
	"time"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/ast"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

type (
	closureParam struct {
		rill.Parameter

		// annotations is the evaluated parameter annotation dict, nil when the
		// declaration has none.
		annotations rill.Value
	}

	// closure is a script defined callable. Parameter defaults and annotations
	// are evaluated once, when the literal is evaluated. The scope reference is
	// live, so captures made after creation are visible to later calls.
	closure struct {
		decl        *ast.ClosureLiteral
		params      []closureParam
		annotations rill.Value
		scope       rill.Scope
	}

	// hostFunction adapts an application supplied function to the callable
	// contract. Declared parameters, when present, are validated before the
	// host body runs; a nil parameter list means an open contract.
	hostFunction struct {
		name   string
		params []rill.Parameter
		f      rill.HostFunc
	}
)

// NewHostFunction wraps an application function for registration in the
// Options.Functions map. Pass nil params to skip argument validation.
func NewHostFunction(name string, params []rill.Parameter, f rill.HostFunc) rill.Callable {
	return &hostFunction{name, params, f}
}

func newClosure(c rill.Context, n *ast.ClosureLiteral) (rill.Value, *errors.Signal) {
	params := make([]closureParam, len(n.Parameters))
	for i, pd := range n.Parameters {
		p := closureParam{Parameter: rill.Parameter{Name: pd.Name, Type: pd.Type}}
		if pd.Default != nil {
			d, sig := eval(c, pd.Default)
			if sig != nil {
				return nil, sig
			}
			p.Default = d
		}
		if len(pd.Annotations) > 0 {
			a, sig := evalAnnotationEntries(c, pd.Annotations)
			if sig != nil {
				return nil, sig
			}
			p.annotations = a
		}
		params[i] = p
	}
	f := &closure{decl: n, params: params, scope: c.Scope()}
	if len(n.Annotations) > 0 {
		a, sig := evalAnnotationEntries(c, n.Annotations)
		if sig != nil {
			return nil, sig
		}
		f.annotations = a
	}
	return f, nil
}

func (f *closure) Name() string {
	return `<closure>`
}

func (f *closure) Parameters() []rill.Parameter {
	params := make([]rill.Parameter, len(f.params))
	for i, p := range f.params {
		params[i] = p.Parameter
	}
	return params
}

// Call binds arguments positionally. A closure without declared parameters
// has an open contract: its arguments only seed the pipe value, which is how
// a parameterless closure works as a pipe stage.
func (f *closure) Call(c rill.Context, args []rill.Value) rill.Value {
	given := len(args)
	if given < len(f.params) {
		for _, p := range f.params[given:] {
			if p.Default == nil {
				break
			}
			args = append(args, p.Default)
		}
	}
	if len(f.params) > 0 && len(args) != len(f.params) {
		panic(errors.NewIllegalArgumentCount(f.Name(), len(f.params), given))
	}
	for i, p := range f.params {
		checkArgumentType(c, f.Name(), p.Parameter, args[i])
	}

	scope := NewScope(f.scope)
	for i, p := range f.params {
		scope.Capture(p.Name, args[i])
	}

	outer := c.PipeValue()
	defer c.SetPipeValue(outer)
	if len(args) > 0 {
		c.SetPipeValue(args[0])
	} else {
		c.SetPipeValue(nullValue)
	}

	var result rill.Value
	var sig *errors.Signal
	c.DoWithScope(scope, func() {
		result, sig = eval(c, f.decl.Body)
	})
	if sig != nil {
		if sig.Kind() == errors.SignalReturn {
			return sig.Value()
		}
		panic(rill.Error(sig.Location(), rill.IllegalBreak, issue.NoArgs))
	}
	return result
}

// Equals compares structure, not provenance: parameters including defaults
// and annotations, the body tree, the closure annotations, and the captured
// scope. The scope must be the same scope, not an equal one.
func (f *closure) Equals(other interface{}, guard rill.Guard) bool {
	o, ok := other.(*closure)
	if !ok {
		return false
	}
	if f.scope != o.scope || len(f.params) != len(o.params) {
		return false
	}
	for i, p := range f.params {
		op := o.params[i]
		if p.Name != op.Name || p.Type != op.Type {
			return false
		}
		if !equalOrNil(p.Default, op.Default, guard) {
			return false
		}
		if !equalOrNil(p.annotations, op.annotations, guard) {
			return false
		}
	}
	return equalOrNil(f.annotations, o.annotations, guard) && ast.Equal(f.decl.Body, o.decl.Body)
}

func (f *closure) TypeName() string {
	return `callable`
}

func (f *closure) String() string {
	names := make([]string, len(f.params))
	for i, p := range f.params {
		names[i] = p.Name
	}
	return `{ |` + strings.Join(names, `, `) + `| ... }`
}

func equalOrNil(a, b rill.Value, guard rill.Guard) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return rill.GuardedEquals(a, b, guard)
}

func checkArgumentType(c rill.Context, name string, p rill.Parameter, v rill.Value) {
	if p.Type == `` {
		return
	}
	expected := p.Type
	if expected == `bool` {
		expected = `boolean`
	}
	if actual := types.TypeNameOf(v); actual != expected {
		panic(errors.NewIllegalArgumentType(name, p.Name, p.Type, actual))
	}
}

func (h *hostFunction) Name() string {
	return h.name
}

func (h *hostFunction) Parameters() []rill.Parameter {
	return h.params
}

func (h *hostFunction) Call(c rill.Context, args []rill.Value) rill.Value {
	if h.params != nil {
		given := len(args)
		if given < len(h.params) {
			for _, p := range h.params[given:] {
				if p.Default == nil {
					break
				}
				args = append(args, p.Default)
			}
		}
		if len(args) != len(h.params) {
			panic(errors.NewIllegalArgumentCount(h.name, len(h.params), given))
		}
		for i, p := range h.params {
			checkArgumentType(c, h.name, p, args[i])
		}
	}

	c.Tracer().HostCall(rill.HostCallEvent{Name: h.name, Args: args})
	checkCancelled(c, c.StackTop())
	start := time.Now()
	result := runHostCall(c, h.name, h.f, args)
	checkCancelled(c, c.StackTop())
	checkAutoException(c, c.StackTop(), result)
	c.Tracer().FunctionReturn(rill.FunctionReturnEvent{
		Name: h.name, Value: result, Duration: time.Since(start)})
	return result
}

func (h *hostFunction) Equals(other interface{}, guard rill.Guard) bool {
	return h == other
}

func (h *hostFunction) TypeName() string {
	return `callable`
}

func (h *hostFunction) String() string {
	return h.name + `()`
}

// runHostCall executes the host body on its own goroutine so that the
// configured timeout and the cancellation signal can interrupt the wait. The
// body itself is not killed on timeout; its eventual result is discarded.
func runHostCall(c rill.Context, name string, f rill.HostFunc, args []rill.Value) rill.Value {
	type outcome struct {
		value rill.Value
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					done <- outcome{nil, err}
					return
				}
				done <- outcome{nil, fmt.Errorf(`%v`, r)}
			}
		}()
		v, err := f(c, args)
		done <- outcome{v, err}
	}()

	var expired <-chan time.Time
	if t := c.Timeout(); t > 0 {
		timer := time.NewTimer(t)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case o := <-done:
		if o.err != nil {
			if r, ok := o.err.(issue.Reported); ok {
				panic(r)
			}
			panic(rill.ErrorAt(c, rill.HostFailure, issue.H{`name`: name, `detail`: o.err.Error()}))
		}
		if o.value == nil {
			return nullValue
		}
		return o.value
	case <-expired:
		panic(rill.ErrorAt(c, rill.Timeout, issue.H{`name`: name, `timeout`: c.Timeout().String()}))
	case <-c.Done():
		panic(rill.ErrorAt(c, rill.Cancelled, issue.NoArgs))
	}
}

func evalCall(c rill.Context, n *ast.Call) (rill.Value, *errors.Signal) {
	f, ok := c.Function(n.Name)
	if !ok {
		panic(rill.Error(n, rill.UnknownFunction, issue.H{`name`: n.Name}))
	}
	args, sig := evalArguments(c, n.Arguments)
	if sig != nil {
		return nil, sig
	}
	return callCallable(c, n, f, args)
}

// evalMethodCall handles the .name(args) shorthand, which prepends the
// current pipe value to the arguments.
func evalMethodCall(c rill.Context, n *ast.MethodCall) (rill.Value, *errors.Signal) {
	f, ok := c.Function(n.Name)
	if !ok {
		panic(rill.Error(n, rill.UnknownFunction, issue.H{`name`: n.Name}))
	}
	args, sig := evalArguments(c, n.Arguments)
	if sig != nil {
		return nil, sig
	}
	args = append([]rill.Value{c.PipeValue()}, args...)
	return callCallable(c, n, f, args)
}

func evalInvoke(c rill.Context, n *ast.Invoke) (rill.Value, *errors.Signal) {
	v, sig := eval(c, n.Target)
	if sig != nil {
		return nil, sig
	}
	f, ok := v.(rill.Callable)
	if !ok {
		panic(rill.Error(n, rill.NotCallable, issue.H{`actual`: types.TypeNameOf(v)}))
	}
	args, sig := evalArguments(c, n.Arguments)
	if sig != nil {
		return nil, sig
	}
	return callCallable(c, n, f, args)
}

func evalArguments(c rill.Context, arguments []ast.Node) ([]rill.Value, *errors.Signal) {
	args := make([]rill.Value, len(arguments))
	for i, a := range arguments {
		v, sig := eval(c, a)
		if sig != nil {
			return nil, sig
		}
		args[i] = v
	}
	return args, nil
}

// callCallable pushes the call site onto the location stack so that errors
// raised inside the callable are reported where the call was made.
func callCallable(c rill.Context, location issue.Location, f rill.Callable, args []rill.Value) (rill.Value, *errors.Signal) {
	c.StackPush(location)
	defer c.StackPop()
	defer convertCallError(location)
	return f.Call(c, args), nil
}

// convertCallError turns the argument error types that callables are allowed
// to panic with into located, coded issues. Everything else propagates as is.
func convertCallError(location issue.Location) {
	r := recover()
	if r == nil {
		return
	}
	switch r := r.(type) {
	case *errors.ArgumentsError:
		panic(rill.Error(location, rill.IllegalArgument, issue.H{
			`name`: r.Name(), `number`: 0, `message`: r.Error()}))
	case *errors.IllegalArgument:
		panic(rill.Error(location, rill.IllegalArgument, issue.H{
			`name`: r.Name(), `number`: r.Index() + 1, `message`: r.Error()}))
	case *errors.IllegalArgumentType:
		panic(rill.Error(location, rill.IllegalArgumentType, issue.H{
			`name`: r.Name(), `parameter`: r.Parameter(), `expected`: r.Expected(), `actual`: r.Actual()}))
	case *errors.IllegalArgumentCount:
		panic(rill.Error(location, rill.IllegalArgumentCount, issue.H{
			`name`: r.Name(), `expectedCount`: r.Expected(), `actualCount`: r.Actual()}))
	default:
		panic(r)
	}
}
