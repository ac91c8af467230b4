package evaluator

import (
	"context"
	"time"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/semver/semver"

	// Register the runtime builtins.
	_ "github.com/rill-lang/rill/functions"
	"github.com/rill-lang/rill/rill"
)

// evalContext holds everything a single run owns: the scope chain, the pipe
// value, the function registry, the annotation stack, the location stack, and
// the cancellation signal. It is never shared between concurrent runs; a
// parallel branch gets its own context through Fork.
type evalContext struct {
	context.Context
	scope          rill.Scope
	pipe           rill.Value
	functions      map[string]rill.Callable
	logger         rill.Logger
	tracer         *rill.Tracer
	annotations    []rill.Value
	stack          []issue.Location
	timeout        time.Duration
	parallel       bool
	autoExceptions []string
}

// NewContext creates the context for one script execution. The registry is
// populated once: runtime builtins first, then the application supplied
// functions, which take precedence on a name collision.
func NewContext(opts rill.Options) (rill.Context, issue.Reported) {
	if opts.RequiresRuntime != `` {
		vr, err := semver.ParseVersionRange(opts.RequiresRuntime)
		if err != nil || !vr.Includes(rill.RuntimeVersion) {
			return nil, rill.Error(nil, rill.RuntimeIncompatible, issue.H{
				`version`: rill.VersionString, `required`: opts.RequiresRuntime})
		}
	}

	parent := opts.Signal
	if parent == nil {
		parent = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = rill.NewStdLogger()
	}

	functions := make(map[string]rill.Callable, len(opts.Functions)+16)
	rill.EachBuiltin(func(name string, f rill.Callable) {
		functions[name] = f
	})
	for name, f := range opts.Functions {
		functions[name] = f
	}

	scope := NewScope(nil)
	for name, value := range opts.Variables {
		scope.Capture(name, value)
	}

	return &evalContext{
		Context:        parent,
		scope:          scope,
		pipe:           nullValue,
		functions:      functions,
		logger:         logger,
		tracer:         opts.Tracer,
		annotations:    make([]rill.Value, 0, 4),
		stack:          make([]issue.Location, 0, 8),
		timeout:        opts.Timeout,
		parallel:       opts.Parallel,
		autoExceptions: opts.AutoExceptions,
	}, nil
}

func (c *evalContext) Fork() rill.Context {
	clone := *c
	clone.annotations = make([]rill.Value, len(c.annotations))
	copy(clone.annotations, c.annotations)
	clone.stack = make([]issue.Location, len(c.stack))
	copy(clone.stack, c.stack)
	return &clone
}

func (c *evalContext) Scope() rill.Scope {
	return c.scope
}

func (c *evalContext) DoWithScope(scope rill.Scope, doer func()) {
	saved := c.scope
	defer func() {
		c.scope = saved
	}()
	c.scope = scope
	doer()
}

func (c *evalContext) PipeValue() rill.Value {
	return c.pipe
}

func (c *evalContext) SetPipeValue(value rill.Value) {
	if value == nil {
		value = nullValue
	}
	c.pipe = value
}

func (c *evalContext) Function(name string) (rill.Callable, bool) {
	f, ok := c.functions[name]
	return f, ok
}

func (c *evalContext) Logger() rill.Logger {
	return c.logger
}

func (c *evalContext) Tracer() *rill.Tracer {
	return c.tracer
}

func (c *evalContext) PushAnnotation(annotation rill.Value) {
	c.annotations = append(c.annotations, annotation)
}

func (c *evalContext) PopAnnotation() {
	c.annotations = c.annotations[:len(c.annotations)-1]
}

func (c *evalContext) Annotations() []rill.Value {
	return c.annotations
}

func (c *evalContext) AnnotationDepth() int {
	return len(c.annotations)
}

func (c *evalContext) StackPush(location issue.Location) {
	c.stack = append(c.stack, location)
}

func (c *evalContext) StackPop() {
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *evalContext) StackTop() issue.Location {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *evalContext) Timeout() time.Duration {
	return c.timeout
}

func (c *evalContext) Parallel() bool {
	return c.parallel
}

func (c *evalContext) AutoExceptions() []string {
	return c.autoExceptions
}
