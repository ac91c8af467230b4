package rill

import (
	"context"
	"time"

	"github.com/lyraproj/issue/issue"
)

type (
	// Context holds all state of one evaluation run. Since it contains the
	// location stack, the pipe value, and the annotation stack, each run must
	// use a context of its own. Contexts are never shared between concurrently
	// executing scripts.
	Context interface {
		context.Context

		// Fork a new context for a parallel branch of this run. The fork shares
		// the function registry, logger, and tracer. The location stack and the
		// annotation stack are shallow copied, the scope is shared.
		Fork() Context

		Scope() Scope

		// DoWithScope calls the doer with the given scope active. The previous
		// scope is restored before the call returns, also on panic.
		DoWithScope(scope Scope, doer func())

		PipeValue() Value

		SetPipeValue(value Value)

		// Function looks up a callable in the registry populated at
		// construction from the runtime builtins and the application supplied
		// functions, the latter taking precedence.
		Function(name string) (Callable, bool)

		Logger() Logger

		Tracer() *Tracer

		// PushAnnotation pushes an evaluated annotation map. Every push is paired
		// with a pop on all exit paths of the annotated statement.
		PushAnnotation(annotation Value)

		PopAnnotation()

		// Annotations returns the live annotation stack, innermost last. The
		// returned slice must not be modified.
		Annotations() []Value

		AnnotationDepth() int

		StackPush(location issue.Location)

		StackPop()

		StackTop() issue.Location

		// Timeout is the per host-call deadline, zero when unlimited.
		Timeout() time.Duration

		Parallel() bool

		// AutoExceptions returns the configured sentinel prefixes that turn a
		// produced string into an error.
		AutoExceptions() []string
	}

	// Options is the recognized configuration for a context.
	Options struct {
		// Functions are application supplied callables, keyed by the name used
		// to invoke them from script.
		Functions map[string]Callable

		// Variables are pre-captured into the root scope.
		Variables map[string]Value

		// Signal, when not nil, is the cancellation parent of the run.
		Signal context.Context

		// Timeout bounds each host-callable invocation.
		Timeout time.Duration

		// AutoExceptions lists string prefixes that raise R_AUTO_EXCEPTION when
		// a host call or a statement produces a matching string.
		AutoExceptions []string

		Tracer *Tracer

		// Parallel enables concurrent evaluation of map and filter bodies.
		Parallel bool

		// RequiresRuntime is a semver range that the runtime version must
		// satisfy, empty when any version will do.
		RequiresRuntime string

		Logger Logger
	}

	StepStartEvent struct {
		Index     int
		Total     int
		PipeValue Value
	}

	StepEndEvent struct {
		Index    int
		Total    int
		Value    Value
		Duration time.Duration
	}

	HostCallEvent struct {
		Name string
		Args []Value
	}

	FunctionReturnEvent struct {
		Name     string
		Value    Value
		Duration time.Duration
	}

	CaptureEvent struct {
		Name  string
		Value Value
	}

	ErrorEvent struct {
		Index int
		Err   issue.Reported
	}

	// Tracer is a set of optional callbacks fired synchronously at well-defined
	// points during evaluation. A Tracer is never mutated once a run started.
	Tracer struct {
		OnStepStart      func(StepStartEvent)
		OnStepEnd        func(StepEndEvent)
		OnHostCall       func(HostCallEvent)
		OnFunctionReturn func(FunctionReturnEvent)
		OnCapture        func(CaptureEvent)
		OnError          func(ErrorEvent)
	}
)

func (t *Tracer) StepStart(e StepStartEvent) {
	if t != nil && t.OnStepStart != nil {
		t.OnStepStart(e)
	}
}

func (t *Tracer) StepEnd(e StepEndEvent) {
	if t != nil && t.OnStepEnd != nil {
		t.OnStepEnd(e)
	}
}

func (t *Tracer) HostCall(e HostCallEvent) {
	if t != nil && t.OnHostCall != nil {
		t.OnHostCall(e)
	}
}

func (t *Tracer) FunctionReturn(e FunctionReturnEvent) {
	if t != nil && t.OnFunctionReturn != nil {
		t.OnFunctionReturn(e)
	}
}

func (t *Tracer) Capture(e CaptureEvent) {
	if t != nil && t.OnCapture != nil {
		t.OnCapture(e)
	}
}

func (t *Tracer) Error(e ErrorEvent) {
	if t != nil && t.OnError != nil {
		t.OnError(e)
	}
}
