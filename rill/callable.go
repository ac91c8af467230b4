package rill

type (
	// Callable is the invocation contract shared by script closures, builtins,
	// and application supplied functions. Call panics with an issue.Reported
	// on failure. The panic is recovered at the statement boundary.
	Callable interface {
		Value

		Name() string

		// Parameters returns the declared parameters, or nil for callables with
		// an open, unvalidated contract.
		Parameters() []Parameter

		Call(c Context, args []Value) Value
	}

	// Parameter describes one declared parameter of a callable. Type, when not
	// empty, is one of string, number, bool, list, or dict.
	Parameter struct {
		Name        string
		Type        string
		Default     Value
		Description string
	}

	// HostFunc is the signature of an application supplied function body. The
	// passed context doubles as the cancellation context of the current run.
	HostFunc func(c Context, args []Value) (Value, error)

	// BuiltinFunc is the signature of a function shipped with the runtime.
	BuiltinFunc func(c Context, args []Value) Value
)
