package rill

import "github.com/lyraproj/issue/issue"

type builtin struct {
	name    string
	minArgs int
	maxArgs int
	f       BuiltinFunc
}

var builtins = map[string]Callable{}

// AddBuiltin registers a builtin callable under its name. Typically called
// from an init function in the functions package. Last registration wins.
func AddBuiltin(name string, minArgs, maxArgs int, f BuiltinFunc) {
	builtins[name] = &builtin{name, minArgs, maxArgs, f}
}

// EachBuiltin calls the consumer once for every registered builtin.
func EachBuiltin(consumer func(name string, f Callable)) {
	for name, f := range builtins {
		consumer(name, f)
	}
}

func (b *builtin) Name() string {
	return b.name
}

func (b *builtin) Parameters() []Parameter {
	return nil
}

func (b *builtin) Call(c Context, args []Value) Value {
	if len(args) < b.minArgs || b.maxArgs >= 0 && len(args) > b.maxArgs {
		expected := b.minArgs
		if b.maxArgs > b.minArgs {
			expected = b.maxArgs
		}
		panic(ErrorAt(c, IllegalArgumentCount, issue.H{
			`name`: b.name, `expectedCount`: expected, `actualCount`: len(args)}))
	}
	return b.f(c, args)
}

func (b *builtin) Equals(other interface{}, guard Guard) bool {
	return b == other
}

func (b *builtin) TypeName() string {
	return `callable`
}

func (b *builtin) String() string {
	return b.name + `()`
}
