// Package ast defines the tree consumed by the evaluator. Trees are produced
// by the parser front end and are assumed to be validated. Every node carries
// a source span used for error reporting only, never for execution semantics.
package ast

type (
	// Span is a source region. It implements issue.Location so that any node
	// can be handed directly to the error reporting machinery.
	Span struct {
		Source    string
		StartLine int
		StartCol  int
		Offset    int
		EndLine   int
		EndCol    int
		EndOffset int
	}

	Node interface {
		File() string
		Line() int
		Pos() int
	}

	Program struct {
		Span
		Statements []Node
	}

	LiteralNull struct {
		Span
	}

	LiteralBoolean struct {
		Span
		Value bool
	}

	LiteralNumber struct {
		Span
		Value float64
	}

	LiteralString struct {
		Span
		Value string
	}

	// Interpolation is a string with embedded expressions. Segments are
	// LiteralString nodes or arbitrary expressions.
	Interpolation struct {
		Span
		Segments []Node
	}

	ListLiteral struct {
		Span
		Elements []Node
	}

	KeyKind int

	// DictEntry is one entry of a dict literal. StaticKey entries carry the
	// key literal, VariableKey entries the variable name, ComputedKey entries
	// an expression that must evaluate to a string.
	DictEntry struct {
		Span
		Kind  KeyKind
		Key   string
		Expr  Node
		Value Node
	}

	DictLiteral struct {
		Span
		Entries []*DictEntry
	}

	// Variable references a captured name, $name in source.
	Variable struct {
		Span
		Name string
	}

	// PipeValue is the implicit current value, $ in source.
	PipeValue struct {
		Span
	}

	// Pipe threads a value left to right: the head is evaluated first, then
	// each stage with the pipe value rebound to the previous result.
	Pipe struct {
		Span
		Head   Node
		Stages []Node
	}

	// Capture binds the value of an expression to a name in the current scope.
	Capture struct {
		Span
		Name  string
		Value Node
	}

	// Destructure binds elements of a list (by position) or entries of a dict
	// (by name) to several names at once.
	Destructure struct {
		Span
		Names []string
		Value Node
	}

	Conditional struct {
		Span
		Condition Node
		Then      Node
		Else      Node
	}

	// Block is a statement sequence. Blocks introduce no scope of their own.
	Block struct {
		Span
		Statements []Node
	}

	AnnotationEntry struct {
		Span
		Key    string
		Value  Node
		Spread bool
	}

	ParameterDecl struct {
		Span
		Name        string
		Type        string
		Default     Node
		Annotations []*AnnotationEntry
	}

	ClosureLiteral struct {
		Span
		Parameters  []*ParameterDecl
		Body        Node
		Annotations []*AnnotationEntry
	}

	// Call invokes a named function from the registry.
	Call struct {
		Span
		Name      string
		Arguments []Node
	}

	// MethodCall is the shorthand form .name(args), invoking a registry
	// function with the current pipe value prepended to the arguments.
	MethodCall struct {
		Span
		Name      string
		Arguments []Node
	}

	// Invoke calls the callable that the target expression evaluates to.
	Invoke struct {
		Span
		Target    Node
		Arguments []Node
	}

	OpKind int

	// CollectionOp is one of the four named collection operators. Source nil
	// means the current pipe value. Seed is the fold seed, or the optional
	// accumulator start of each.
	CollectionOp struct {
		Span
		Op     OpKind
		Source Node
		Body   Node
		Seed   Node
	}

	// While is the cond @ body loop, or the do-while form @ body ? cond when
	// PostCondition is set.
	While struct {
		Span
		Condition     Node
		Body          Node
		PostCondition bool
	}

	// ForEach is the list @ body loop form.
	ForEach struct {
		Span
		Source Node
		Body   Node
	}

	Break struct {
		Span
		Value Node
	}

	Return struct {
		Span
		Value Node
	}

	// Annotated attaches a metadata map to the statement that follows it.
	Annotated struct {
		Span
		Annotations []*AnnotationEntry
		Statement   Node
	}

	// Member accesses a dict entry by name.
	Member struct {
		Span
		Target Node
		Name   string
	}

	// Index accesses a list element or a dict entry by evaluated key.
	Index struct {
		Span
		Target Node
		Key    Node
	}

	Infix struct {
		Span
		Operator string
		Lhs      Node
		Rhs      Node
	}

	Prefix struct {
		Span
		Operator string
		Operand  Node
	}
)

const (
	StaticKey = KeyKind(iota)
	VariableKey
	ComputedKey
)

const (
	OpEach = OpKind(iota)
	OpMap
	OpFilter
	OpFold
)

func (k OpKind) String() string {
	switch k {
	case OpEach:
		return `each`
	case OpMap:
		return `map`
	case OpFilter:
		return `filter`
	case OpFold:
		return `fold`
	}
	return `unknown`
}

func (s Span) File() string {
	return s.Source
}

func (s Span) Line() int {
	return s.StartLine
}

func (s Span) Pos() int {
	return s.StartCol
}
