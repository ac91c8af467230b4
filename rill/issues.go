package rill

import "github.com/lyraproj/issue/issue"

// Error identifiers are stable alphanumeric codes partitioned by category
// prefix: L for lexical, P for syntactic, and R for runtime. The lexical and
// syntactic codes are registered here so that front ends share one catalog,
// but this package never raises them.
const (
	LexMalformedToken     = `L_MALFORMED_TOKEN`
	LexUnterminatedString = `L_UNTERMINATED_STRING`

	ParseUnexpectedToken  = `P_UNEXPECTED_TOKEN`
	ParseUnterminatedBody = `P_UNTERMINATED_BODY`

	AnnotationSpreadType   = `R_ANNOTATION_SPREAD_TYPE`
	ArithmeticOperand      = `R_ARITHMETIC_OPERAND`
	AutoException          = `R_AUTO_EXCEPTION`
	BreakInOperator        = `R_BREAK_IN_OPERATOR`
	Cancelled              = `R_CANCELLED`
	ComparisonIncompatible = `R_COMPARISON_INCOMPATIBLE`
	ConcatOperand          = `R_CONCAT_OPERAND`
	ConditionNotBoolean    = `R_CONDITION_NOT_BOOLEAN`
	DataParse              = `R_DATA_PARSE`
	DestructureKey         = `R_DESTRUCTURE_KEY`
	DestructureMismatch    = `R_DESTRUCTURE_MISMATCH`
	DictKeyExprType        = `R_DICT_KEY_EXPR_TYPE`
	DictKeyType            = `R_DICT_KEY_TYPE`
	DimensionMismatch      = `R_DIMENSION_MISMATCH`
	Failure                = `R_FAILURE`
	HostFailure            = `R_HOST_FAILURE`
	IllegalArgument        = `R_ILLEGAL_ARGUMENT`
	IllegalArgumentCount   = `R_ILLEGAL_ARGUMENT_COUNT`
	IllegalArgumentType    = `R_ILLEGAL_ARGUMENT_TYPE`
	IllegalBreak           = `R_ILLEGAL_BREAK`
	IllegalReturn          = `R_ILLEGAL_RETURN`
	NotCallable            = `R_NOT_CALLABLE`
	NotIterable            = `R_NOT_ITERABLE`
	RuntimeIncompatible    = `R_RUNTIME_INCOMPATIBLE`
	Timeout                = `R_TIMEOUT`
	TypeMismatch           = `R_TYPE_MISMATCH`
	UnknownFunction        = `R_UNKNOWN_FUNCTION`
	UnknownVariable        = `R_UNKNOWN_VARIABLE`
	UnsupportedNode        = `R_UNSUPPORTED_NODE`
	VectorCoercion         = `R_VECTOR_COERCION`
)

func init() {
	issue.Hard(LexMalformedToken, `malformed token '%{token}'`)
	issue.Hard(LexUnterminatedString, `unterminated string starting at column %{column}`)

	issue.Hard(ParseUnexpectedToken, `unexpected token '%{token}'`)
	issue.Hard(ParseUnterminatedBody, `unterminated %{body}`)

	issue.Hard(AnnotationSpreadType, `annotation spread must be a dict, got %{actual}`)
	issue.Hard(ArithmeticOperand, `operator '%{operator}' requires number operands, got %{left} and %{right}`)
	issue.Hard(AutoException, `auto exception: %{message}`)
	issue.Hard2(BreakInOperator, `break is not allowed in %{operator} body`, issue.HF{`operator`: issue.AnOrA})
	issue.Hard(Cancelled, `execution cancelled`)
	issue.Hard(ComparisonIncompatible, `cannot compare %{left} with %{right}`)
	issue.Hard(ConcatOperand, `both operands of '+' must be strings, got %{left} and %{right}`)
	issue.Hard(ConditionNotBoolean, `condition must be a boolean, got %{actual}`)
	issue.Hard(DataParse, `failed to parse %{language}: %{detail}`)
	issue.Hard(DestructureKey, `no key '%{key}' in destructured dict`)
	issue.Hard(DestructureMismatch, `cannot destructure %{actual} values into %{expected} names`)
	issue.Hard(DictKeyExprType, `Dict key evaluated to %{actual}, expected string`)
	issue.Hard(DictKeyType, `Dict key must be string, got %{actual}`)
	issue.Hard(DimensionMismatch, `vector dimensions differ, %{left} versus %{right}`)
	issue.Hard(Failure, `%{message}`)
	issue.Hard(HostFailure, `call to '%{name}' failed: %{detail}`)
	issue.Hard(IllegalArgument, `error calling '%{name}', argument %{number}: %{message}`)
	issue.Hard(IllegalArgumentCount, `'%{name}' expects %{expectedCount} arguments, got %{actualCount}`)
	issue.Hard(IllegalArgumentType, `'%{name}' parameter '%{parameter}' expects %{expected}, got %{actual}`)
	issue.Hard(IllegalBreak, `break from context where this is illegal`)
	issue.Hard(IllegalReturn, `return from context where this is illegal`)
	issue.Hard2(NotCallable, `%{actual} is not callable`, issue.HF{`actual`: issue.AnOrA})
	issue.Hard2(NotIterable, `%{actual} is not iterable`, issue.HF{`actual`: issue.AnOrA})
	issue.Hard(RuntimeIncompatible, `runtime version %{version} does not satisfy required range '%{required}'`)
	issue.Hard(Timeout, `call to '%{name}' timed out after %{timeout}`)
	issue.Hard(TypeMismatch, `expected %{expected}, got %{actual}`)
	issue.Hard(UnknownFunction, `unknown function '%{name}'`)
	issue.Hard(UnknownVariable, `undefined variable '%{name}'`)
	issue.Hard2(UnsupportedNode, `evaluator cannot handle %{node}`, issue.HF{`node`: issue.AnOrA})
	issue.Hard(VectorCoercion, `vector[%{model}] cannot be used as %{usage}`)
}

// Error creates a Reported with the given issue code, location, and arguments.
// Typical use is to panic with the returned value.
func Error(location issue.Location, code issue.Code, args issue.H) issue.Reported {
	return issue.NewReported(code, issue.SeverityError, args, location)
}

// ErrorAt is like Error but uses the top of the context's location stack.
func ErrorAt(c Context, code issue.Code, args issue.H) issue.Reported {
	var location issue.Location
	if c != nil {
		location = c.StackTop()
	}
	return issue.NewReported(code, issue.SeverityError, args, location)
}

// Category returns the error category for a code: lexical, syntactic, or
// runtime.
func Category(code issue.Code) string {
	s := string(code)
	if len(s) > 1 && s[1] == '_' {
		switch s[0] {
		case 'L':
			return `lexical`
		case 'P':
			return `syntactic`
		case 'R':
			return `runtime`
		}
	}
	return `unknown`
}
