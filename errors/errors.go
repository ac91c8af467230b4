package errors

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/rill"
)

type (
	SignalKind int

	// Signal is the internal control-flow result of evaluating break or
	// return. It is never user visible: block and loop evaluation return it
	// alongside the ordinary value and every caller must either consume it or
	// propagate it. A signal that reaches the top of a statement is an error.
	Signal struct {
		kind     SignalKind
		value    rill.Value
		location issue.Location
	}

	// ArgumentsError is a general error with the arguments of a call, raised
	// by callables that have no call-site location of their own. The call
	// boundary converts it to a located, coded error.
	ArgumentsError struct {
		name  string
		error string
	}

	IllegalArgument struct {
		name  string
		error string
		index int
	}

	IllegalArgumentType struct {
		name      string
		parameter string
		expected  string
		actual    string
	}

	IllegalArgumentCount struct {
		name     string
		expected int
		actual   int
	}
)

const (
	SignalBreak = SignalKind(iota)
	SignalReturn
)

func NewBreak(location issue.Location, value rill.Value) *Signal {
	return &Signal{SignalBreak, value, location}
}

func NewReturn(location issue.Location, value rill.Value) *Signal {
	return &Signal{SignalReturn, value, location}
}

func (s *Signal) Kind() SignalKind {
	return s.kind
}

func (s *Signal) Value() rill.Value {
	return s.value
}

func (s *Signal) Location() issue.Location {
	return s.location
}

func NewArgumentsError(name string, error string) *ArgumentsError {
	return &ArgumentsError{name, error}
}

func NewIllegalArgument(name string, index int, error string) *IllegalArgument {
	return &IllegalArgument{name, error, index}
}

func NewIllegalArgumentType(name, parameter, expected, actual string) *IllegalArgumentType {
	return &IllegalArgumentType{name, parameter, expected, actual}
}

func NewIllegalArgumentCount(name string, expected, actual int) *IllegalArgumentCount {
	return &IllegalArgumentCount{name, expected, actual}
}

func (e *ArgumentsError) Name() string {
	return e.name
}

func (e *ArgumentsError) Error() string {
	return fmt.Sprintf(`%s: %s`, e.name, e.error)
}

func (e *IllegalArgument) Name() string {
	return e.name
}

func (e *IllegalArgument) Index() int {
	return e.index
}

func (e *IllegalArgument) Error() string {
	return fmt.Sprintf(`%s argument %d: %s`, e.name, e.index+1, e.error)
}

func (e *IllegalArgumentType) Name() string {
	return e.name
}

func (e *IllegalArgumentType) Parameter() string {
	return e.parameter
}

func (e *IllegalArgumentType) Expected() string {
	return e.expected
}

func (e *IllegalArgumentType) Actual() string {
	return e.actual
}

func (e *IllegalArgumentType) Error() string {
	return fmt.Sprintf(`%s parameter '%s' expects %s, got %s`, e.name, e.parameter, e.expected, e.actual)
}

func (e *IllegalArgumentCount) Name() string {
	return e.name
}

func (e *IllegalArgumentCount) Expected() int {
	return e.expected
}

func (e *IllegalArgumentCount) Actual() int {
	return e.actual
}

func (e *IllegalArgumentCount) Error() string {
	return fmt.Sprintf(`%s expects %d arguments, got %d`, e.name, e.expected, e.actual)
}
