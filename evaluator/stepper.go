package evaluator

import (
	"time"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/ast"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/rill"
)

// Stepper executes one top-level statement per call to Step. It is the only
// place where a raised issue.Reported is recovered, so whole-script
// evaluation and stepping share every error path.
type Stepper struct {
	c       rill.Context
	program *ast.Program
	index   int
}

func NewStepper(c rill.Context, program *ast.Program) *Stepper {
	return &Stepper{c: c, program: program}
}

// Done reports whether all statements have been executed.
func (s *Stepper) Done() bool {
	return s.index >= len(s.program.Statements)
}

// Index returns the zero based index of the next statement to execute.
func (s *Stepper) Index() int {
	return s.index
}

func (s *Stepper) Total() int {
	return len(s.program.Statements)
}

// Step executes the next statement. The statement's value becomes the pipe
// value of the following statement. A break or return reaching a statement
// boundary is an error; the statement counts as executed when it errors.
func (s *Stepper) Step() (result rill.Value, err issue.Reported) {
	if s.Done() {
		return nullValue, nil
	}
	statement := s.program.Statements[s.index]
	index := s.index
	s.index++

	defer func() {
		if r := recover(); r != nil {
			reported, ok := r.(issue.Reported)
			if !ok {
				panic(r)
			}
			s.c.Tracer().Error(rill.ErrorEvent{Index: index, Err: reported})
			result = nullValue
			err = reported
		}
	}()

	checkCancelled(s.c, statement)
	s.c.Tracer().StepStart(rill.StepStartEvent{
		Index: index, Total: s.Total(), PipeValue: s.c.PipeValue()})
	start := time.Now()

	v, sig := eval(s.c, statement)
	if sig != nil {
		code := issue.Code(rill.IllegalBreak)
		if sig.Kind() == errors.SignalReturn {
			code = rill.IllegalReturn
		}
		panic(rill.Error(sig.Location(), code, issue.NoArgs))
	}
	checkAutoException(s.c, statement, v)
	s.c.SetPipeValue(v)

	s.c.Tracer().StepEnd(rill.StepEndEvent{
		Index: index, Total: s.Total(), Value: v, Duration: time.Since(start)})
	return v, nil
}
