package evaluator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/ast"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func num(f float64) ast.Node {
	return &ast.LiteralNumber{Value: f}
}

func boolean(b bool) ast.Node {
	return &ast.LiteralBoolean{Value: b}
}

func text(s string) ast.Node {
	return &ast.LiteralString{Value: s}
}

func varRef(name string) ast.Node {
	return &ast.Variable{Name: name}
}

func pipeRef() ast.Node {
	return &ast.PipeValue{}
}

func bind(name string, value ast.Node) ast.Node {
	return &ast.Capture{Name: name, Value: value}
}

func infix(operator string, lhs, rhs ast.Node) ast.Node {
	return &ast.Infix{Operator: operator, Lhs: lhs, Rhs: rhs}
}

func block(statements ...ast.Node) ast.Node {
	return &ast.Block{Statements: statements}
}

func program(statements ...ast.Node) *ast.Program {
	return &ast.Program{Statements: statements}
}

func newTestContext(t *testing.T, opts rill.Options) rill.Context {
	t.Helper()
	c, err := NewContext(opts)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func evaluate(t *testing.T, opts rill.Options, statements ...ast.Node) rill.Value {
	t.Helper()
	c := newTestContext(t, opts)
	v, err := Evaluate(c, program(statements...))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func evaluateError(t *testing.T, opts rill.Options, statements ...ast.Node) issue.Reported {
	t.Helper()
	c := newTestContext(t, opts)
	_, err := Evaluate(c, program(statements...))
	if err == nil {
		t.Fatal(`expected error, got none`)
	}
	return err
}

func expectNumber(t *testing.T, v rill.Value, expected float64) {
	t.Helper()
	n, ok := v.(*types.NumberValue)
	if !ok {
		t.Fatalf(`expected number, got %s %s`, types.TypeNameOf(v), v)
	}
	if n.Float() != expected {
		t.Errorf(`expected %v, got %v`, expected, n.Float())
	}
}

func expectString(t *testing.T, v rill.Value, expected string) {
	t.Helper()
	s, ok := v.(*types.StringValue)
	if !ok {
		t.Fatalf(`expected string, got %s %s`, types.TypeNameOf(v), v)
	}
	if s.String() != expected {
		t.Errorf(`expected %q, got %q`, expected, s.String())
	}
}

func expectCode(t *testing.T, err issue.Reported, code issue.Code) {
	t.Helper()
	if err.Code() != code {
		t.Errorf(`expected %s, got %s: %s`, code, err.Code(), err.Error())
	}
}

func TestLiterals(t *testing.T) {
	v := evaluate(t, rill.Options{}, num(42))
	expectNumber(t, v, 42)

	v = evaluate(t, rill.Options{}, text(`hello`))
	expectString(t, v, `hello`)

	v = evaluate(t, rill.Options{}, boolean(true))
	if b, ok := v.(*types.BooleanValue); !ok || !b.Bool() {
		t.Errorf(`expected true, got %s`, v)
	}

	v = evaluate(t, rill.Options{}, &ast.LiteralNull{})
	if v.TypeName() != `null` {
		t.Errorf(`expected null, got %s`, v.TypeName())
	}
}

func TestStatementsThreadPipeValue(t *testing.T) {
	// The value of statement N is the pipe value entering statement N+1.
	v := evaluate(t, rill.Options{},
		num(20),
		infix(`+`, pipeRef(), pipeRef()),
		infix(`+`, pipeRef(), num(2)))
	expectNumber(t, v, 42)
}

func TestPipeRebindsPerStage(t *testing.T) {
	v := evaluate(t, rill.Options{}, &ast.Pipe{
		Head: num(1),
		Stages: []ast.Node{
			infix(`+`, pipeRef(), num(1)),
			infix(`*`, pipeRef(), num(10)),
		}})
	expectNumber(t, v, 20)
}

func TestPipeInvokesCallableStage(t *testing.T) {
	double := &ast.ClosureLiteral{
		Parameters: []*ast.ParameterDecl{{Name: `x`}},
		Body:       infix(`*`, varRef(`x`), num(2))}
	v := evaluate(t, rill.Options{},
		bind(`double`, double),
		&ast.Pipe{Head: num(21), Stages: []ast.Node{varRef(`double`)}})
	expectNumber(t, v, 42)
}

func TestCaptureAndLookup(t *testing.T) {
	v := evaluate(t, rill.Options{},
		bind(`x`, num(40)),
		infix(`+`, varRef(`x`), num(2)))
	expectNumber(t, v, 42)
}

func TestUnknownVariable(t *testing.T) {
	err := evaluateError(t, rill.Options{}, varRef(`nope`))
	expectCode(t, err, rill.UnknownVariable)
	if rill.Category(err.Code()) != `runtime` {
		t.Errorf(`expected runtime category, got %s`, rill.Category(err.Code()))
	}
}

func TestPreCapturedVariables(t *testing.T) {
	v := evaluate(t, rill.Options{
		Variables: map[string]rill.Value{`greeting`: types.WrapString(`hi`)}},
		varRef(`greeting`))
	expectString(t, v, `hi`)
}

func TestConditional(t *testing.T) {
	v := evaluate(t, rill.Options{}, &ast.Conditional{
		Condition: infix(`<`, num(1), num(2)),
		Then:      text(`yes`),
		Else:      text(`no`)})
	expectString(t, v, `yes`)

	// Missing else branch yields null.
	v = evaluate(t, rill.Options{}, &ast.Conditional{
		Condition: boolean(false),
		Then:      text(`yes`)})
	if v.TypeName() != `null` {
		t.Errorf(`expected null, got %s`, v.TypeName())
	}
}

func TestConditionMustBeBoolean(t *testing.T) {
	err := evaluateError(t, rill.Options{}, &ast.Conditional{
		Condition: num(1),
		Then:      text(`yes`)})
	expectCode(t, err, rill.ConditionNotBoolean)
}

func TestInterpolation(t *testing.T) {
	v := evaluate(t, rill.Options{},
		bind(`n`, num(3)),
		&ast.Interpolation{Segments: []ast.Node{
			text(`got `), varRef(`n`), text(` items`)}})
	expectString(t, v, `got 3 items`)
}

func TestInterpolationRejectsVector(t *testing.T) {
	err := evaluateError(t, rill.Options{
		Variables: map[string]rill.Value{`e`: types.WrapVector(`m1`, []float64{1, 2})}},
		&ast.Interpolation{Segments: []ast.Node{text(`v=`), varRef(`e`)}})
	expectCode(t, err, rill.VectorCoercion)
}

func TestListLiteralAndIndex(t *testing.T) {
	list := &ast.ListLiteral{Elements: []ast.Node{num(1), num(2), num(3)}}
	v := evaluate(t, rill.Options{}, &ast.Index{Target: list, Key: num(1)})
	expectNumber(t, v, 2)

	// Out of range reads null rather than erroring.
	v = evaluate(t, rill.Options{}, &ast.Index{Target: list, Key: num(9)})
	if v.TypeName() != `null` {
		t.Errorf(`expected null, got %s`, v.TypeName())
	}
}

func TestDictKeyKinds(t *testing.T) {
	// $k: "done" followed by a static entry k and a computed entry that also
	// resolves to "done". Last write wins regardless of key kind.
	d := &ast.DictLiteral{Entries: []*ast.DictEntry{
		{Kind: ast.VariableKey, Key: `k`, Value: num(1)},
		{Kind: ast.StaticKey, Key: `other`, Value: num(2)},
		{Kind: ast.ComputedKey, Expr: text(`done`), Value: num(3)},
	}}
	v := evaluate(t, rill.Options{
		Variables: map[string]rill.Value{`k`: types.WrapString(`done`)}}, d)
	dict, ok := v.(*types.DictValue)
	if !ok {
		t.Fatalf(`expected dict, got %s`, types.TypeNameOf(v))
	}
	if dict.Len() != 2 {
		t.Errorf(`expected 2 entries, got %d`, dict.Len())
	}
	expectNumber(t, dict.Get2(`done`, types.Null), 3)
	if keys := dict.Keys(); len(keys) != 2 || keys[0] != `done` || keys[1] != `other` {
		t.Errorf(`unexpected key order %v`, keys)
	}
}

func TestDictKeyMustBeString(t *testing.T) {
	err := evaluateError(t, rill.Options{
		Variables: map[string]rill.Value{`k`: types.WrapNumber(1)}},
		&ast.DictLiteral{Entries: []*ast.DictEntry{
			{Kind: ast.VariableKey, Key: `k`, Value: num(1)}}})
	expectCode(t, err, rill.DictKeyType)
	if !strings.HasPrefix(err.Error(), `Dict key must be string, got number`) {
		t.Errorf(`unexpected message %q`, err.Error())
	}

	err = evaluateError(t, rill.Options{},
		&ast.DictLiteral{Entries: []*ast.DictEntry{
			{Kind: ast.ComputedKey, Expr: num(1), Value: num(1)}}})
	expectCode(t, err, rill.DictKeyExprType)
	if !strings.HasPrefix(err.Error(), `Dict key evaluated to number, expected string`) {
		t.Errorf(`unexpected message %q`, err.Error())
	}
}

func TestMemberAccess(t *testing.T) {
	d := &ast.DictLiteral{Entries: []*ast.DictEntry{
		{Kind: ast.StaticKey, Key: `name`, Value: text(`rill`)}}}
	v := evaluate(t, rill.Options{}, &ast.Member{Target: d, Name: `name`})
	expectString(t, v, `rill`)

	v = evaluate(t, rill.Options{}, &ast.Member{Target: d, Name: `missing`})
	if v.TypeName() != `null` {
		t.Errorf(`expected null, got %s`, v.TypeName())
	}
}

func TestDestructureList(t *testing.T) {
	v := evaluate(t, rill.Options{},
		&ast.Destructure{Names: []string{`a`, `b`},
			Value: &ast.ListLiteral{Elements: []ast.Node{num(1), num(2)}}},
		infix(`+`, varRef(`a`), varRef(`b`)))
	expectNumber(t, v, 3)

	err := evaluateError(t, rill.Options{},
		&ast.Destructure{Names: []string{`a`, `b`, `c`},
			Value: &ast.ListLiteral{Elements: []ast.Node{num(1), num(2)}}})
	expectCode(t, err, rill.DestructureMismatch)
}

func TestDestructureDict(t *testing.T) {
	d := &ast.DictLiteral{Entries: []*ast.DictEntry{
		{Kind: ast.StaticKey, Key: `x`, Value: num(10)},
		{Kind: ast.StaticKey, Key: `y`, Value: num(32)}}}
	v := evaluate(t, rill.Options{},
		&ast.Destructure{Names: []string{`x`, `y`}, Value: d},
		infix(`+`, varRef(`x`), varRef(`y`)))
	expectNumber(t, v, 42)

	err := evaluateError(t, rill.Options{},
		&ast.Destructure{Names: []string{`z`}, Value: d})
	expectCode(t, err, rill.DestructureKey)
}

func TestBlockConsumesReturn(t *testing.T) {
	v := evaluate(t, rill.Options{}, block(
		num(1),
		&ast.Return{Value: num(42)},
		num(2)))
	expectNumber(t, v, 42)
}

func TestBareBreakAndReturnUsePipeValue(t *testing.T) {
	v := evaluate(t, rill.Options{}, block(num(7), &ast.Return{}))
	expectNumber(t, v, 7)

	v = evaluate(t, rill.Options{}, &ast.While{
		Condition: boolean(true),
		Body:      block(num(9), &ast.Break{})})
	expectNumber(t, v, 9)
}

func TestTopLevelBreakIsIllegal(t *testing.T) {
	err := evaluateError(t, rill.Options{}, &ast.Break{})
	expectCode(t, err, rill.IllegalBreak)

	err = evaluateError(t, rill.Options{}, &ast.Return{Value: num(1)})
	expectCode(t, err, rill.IllegalReturn)
}

func TestRuntimeVersionGate(t *testing.T) {
	if _, err := NewContext(rill.Options{RequiresRuntime: `>=0.1.0 <1.0.0`}); err != nil {
		t.Errorf(`expected current version to satisfy range: %s`, err.Error())
	}
	_, err := NewContext(rill.Options{RequiresRuntime: `>=2.0.0`})
	if err == nil {
		t.Fatal(`expected version gate to reject`)
	}
	expectCode(t, err, rill.RuntimeIncompatible)
}

func ExampleEvaluate() {
	c, _ := NewContext(rill.Options{})
	v, _ := Evaluate(c, program(
		bind(`x`, num(40)),
		infix(`+`, varRef(`x`), num(2))))
	fmt.Println(v)
	// Output: 42
}
