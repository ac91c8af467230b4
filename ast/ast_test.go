package ast

import "testing"

func TestEqualIgnoresSpans(t *testing.T) {
	a := &Infix{Span: Span{Source: `a.rill`, StartLine: 1}, Operator: `+`,
		Lhs: &LiteralNumber{Value: 1}, Rhs: &Variable{Name: `x`}}
	b := &Infix{Span: Span{Source: `b.rill`, StartLine: 9}, Operator: `+`,
		Lhs: &LiteralNumber{Span: Span{StartCol: 4}, Value: 1}, Rhs: &Variable{Name: `x`}}
	if !Equal(a, b) {
		t.Error(`nodes differing only in spans should be equal`)
	}
}

func TestEqualDistinguishesStructure(t *testing.T) {
	a := &Infix{Operator: `+`, Lhs: &LiteralNumber{Value: 1}, Rhs: &LiteralNumber{Value: 2}}
	b := &Infix{Operator: `-`, Lhs: &LiteralNumber{Value: 1}, Rhs: &LiteralNumber{Value: 2}}
	if Equal(a, b) {
		t.Error(`differing operators should not be equal`)
	}
	c := &Infix{Operator: `+`, Lhs: &LiteralNumber{Value: 1}, Rhs: &LiteralNumber{Value: 3}}
	if Equal(a, c) {
		t.Error(`differing operands should not be equal`)
	}
	if Equal(a, &LiteralNumber{Value: 1}) {
		t.Error(`differing node kinds should not be equal`)
	}
}

func TestEqualClosureLiterals(t *testing.T) {
	mk := func(dflt Node) *ClosureLiteral {
		return &ClosureLiteral{
			Parameters: []*ParameterDecl{{Name: `x`, Type: `number`, Default: dflt}},
			Body:       &Variable{Name: `x`}}
	}
	if !Equal(mk(&LiteralNumber{Value: 1}), mk(&LiteralNumber{Value: 1})) {
		t.Error(`identical closure literals should be equal`)
	}
	if Equal(mk(&LiteralNumber{Value: 1}), mk(&LiteralNumber{Value: 2})) {
		t.Error(`differing parameter defaults should not be equal`)
	}
}

func TestHasBreakFindsDirectBreak(t *testing.T) {
	body := &Block{Statements: []Node{
		&Conditional{
			Condition: &LiteralBoolean{Value: true},
			Then:      &Break{}},
	}}
	if !HasBreak(body) {
		t.Error(`break inside a conditional should be found`)
	}
}

func TestHasBreakStopsAtLoopBoundaries(t *testing.T) {
	// A loop consumes its own breaks.
	body := &Block{Statements: []Node{
		&While{Condition: &LiteralBoolean{Value: true},
			Body: &Block{Statements: []Node{&Break{}}}},
	}}
	if HasBreak(body) {
		t.Error(`break caught by a nested loop should not be reported`)
	}

	// A closure body belongs to whoever eventually calls it.
	if HasBreak(&ClosureLiteral{Body: &Break{}}) {
		t.Error(`break inside a closure literal should not be reported`)
	}
}

func TestHasBreakInCollectionOps(t *testing.T) {
	// each catches breaks in its body but not in its source.
	op := &CollectionOp{Op: OpEach, Body: &Break{}}
	if HasBreak(op) {
		t.Error(`each consumes breaks in its body`)
	}
	op = &CollectionOp{Op: OpEach, Source: &Break{}, Body: &PipeValue{}}
	if !HasBreak(op) {
		t.Error(`break in an each source bubbles out`)
	}
	op = &CollectionOp{Op: OpMap, Body: &Break{}}
	if !HasBreak(op) {
		t.Error(`break in a map body should be reported`)
	}
}
