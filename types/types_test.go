package types_test

import (
	"testing"

	"github.com/rill-lang/rill/hash"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func TestNumberString(t *testing.T) {
	if s := types.WrapNumber(3).String(); s != `3` {
		t.Errorf(`expected 3, got %s`, s)
	}
	if s := types.WrapNumber(2.5).String(); s != `2.5` {
		t.Errorf(`expected 2.5, got %s`, s)
	}
}

func TestStructuralEquality(t *testing.T) {
	a := types.WrapList(types.WrapNumber(1), types.WrapString(`x`))
	b := types.WrapList(types.WrapNumber(1), types.WrapString(`x`))
	if !rill.Equals(a, b) {
		t.Error(`equal lists should compare equal`)
	}
	if rill.Equals(a, types.WrapList(types.WrapNumber(1))) {
		t.Error(`lists of different length should not compare equal`)
	}
	if rill.Equals(types.WrapNumber(1), types.WrapString(`1`)) {
		t.Error(`number and string should not compare equal`)
	}
	if !rill.Equals(types.Null, &types.NullValue{}) {
		t.Error(`null equals null`)
	}
}

func TestDictEqualityIgnoresOrder(t *testing.T) {
	a := hash.NewStringHash(2)
	a.Put(`x`, types.WrapNumber(1))
	a.Put(`y`, types.WrapNumber(2))
	b := hash.NewStringHash(2)
	b.Put(`y`, types.WrapNumber(2))
	b.Put(`x`, types.WrapNumber(1))
	if !rill.Equals(types.WrapDict(a), types.WrapDict(b)) {
		t.Error(`dicts with the same associations should be equal`)
	}
}

func TestWrapDictEmptyIsShared(t *testing.T) {
	if types.WrapDict(hash.NewStringHash(0)) != types.EmptyDict {
		t.Error(`wrapping an empty hash should yield the shared empty dict`)
	}
}

func TestVectorEquality(t *testing.T) {
	a := types.WrapVector(`m1`, []float64{1, 2})
	if !rill.Equals(a, types.WrapVector(`m1`, []float64{1, 2})) {
		t.Error(`identical vectors should be equal`)
	}
	if rill.Equals(a, types.WrapVector(`m2`, []float64{1, 2})) {
		t.Error(`vectors with different model tags should not be equal`)
	}
	if rill.Equals(a, types.WrapVector(`m1`, []float64{1, 2, 3})) {
		t.Error(`vectors with different dimensions should not be equal`)
	}
}

func TestCyclicEqualityTerminates(t *testing.T) {
	// Two lists referencing each other. The cycle guard assumes comparisons
	// in progress hold, so the comparison terminates instead of recursing.
	ea := make([]rill.Value, 1)
	eb := make([]rill.Value, 1)
	la := types.WrapValues(ea)
	lb := types.WrapValues(eb)
	ea[0] = lb
	eb[0] = la
	if !rill.Equals(la, lb) {
		t.Error(`mutually recursive lists should compare equal`)
	}
}

func TestTruthiness(t *testing.T) {
	if rill.IsTruthy(types.Null) || rill.IsTruthy(types.BooleanFalse) {
		t.Error(`null and false are the only falsy values`)
	}
	for _, v := range []rill.Value{
		types.BooleanTrue,
		types.WrapNumber(0),
		types.EmptyString,
		types.EmptyList,
		types.EmptyDict,
	} {
		if !rill.IsTruthy(v) {
			t.Errorf(`%s %s should be truthy`, v.TypeName(), v)
		}
	}
}

func TestStringify(t *testing.T) {
	if s, ok := types.Stringify(types.WrapString(`x`)); !ok || s != `x` {
		t.Errorf(`unexpected stringification %q`, s)
	}
	if _, ok := types.Stringify(types.WrapVector(`m1`, []float64{1})); ok {
		t.Error(`vectors must refuse stringification`)
	}
}

func TestListAtOutOfRange(t *testing.T) {
	l := types.WrapList(types.WrapNumber(1))
	if l.At(5).TypeName() != `null` {
		t.Error(`out of range index should read null`)
	}
	if l.At(-1).TypeName() != `null` {
		t.Error(`negative index should read null`)
	}
}

func TestRangeIterator(t *testing.T) {
	it := types.RangeIterator(3)
	sum := 0.0
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		sum += v.(*types.NumberValue).Float()
	}
	if sum != 3 {
		t.Errorf(`expected 0+1+2=3, got %v`, sum)
	}
}
