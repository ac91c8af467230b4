package functions_test

import (
	"math"
	"testing"

	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/errors"
	"github.com/rill-lang/rill/evaluator"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
)

func call(t *testing.T, opts rill.Options, name string, args ...rill.Value) rill.Value {
	t.Helper()
	c, err := evaluator.NewContext(opts)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := c.Function(name)
	if !ok {
		t.Fatalf(`builtin %s not registered`, name)
	}
	return f.Call(c, args)
}

func callError(t *testing.T, name string, args ...rill.Value) (reported issue.Reported) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf(`expected %s to raise`, name)
		}
		re, ok := r.(issue.Reported)
		if !ok {
			panic(r)
		}
		reported = re
	}()
	call(t, rill.Options{}, name, args...)
	return
}

func expectString(t *testing.T, v rill.Value, expected string) {
	t.Helper()
	s, ok := v.(*types.StringValue)
	if !ok {
		t.Fatalf(`expected string, got %s`, types.TypeNameOf(v))
	}
	if s.String() != expected {
		t.Errorf(`expected %q, got %q`, expected, s.String())
	}
}

func expectNumber(t *testing.T, v rill.Value, expected float64) {
	t.Helper()
	n, ok := v.(*types.NumberValue)
	if !ok {
		t.Fatalf(`expected number, got %s`, types.TypeNameOf(v))
	}
	if n.Float() != expected {
		t.Errorf(`expected %v, got %v`, expected, n.Float())
	}
}

func TestStr(t *testing.T) {
	expectString(t, call(t, rill.Options{}, `str`, types.WrapNumber(1.5)), `1.5`)
	expectString(t, call(t, rill.Options{}, `str`, types.WrapNumber(3)), `3`)
	expectString(t, call(t, rill.Options{}, `str`, types.Null), `null`)
	expectString(t, call(t, rill.Options{}, `str`, types.BooleanTrue), `true`)
}

func TestStrRejectsVector(t *testing.T) {
	err := callError(t, `str`, types.WrapVector(`m1`, []float64{1}))
	if err.Code() != rill.VectorCoercion {
		t.Errorf(`expected %s, got %s`, rill.VectorCoercion, err.Code())
	}
}

func TestLen(t *testing.T) {
	expectNumber(t, call(t, rill.Options{}, `len`, types.WrapString(`héllo`)), 5)
	expectNumber(t, call(t, rill.Options{}, `len`,
		types.WrapList(types.Null, types.Null)), 2)
	expectNumber(t, call(t, rill.Options{}, `len`,
		types.SingletonDict(`k`, types.Null)), 1)
	expectNumber(t, call(t, rill.Options{}, `len`,
		types.WrapVector(`m1`, []float64{1, 2, 3})), 3)
}

func TestTrim(t *testing.T) {
	expectString(t, call(t, rill.Options{}, `trim`, types.WrapString("  x\n")), `x`)
}

func TestSplit(t *testing.T) {
	v := call(t, rill.Options{}, `split`, types.WrapString(`a,b,c`), types.WrapString(`,`))
	expected := types.WrapList(types.WrapString(`a`), types.WrapString(`b`), types.WrapString(`c`))
	if !rill.Equals(v, expected) {
		t.Errorf(`expected %s, got %s`, expected, v)
	}
}

func TestSprintf(t *testing.T) {
	v := call(t, rill.Options{}, `sprintf`,
		types.WrapString(`%s has %d of %.1f`),
		types.WrapString(`x`), types.WrapNumber(3), types.WrapNumber(2.5))
	expectString(t, v, `x has 3 of 2.5`)
}

func TestKeysAndVals(t *testing.T) {
	h := types.SingletonDict(`a`, types.WrapNumber(1))
	keys := call(t, rill.Options{}, `keys`, h)
	if !rill.Equals(keys, types.WrapList(types.WrapString(`a`))) {
		t.Errorf(`unexpected keys %s`, keys)
	}
	vals := call(t, rill.Options{}, `vals`, h)
	if !rill.Equals(vals, types.WrapList(types.WrapNumber(1))) {
		t.Errorf(`unexpected vals %s`, vals)
	}
}

func TestRange(t *testing.T) {
	it, ok := call(t, rill.Options{}, `range`, types.WrapNumber(2), types.WrapNumber(5)).(*types.IteratorValue)
	if !ok {
		t.Fatal(`expected an iterator`)
	}
	sum := 0.0
	for {
		v, more := it.Next()
		if !more {
			break
		}
		sum += v.(*types.NumberValue).Float()
	}
	if sum != 9 {
		t.Errorf(`expected 2+3+4=9, got %v`, sum)
	}
}

func TestRangeRejectsFractionalBound(t *testing.T) {
	// Raised as an argument error value; the call boundary converts it to a
	// located issue.
	defer func() {
		if _, ok := recover().(*errors.IllegalArgument); !ok {
			t.Error(`expected a fractional bound to raise an argument error`)
		}
	}()
	call(t, rill.Options{}, `range`, types.WrapNumber(1.5))
}

func TestSprintfRejectsMismatchedFormat(t *testing.T) {
	defer func() {
		if _, ok := recover().(*errors.ArgumentsError); !ok {
			t.Error(`expected a mismatched format to raise an arguments error`)
		}
	}()
	call(t, rill.Options{}, `sprintf`, types.WrapString(`%d %d`), types.WrapNumber(1))
}

func TestSimilarity(t *testing.T) {
	a := types.WrapVector(`m1`, []float64{1, 0})
	b := types.WrapVector(`m1`, []float64{0, 1})
	v := call(t, rill.Options{}, `similarity`, a, b)
	expectNumber(t, v, 0)

	v = call(t, rill.Options{}, `similarity`, a, types.WrapVector(`m1`, []float64{2, 0}))
	n := v.(*types.NumberValue).Float()
	if math.Abs(n-1) > 1e-9 {
		t.Errorf(`expected similarity 1, got %v`, n)
	}
}

func TestSimilarityDimensionMismatch(t *testing.T) {
	err := callError(t, `similarity`,
		types.WrapVector(`m1`, []float64{1, 2}),
		types.WrapVector(`m1`, []float64{1, 2, 3}))
	if err.Code() != rill.DimensionMismatch {
		t.Errorf(`expected %s, got %s`, rill.DimensionMismatch, err.Code())
	}
}

func TestParseYAML(t *testing.T) {
	v := call(t, rill.Options{}, `parseyaml`, types.WrapString("b: 1\na: 2\n"))
	d, ok := v.(*types.DictValue)
	if !ok {
		t.Fatalf(`expected dict, got %s`, types.TypeNameOf(v))
	}
	if keys := d.Keys(); len(keys) != 2 || keys[0] != `b` || keys[1] != `a` {
		t.Errorf(`expected document key order, got %v`, keys)
	}
	expectNumber(t, d.Get2(`a`, types.Null), 2)
}

func TestParseYAMLError(t *testing.T) {
	err := callError(t, `parseyaml`, types.WrapString("a: [unclosed"))
	if err.Code() != rill.DataParse {
		t.Errorf(`expected %s, got %s`, rill.DataParse, err.Code())
	}
}

func TestFail(t *testing.T) {
	err := callError(t, `fail`, types.WrapString(`giving up`))
	if err.Code() != rill.Failure {
		t.Errorf(`expected %s, got %s`, rill.Failure, err.Code())
	}
}
