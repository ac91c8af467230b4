// Package types holds the implementations of the Rill value model: null,
// boolean, number, string, list, dict, vector, and the lazy iterator that the
// collection operators accept as a source. Callables live in the evaluator
// package since script closures need the evaluator to run their bodies.
package types

import (
	"math"
	"strconv"

	"github.com/rill-lang/rill/rill"
)

type (
	NullValue struct{}

	BooleanValue bool

	NumberValue float64

	StringValue string
)

var Null = &NullValue{}

var BooleanTrue = WrapBoolean(true)
var BooleanFalse = WrapBoolean(false)

var EmptyString = WrapString(``)

func WrapBoolean(b bool) *BooleanValue {
	v := BooleanValue(b)
	return &v
}

func WrapNumber(f float64) *NumberValue {
	v := NumberValue(f)
	return &v
}

func WrapString(s string) *StringValue {
	v := StringValue(s)
	return &v
}

func (*NullValue) Equals(other interface{}, guard rill.Guard) bool {
	_, ok := other.(*NullValue)
	return ok
}

func (*NullValue) TypeName() string {
	return `null`
}

func (*NullValue) String() string {
	return `null`
}

func (b *BooleanValue) Equals(other interface{}, guard rill.Guard) bool {
	if ob, ok := other.(*BooleanValue); ok {
		return *b == *ob
	}
	return false
}

func (b *BooleanValue) Bool() bool {
	return bool(*b)
}

func (*BooleanValue) TypeName() string {
	return `boolean`
}

func (b *BooleanValue) String() string {
	if *b {
		return `true`
	}
	return `false`
}

func (n *NumberValue) Equals(other interface{}, guard rill.Guard) bool {
	if on, ok := other.(*NumberValue); ok {
		return *n == *on
	}
	return false
}

func (n *NumberValue) Float() float64 {
	return float64(*n)
}

// Int returns the number truncated towards zero, used for list indexing.
func (n *NumberValue) Int() int {
	return int(math.Trunc(float64(*n)))
}

func (*NumberValue) TypeName() string {
	return `number`
}

func (n *NumberValue) String() string {
	return strconv.FormatFloat(float64(*n), 'f', -1, 64)
}

func (s *StringValue) Equals(other interface{}, guard rill.Guard) bool {
	if os, ok := other.(*StringValue); ok {
		return *s == *os
	}
	return false
}

func (*StringValue) TypeName() string {
	return `string`
}

func (s *StringValue) String() string {
	return string(*s)
}

// Stringify returns the interpolation form of a value. The second return is
// false when the value has no defined stringification (vectors).
func Stringify(v rill.Value) (string, bool) {
	if v.TypeName() == `vector` {
		return ``, false
	}
	return v.String(), true
}

// TypeNameOf is a nil-safe variant of Value.TypeName.
func TypeNameOf(v rill.Value) string {
	if v == nil {
		return `null`
	}
	return v.TypeName()
}
