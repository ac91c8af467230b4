package types

import (
	"bytes"

	"github.com/rill-lang/rill/rill"
)

// ListValue is an ordered, index addressable sequence of values.
type ListValue struct {
	elements []rill.Value
}

var EmptyList = &ListValue{[]rill.Value{}}

func WrapValues(elements []rill.Value) *ListValue {
	return &ListValue{elements}
}

func WrapList(elements ...rill.Value) *ListValue {
	return &ListValue{elements}
}

func (l *ListValue) Len() int {
	return len(l.elements)
}

func (l *ListValue) At(index int) rill.Value {
	if index < 0 || index >= len(l.elements) {
		return Null
	}
	return l.elements[index]
}

func (l *ListValue) Each(consumer func(element rill.Value)) {
	for _, e := range l.elements {
		consumer(e)
	}
}

// Elements returns the backing slice. The returned slice must not be modified.
func (l *ListValue) Elements() []rill.Value {
	return l.elements
}

func (l *ListValue) Equals(other interface{}, guard rill.Guard) bool {
	ol, ok := other.(*ListValue)
	if !ok || len(l.elements) != len(ol.elements) {
		return false
	}
	if guard == nil {
		guard = make(rill.Guard)
	}
	if guard.Seen(l, ol) {
		return true
	}
	for i, e := range l.elements {
		if !rill.GuardedEquals(e, ol.elements[i], guard) {
			return false
		}
	}
	return true
}

func (*ListValue) TypeName() string {
	return `list`
}

func (l *ListValue) String() string {
	b := bytes.NewBufferString(`[`)
	for i, e := range l.elements {
		if i > 0 {
			b.WriteString(`, `)
		}
		writeQuoted(b, e)
	}
	b.WriteString(`]`)
	return b.String()
}

func writeQuoted(b *bytes.Buffer, v rill.Value) {
	if s, ok := v.(*StringValue); ok {
		b.WriteByte('"')
		b.WriteString(string(*s))
		b.WriteByte('"')
		return
	}
	b.WriteString(v.String())
}
