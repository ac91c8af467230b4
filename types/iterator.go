package types

import "github.com/rill-lang/rill/rill"

// IteratorValue is a lazy element source accepted by the collection
// operators. Iterators compare by identity and are consumed by iteration.
type IteratorValue struct {
	next func() (rill.Value, bool)
}

func WrapIterator(next func() (rill.Value, bool)) *IteratorValue {
	return &IteratorValue{next}
}

// RangeIterator produces the numbers 0 up to but not including limit.
func RangeIterator(limit int) *IteratorValue {
	i := 0
	return WrapIterator(func() (rill.Value, bool) {
		if i >= limit {
			return nil, false
		}
		v := WrapNumber(float64(i))
		i++
		return v, true
	})
}

// Next returns the next element, or false when the source is exhausted.
func (i *IteratorValue) Next() (rill.Value, bool) {
	return i.next()
}

func (i *IteratorValue) Equals(other interface{}, guard rill.Guard) bool {
	return i == other
}

func (*IteratorValue) TypeName() string {
	return `iterator`
}

func (*IteratorValue) String() string {
	return `iterator`
}
