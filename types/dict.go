package types

import (
	"bytes"

	"github.com/rill-lang/rill/hash"
	"github.com/rill-lang/rill/rill"
)

// DictValue is a string keyed map with unique keys and insertion ordered
// iteration. Equality is order irrespective.
type DictValue struct {
	hash *hash.StringHash
}

var EmptyDict = &DictValue{hash.EmptyStringHash}

// WrapDict adopts the given hash. The hash is frozen so that the dict stays
// immutable; rebinding is the only way to change a dict from script. An empty
// hash yields the shared empty dict.
func WrapDict(h *hash.StringHash) *DictValue {
	h.Freeze()
	if h.IsEmpty() {
		return EmptyDict
	}
	return &DictValue{h}
}

// SingletonDict returns a dict with one entry.
func SingletonDict(key string, value rill.Value) *DictValue {
	h := hash.NewStringHash(1)
	h.Put(key, value)
	return WrapDict(h)
}

func (d *DictValue) Len() int {
	return d.hash.Len()
}

func (d *DictValue) Get(key string) (rill.Value, bool) {
	return d.hash.Get2(key)
}

func (d *DictValue) Get2(key string, dflt rill.Value) rill.Value {
	return d.hash.Get(key, dflt)
}

func (d *DictValue) Includes(key string) bool {
	return d.hash.Includes(key)
}

func (d *DictValue) Keys() []string {
	return d.hash.Keys()
}

func (d *DictValue) Values() []rill.Value {
	return d.hash.Values()
}

func (d *DictValue) EachKey(consumer func(key string)) {
	d.hash.EachKey(consumer)
}

func (d *DictValue) EachValue(consumer func(value rill.Value)) {
	d.hash.EachValue(consumer)
}

func (d *DictValue) EachPair(consumer func(key string, value rill.Value)) {
	d.hash.EachPair(consumer)
}

// ToHash returns a mutable copy of the backing hash.
func (d *DictValue) ToHash() *hash.StringHash {
	return d.hash.Copy()
}

func (d *DictValue) Equals(other interface{}, guard rill.Guard) bool {
	if od, ok := other.(*DictValue); ok {
		return d.hash.Equals(od.hash, guard)
	}
	return false
}

func (*DictValue) TypeName() string {
	return `dict`
}

func (d *DictValue) String() string {
	b := bytes.NewBufferString(`{`)
	first := true
	d.hash.EachPair(func(k string, v rill.Value) {
		if first {
			first = false
		} else {
			b.WriteString(`, `)
		}
		b.WriteString(k)
		b.WriteString(`: `)
		writeQuoted(b, v)
	})
	b.WriteString(`}`)
	return b.String()
}
