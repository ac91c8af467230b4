// Package yaml bridges YAML documents to runtime values. Mappings become
// dicts that keep the document's key order, sequences become lists, scalars
// become the corresponding primitive values.
package yaml

import (
	"fmt"

	"github.com/rill-lang/rill/hash"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
	ym "gopkg.in/yaml.v2"
)

func Unmarshal(data []byte) (rill.Value, error) {
	ms := make(ym.MapSlice, 0)
	err := ym.Unmarshal(data, &ms)
	if err != nil {
		var itm interface{}
		err2 := ym.Unmarshal(data, &itm)
		if err2 != nil {
			return nil, err
		}
		return wrapValue(itm), nil
	}
	return wrapSlice(ms), nil
}

func wrapSlice(ms ym.MapSlice) rill.Value {
	h := hash.NewStringHash(len(ms))
	for _, me := range ms {
		h.Put(keyString(me.Key), wrapValue(me.Value))
	}
	return types.WrapDict(h)
}

func wrapValue(v interface{}) rill.Value {
	switch v := v.(type) {
	case nil:
		return types.Null
	case bool:
		return types.WrapBoolean(v)
	case int:
		return types.WrapNumber(float64(v))
	case int64:
		return types.WrapNumber(float64(v))
	case float64:
		return types.WrapNumber(v)
	case string:
		return types.WrapString(v)
	case ym.MapSlice:
		return wrapSlice(v)
	case []interface{}:
		vs := make([]rill.Value, len(v))
		for i, y := range v {
			vs[i] = wrapValue(y)
		}
		return types.WrapValues(vs)
	default:
		return types.WrapString(fmt.Sprintf(`%v`, v))
	}
}

// keyString renders a mapping key. YAML permits non-string keys; they keep
// their scalar rendering since dict keys are always strings.
func keyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprintf(`%v`, k)
}
