package evaluator

import (
	"fmt"
	"time"

	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/types"
	"github.com/rill-lang/rill/yaml"
)

// OptionsFromYAML reads the declarative subset of the context configuration
// from a YAML document. Recognized keys: variables (mapping), timeout
// (milliseconds), autoExceptions (sequence of string prefixes), parallel
// (bool), and requiresRuntime (semver range). Everything procedural, the
// functions, the cancellation signal, the tracer, is wired up in code by the
// embedding application.
func OptionsFromYAML(data []byte) (rill.Options, error) {
	opts := rill.Options{}
	v, err := yaml.Unmarshal(data)
	if err != nil {
		return opts, err
	}
	doc, ok := v.(*types.DictValue)
	if !ok {
		return opts, fmt.Errorf(`options document must be a mapping, got %s`, types.TypeNameOf(v))
	}

	if vars, found := doc.Get(`variables`); found {
		d, ok := vars.(*types.DictValue)
		if !ok {
			return opts, fmt.Errorf(`variables must be a mapping, got %s`, types.TypeNameOf(vars))
		}
		opts.Variables = make(map[string]rill.Value, d.Len())
		d.EachPair(func(key string, value rill.Value) {
			opts.Variables[key] = value
		})
	}

	if t, found := doc.Get(`timeout`); found {
		n, ok := t.(*types.NumberValue)
		if !ok {
			return opts, fmt.Errorf(`timeout must be a number of milliseconds, got %s`, types.TypeNameOf(t))
		}
		opts.Timeout = time.Duration(n.Float() * float64(time.Millisecond))
	}

	if a, found := doc.Get(`autoExceptions`); found {
		l, ok := a.(*types.ListValue)
		if !ok {
			return opts, fmt.Errorf(`autoExceptions must be a sequence, got %s`, types.TypeNameOf(a))
		}
		prefixes := make([]string, l.Len())
		for i, e := range l.Elements() {
			s, ok := e.(*types.StringValue)
			if !ok {
				return opts, fmt.Errorf(`autoExceptions entry %d must be a string, got %s`, i, types.TypeNameOf(e))
			}
			prefixes[i] = s.String()
		}
		opts.AutoExceptions = prefixes
	}

	if p, found := doc.Get(`parallel`); found {
		b, ok := p.(*types.BooleanValue)
		if !ok {
			return opts, fmt.Errorf(`parallel must be a bool, got %s`, types.TypeNameOf(p))
		}
		opts.Parallel = b.Bool()
	}

	if r, found := doc.Get(`requiresRuntime`); found {
		s, ok := r.(*types.StringValue)
		if !ok {
			return opts, fmt.Errorf(`requiresRuntime must be a string, got %s`, types.TypeNameOf(r))
		}
		opts.RequiresRuntime = s.String()
	}

	return opts, nil
}
