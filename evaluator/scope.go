package evaluator

import "github.com/rill-lang/rill/rill"

// basicScope is one variable frame. Frames are shared, never copied: any
// closure created while a frame is active keeps a live reference to it, so
// captures made after the closure was created are visible on invocation.
type basicScope struct {
	values map[string]rill.Value
	parent rill.Scope
}

func NewScope(parent rill.Scope) rill.Scope {
	return &basicScope{make(map[string]rill.Value, 8), parent}
}

func (s *basicScope) Lookup(name string) (rill.Value, bool) {
	for sc := rill.Scope(s); sc != nil; sc = sc.Parent() {
		if bs, ok := sc.(*basicScope); ok {
			if v, found := bs.values[name]; found {
				return v, true
			}
			continue
		}
		return sc.Lookup(name)
	}
	return nil, false
}

func (s *basicScope) Capture(name string, value rill.Value) {
	s.values[name] = value
}

func (s *basicScope) Parent() rill.Scope {
	return s.parent
}
