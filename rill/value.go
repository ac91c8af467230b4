package rill

type (
	visit struct {
		a interface{}
		b interface{}
	}

	// Guard helps tracking endless recursion. The comparison algorithm assumes that all checks in progress
	// are true when a recursion is detected.
	Guard map[visit]bool

	Equality interface {
		Equals(other interface{}, guard Guard) bool
	}

	// Value is a value known to the Rill runtime. The type name is one of
	// null, boolean, number, string, list, dict, vector, iterator, or callable.
	Value interface {
		Equality

		TypeName() string

		String() string
	}

	booler interface {
		Bool() bool
	}
)

// Seen returns true when the a/b pair has been seen before, false otherwise. The
// pair is recorded as seen when the method returns.
func (g Guard) Seen(a, b interface{}) bool {
	v := visit{a, b}
	if _, ok := g[v]; ok {
		return true
	}
	g[v] = true
	return false
}

func Equals(a, b Value) bool {
	return GuardedEquals(a, b, nil)
}

func GuardedEquals(a, b Value, g Guard) bool {
	if a == nil {
		return b == nil
	}
	return a.Equals(b, g)
}

// IsTruthy returns false for the null value and the boolean false, true for
// everything else.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case booler:
		return v.Bool()
	default:
		return v.TypeName() != `null`
	}
}
