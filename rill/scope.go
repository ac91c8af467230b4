package rill

// Scope is a chain of variable frames. Lookup walks the parent chain outward.
// Capture always binds in the receiving frame, never in a parent, so a name
// captured here shadows any binding further out.
//
// A scope may be referenced by any number of closures. Mutations made after a
// closure was created are visible when the closure is invoked.
type Scope interface {
	Lookup(name string) (Value, bool)

	Capture(name string, value Value)

	Parent() Scope
}
