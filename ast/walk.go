package ast

// HasBreak reports whether a break occurs in the given tree without an
// intervening construct that would consume it: loops and the sequential
// collection operators catch break themselves, and a closure literal defers
// the question to wherever the closure is eventually invoked.
func HasBreak(n Node) bool {
	switch n := n.(type) {
	case nil:
		return false
	case *Break:
		return true
	case *While, *ForEach, *ClosureLiteral:
		return false
	case *CollectionOp:
		// each and fold catch break. A break inside a nested map or filter
		// source or seed still bubbles out.
		if n.Op == OpEach || n.Op == OpFold {
			return HasBreak(n.Source) || HasBreak(n.Seed)
		}
		return HasBreak(n.Source) || HasBreak(n.Seed) || HasBreak(n.Body)
	case *Program:
		return anyBreak(n.Statements)
	case *Interpolation:
		return anyBreak(n.Segments)
	case *ListLiteral:
		return anyBreak(n.Elements)
	case *DictLiteral:
		for _, e := range n.Entries {
			if HasBreak(e.Expr) || HasBreak(e.Value) {
				return true
			}
		}
		return false
	case *Pipe:
		return HasBreak(n.Head) || anyBreak(n.Stages)
	case *Capture:
		return HasBreak(n.Value)
	case *Destructure:
		return HasBreak(n.Value)
	case *Conditional:
		return HasBreak(n.Condition) || HasBreak(n.Then) || HasBreak(n.Else)
	case *Block:
		return anyBreak(n.Statements)
	case *Call:
		return anyBreak(n.Arguments)
	case *MethodCall:
		return anyBreak(n.Arguments)
	case *Invoke:
		return HasBreak(n.Target) || anyBreak(n.Arguments)
	case *Return:
		return HasBreak(n.Value)
	case *Annotated:
		for _, e := range n.Annotations {
			if HasBreak(e.Value) {
				return true
			}
		}
		return HasBreak(n.Statement)
	case *Member:
		return HasBreak(n.Target)
	case *Index:
		return HasBreak(n.Target) || HasBreak(n.Key)
	case *Infix:
		return HasBreak(n.Lhs) || HasBreak(n.Rhs)
	case *Prefix:
		return HasBreak(n.Operand)
	}
	return false
}

func anyBreak(nodes []Node) bool {
	for _, n := range nodes {
		if HasBreak(n) {
			return true
		}
	}
	return false
}
