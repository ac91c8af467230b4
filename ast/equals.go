package ast

// Equal compares two trees structurally, ignoring source spans. Used for
// closure equality where two closures with identical bodies from different
// source locations must compare equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Program:
		if b, ok := b.(*Program); ok {
			return equalSlices(a.Statements, b.Statements)
		}
	case *LiteralNull:
		_, ok := b.(*LiteralNull)
		return ok
	case *LiteralBoolean:
		if b, ok := b.(*LiteralBoolean); ok {
			return a.Value == b.Value
		}
	case *LiteralNumber:
		if b, ok := b.(*LiteralNumber); ok {
			return a.Value == b.Value
		}
	case *LiteralString:
		if b, ok := b.(*LiteralString); ok {
			return a.Value == b.Value
		}
	case *Interpolation:
		if b, ok := b.(*Interpolation); ok {
			return equalSlices(a.Segments, b.Segments)
		}
	case *ListLiteral:
		if b, ok := b.(*ListLiteral); ok {
			return equalSlices(a.Elements, b.Elements)
		}
	case *DictLiteral:
		if b, ok := b.(*DictLiteral); ok {
			if len(a.Entries) != len(b.Entries) {
				return false
			}
			for i, e := range a.Entries {
				if !equalEntry(e, b.Entries[i]) {
					return false
				}
			}
			return true
		}
	case *Variable:
		if b, ok := b.(*Variable); ok {
			return a.Name == b.Name
		}
	case *PipeValue:
		_, ok := b.(*PipeValue)
		return ok
	case *Pipe:
		if b, ok := b.(*Pipe); ok {
			return Equal(a.Head, b.Head) && equalSlices(a.Stages, b.Stages)
		}
	case *Capture:
		if b, ok := b.(*Capture); ok {
			return a.Name == b.Name && Equal(a.Value, b.Value)
		}
	case *Destructure:
		if b, ok := b.(*Destructure); ok {
			return equalStrings(a.Names, b.Names) && Equal(a.Value, b.Value)
		}
	case *Conditional:
		if b, ok := b.(*Conditional); ok {
			return Equal(a.Condition, b.Condition) && Equal(a.Then, b.Then) && Equal(a.Else, b.Else)
		}
	case *Block:
		if b, ok := b.(*Block); ok {
			return equalSlices(a.Statements, b.Statements)
		}
	case *ClosureLiteral:
		if b, ok := b.(*ClosureLiteral); ok {
			return equalParams(a.Parameters, b.Parameters) &&
				Equal(a.Body, b.Body) &&
				equalAnnotations(a.Annotations, b.Annotations)
		}
	case *Call:
		if b, ok := b.(*Call); ok {
			return a.Name == b.Name && equalSlices(a.Arguments, b.Arguments)
		}
	case *MethodCall:
		if b, ok := b.(*MethodCall); ok {
			return a.Name == b.Name && equalSlices(a.Arguments, b.Arguments)
		}
	case *Invoke:
		if b, ok := b.(*Invoke); ok {
			return Equal(a.Target, b.Target) && equalSlices(a.Arguments, b.Arguments)
		}
	case *CollectionOp:
		if b, ok := b.(*CollectionOp); ok {
			return a.Op == b.Op && Equal(a.Source, b.Source) && Equal(a.Body, b.Body) && Equal(a.Seed, b.Seed)
		}
	case *While:
		if b, ok := b.(*While); ok {
			return a.PostCondition == b.PostCondition && Equal(a.Condition, b.Condition) && Equal(a.Body, b.Body)
		}
	case *ForEach:
		if b, ok := b.(*ForEach); ok {
			return Equal(a.Source, b.Source) && Equal(a.Body, b.Body)
		}
	case *Break:
		if b, ok := b.(*Break); ok {
			return Equal(a.Value, b.Value)
		}
	case *Return:
		if b, ok := b.(*Return); ok {
			return Equal(a.Value, b.Value)
		}
	case *Annotated:
		if b, ok := b.(*Annotated); ok {
			return equalAnnotations(a.Annotations, b.Annotations) && Equal(a.Statement, b.Statement)
		}
	case *Member:
		if b, ok := b.(*Member); ok {
			return a.Name == b.Name && Equal(a.Target, b.Target)
		}
	case *Index:
		if b, ok := b.(*Index); ok {
			return Equal(a.Target, b.Target) && Equal(a.Key, b.Key)
		}
	case *Infix:
		if b, ok := b.(*Infix); ok {
			return a.Operator == b.Operator && Equal(a.Lhs, b.Lhs) && Equal(a.Rhs, b.Rhs)
		}
	case *Prefix:
		if b, ok := b.(*Prefix); ok {
			return a.Operator == b.Operator && Equal(a.Operand, b.Operand)
		}
	}
	return false
}

func equalSlices(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i, n := range a {
		if !Equal(n, b[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, s := range a {
		if s != b[i] {
			return false
		}
	}
	return true
}

func equalEntry(a, b *DictEntry) bool {
	return a.Kind == b.Kind && a.Key == b.Key && Equal(a.Expr, b.Expr) && Equal(a.Value, b.Value)
}

func equalParams(a, b []*ParameterDecl) bool {
	if len(a) != len(b) {
		return false
	}
	for i, p := range a {
		o := b[i]
		if !(p.Name == o.Name && p.Type == o.Type && Equal(p.Default, o.Default) &&
			equalAnnotations(p.Annotations, o.Annotations)) {
			return false
		}
	}
	return true
}

func equalAnnotations(a, b []*AnnotationEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i, e := range a {
		o := b[i]
		if !(e.Key == o.Key && e.Spread == o.Spread && Equal(e.Value, o.Value)) {
			return false
		}
	}
	return true
}
