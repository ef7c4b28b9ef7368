package ast

import "math/big"

// Equal reports structural identity between two nodes. Annotations are
// ignored: they never affect matching semantics. Lazy and refinement nodes
// hold functions, so they compare by node identity only.
func Equal(a, b AST) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Keyword:
		return true // same kind is enough for tag-only nodes
	case *Literal:
		return scalarEqual(x.Value, b.(*Literal).Value)
	case *UniqueSymbol:
		return x.Sym == b.(*UniqueSymbol).Sym
	case *Enums:
		y := b.(*Enums)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if x.Members[i].Name != y.Members[i].Name || !scalarEqual(x.Members[i].Value, y.Members[i].Value) {
				return false
			}
		}
		return true
	case *Tuple:
		y := b.(*Tuple)
		if len(x.Elements) != len(y.Elements) || len(x.Rest) != len(y.Rest) ||
			(x.Rest == nil) != (y.Rest == nil) ||
			x.IsReadonly != y.IsReadonly || x.AllowUnexpected != y.AllowUnexpected {
			return false
		}
		for i := range x.Elements {
			if x.Elements[i].IsOptional != y.Elements[i].IsOptional || !Equal(x.Elements[i].Type, y.Elements[i].Type) {
				return false
			}
		}
		for i := range x.Rest {
			if !Equal(x.Rest[i], y.Rest[i]) {
				return false
			}
		}
		return true
	case *Struct:
		y := b.(*Struct)
		if len(x.Fields) != len(y.Fields) || len(x.Indexes) != len(y.Indexes) || x.AllowUnexpected != y.AllowUnexpected {
			return false
		}
		for i := range x.Fields {
			f, g := x.Fields[i], y.Fields[i]
			if f.Key.RuntimeKey() != g.Key.RuntimeKey() || f.IsOptional != g.IsOptional ||
				f.IsReadonly != g.IsReadonly || !Equal(f.Type, g.Type) {
				return false
			}
		}
		for i := range x.Indexes {
			p, q := x.Indexes[i], y.Indexes[i]
			if p.IsReadonly != q.IsReadonly || !Equal(p.Key, q.Key) || !Equal(p.Type, q.Type) {
				return false
			}
		}
		return true
	case *Union:
		y := b.(*Union)
		if len(x.Members) != len(y.Members) {
			return false
		}
		for i := range x.Members {
			if !Equal(x.Members[i], y.Members[i]) {
				return false
			}
		}
		return true
	case *TypeAlias:
		y := b.(*TypeAlias)
		if len(x.TypeParams) != len(y.TypeParams) || (x.Transform == nil) != (y.Transform == nil) {
			return false
		}
		for i := range x.TypeParams {
			if !Equal(x.TypeParams[i], y.TypeParams[i]) {
				return false
			}
		}
		if x.Transform != nil && x.Transform != y.Transform {
			return false
		}
		return Equal(x.Type, y.Type)
	default:
		// Lazy, Refinement: identity only, handled by the a == b fast path.
		return false
	}
}

// scalarEqual compares literal/enum scalar values, treating all numeric
// representations as one class.
func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ba, ok := a.(*big.Int); ok {
		bb, ok := b.(*big.Int)
		return ok && ba.Cmp(bb) == 0
	}
	if fa, ok := NumericValue(a); ok {
		fb, ok := NumericValue(b)
		return ok && fa == fb
	}
	return a == b
}
