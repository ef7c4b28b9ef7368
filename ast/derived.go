package ast

import "fmt"

// GetFields returns the field list of a struct-like node. For a union it is
// the set of keys present in every member, with each field's type the union
// of the member types and optionality widened. Aliases, lazy nodes and
// refinements delegate; other nodes have no fields.
func GetFields(a AST) []Field {
	switch n := a.(type) {
	case *Struct:
		out := make([]Field, len(n.Fields))
		copy(out, n.Fields)
		return out
	case *Union:
		if len(n.Members) == 0 {
			return nil
		}
		first := GetFields(n.Members[0])
		var out []Field
		for _, f := range first {
			types := []AST{f.Type}
			optional := f.IsOptional
			readonly := f.IsReadonly
			common := true
			for _, m := range n.Members[1:] {
				found := false
				for _, g := range GetFields(m) {
					if g.Key.RuntimeKey() == f.Key.RuntimeKey() {
						types = append(types, g.Type)
						optional = optional || g.IsOptional
						readonly = readonly && g.IsReadonly
						found = true
						break
					}
				}
				if !found {
					common = false
					break
				}
			}
			if common {
				out = append(out, Field{Key: f.Key, Type: NewUnion(types...), IsOptional: optional, IsReadonly: readonly})
			}
		}
		return out
	case *Lazy:
		return GetFields(n.Resolve())
	case *TypeAlias:
		return GetFields(n.Type)
	case *Refinement:
		return GetFields(n.From)
	default:
		return nil
	}
}

// PropertyKeys returns the keys of GetFields(a), in field order.
func PropertyKeys(a AST) []PropertyKey {
	fields := GetFields(a)
	if len(fields) == 0 {
		return nil
	}
	out := make([]PropertyKey, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}

// Pick builds a struct containing only the listed keys of a.
func Pick(a AST, keys ...PropertyKey) (*Struct, error) {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k.RuntimeKey()] = struct{}{}
	}
	var fields []Field
	for _, f := range GetFields(a) {
		if _, ok := want[f.Key.RuntimeKey()]; ok {
			fields = append(fields, f)
		}
	}
	if len(fields) != len(keys) {
		return nil, fmt.Errorf("ast: pick: %d of %d keys not present", len(keys)-len(fields), len(keys))
	}
	return NewStruct(fields, nil)
}

// Omit builds a struct containing all fields of a except the listed keys.
func Omit(a AST, keys ...PropertyKey) (*Struct, error) {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k.RuntimeKey()] = struct{}{}
	}
	var fields []Field
	for _, f := range GetFields(a) {
		if _, ok := drop[f.Key.RuntimeKey()]; !ok {
			fields = append(fields, f)
		}
	}
	return NewStruct(fields, nil)
}

// Partial recursively makes every field and tuple element optional. Tuple
// rest types are widened with undefined, unions distribute over their
// members, lazy nodes stay lazy, and aliases are transparent. Nodes with no
// positional or keyed structure pass through unchanged.
func Partial(a AST) AST {
	switch n := a.(type) {
	case *Struct:
		fields := make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			f.IsOptional = true
			fields[i] = f
		}
		return MustStruct(fields, n.Indexes, n.annot).WithAllowUnexpected(n.AllowUnexpected)
	case *Tuple:
		elements := make([]Element, len(n.Elements))
		for i, el := range n.Elements {
			el.IsOptional = true
			elements[i] = el
		}
		var rest []AST
		if n.Rest != nil {
			rest = make([]AST, len(n.Rest))
			for i, r := range n.Rest {
				rest[i] = NewUnion(r, UndefinedKeyword())
			}
		}
		return MustTuple(elements, rest, n.IsReadonly, n.annot).WithAllowUnexpected(n.AllowUnexpected)
	case *Union:
		members := make([]AST, len(n.Members))
		for i, m := range n.Members {
			members[i] = Partial(m)
		}
		return NewUnion(members...)
	case *Lazy:
		return NewLazy(func() AST { return Partial(n.Resolve()) }, n.annot)
	case *TypeAlias:
		return Partial(n.Type)
	default:
		return a
	}
}
